package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var headEndpoint string

var headCmd = &cobra.Command{
	Use:   "head",
	Short: "Print the chain head and the default scan range",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if headEndpoint != "" {
			cfg.Chain.RPCURL = headEndpoint
		}

		ctx, cancel := signalContext()
		defer cancel()

		m := (&components{}).manager(cfg)
		defer m.Close()

		head, rng, err := m.Head(ctx, "")
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Chain head:    %d\nDefault range: %d - %d\n", head, rng.Start, rng.End)
		return nil
	},
}

func init() {
	headCmd.Flags().StringVarP(&headEndpoint, "endpoint", "e", "", "node WebSocket endpoint (overrides chain.rpc_url)")
}
