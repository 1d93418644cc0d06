package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/goran-ethernal/SubstrateScanner/internal/scanner"
	pkgconfig "github.com/goran-ethernal/SubstrateScanner/pkg/config"
	"github.com/stretchr/testify/require"
)

func transferEvent() scanner.NormalizedEvent {
	return scanner.NormalizedEvent{
		ID:             "e1",
		BlockNumber:    22309415,
		Name:           "Transfer",
		Module:         "Balances",
		Metadata:       "Transfer succeeded.",
		ArgumentValues: []string{"5GrwvaEF", "5FHneW46", "1000000000"},
		ArgumentNames:  []string{"from", "to", "amount"},
		ArgumentTypes:  []string{"AccountId", "AccountId", "Balance"},
	}
}

func TestFormatArguments(t *testing.T) {
	tests := []struct {
		name     string
		event    scanner.NormalizedEvent
		expected string
	}{
		{
			name:     "named arguments",
			event:    transferEvent(),
			expected: "from (AccountId): 5GrwvaEF\nto (AccountId): 5FHneW46\namount (Balance): 1000000000",
		},
		{
			name: "unnamed argument uses its type",
			event: scanner.NormalizedEvent{
				ArgumentValues: []string{"42"},
				ArgumentNames:  []string{"u32"},
				ArgumentTypes:  []string{"u32"},
			},
			expected: "u32: 42",
		},
		{
			name:     "no arguments",
			event:    scanner.NormalizedEvent{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, formatArguments(tt.event))
		})
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, renderTable(&buf, []scanner.NormalizedEvent{transferEvent()}, 3))

	out := buf.String()
	require.Contains(t, out, "BLOCK")
	require.Contains(t, out, "22309415")
	require.Contains(t, out, "Balances")
	require.Contains(t, out, "amount (Balance): 1000000000")
	require.Contains(t, out, "1 of 3 events")
}

func TestRenderJSON(t *testing.T) {
	result := scanner.NewCollectionResult(
		scanner.BlockRange{Start: 22309410, End: 22309420},
		[]scanner.NormalizedEvent{transferEvent()},
	)

	var buf bytes.Buffer
	require.NoError(t, renderJSON(&buf, result, result.Events, 1))

	var out jsonOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, result.Range, out.Range)
	require.Equal(t, 1, out.Total)
	require.Equal(t, "Transfer", out.Events[0].Name)
	require.Equal(t, []scanner.FacetFilter{{Label: "Balances", Value: "Balances"}}, out.ModuleFilters)
}

func TestApplyScanOverrides(t *testing.T) {
	cfg := pkgconfig.Default()

	applyScanOverrides(cfg, scanFlags{
		endpoint:  "wss://kusama-rpc.polkadot.io",
		serverURL: "http://localhost:4000/",
	})

	require.Equal(t, "wss://kusama-rpc.polkadot.io", cfg.Chain.RPCURL)
	require.NotNil(t, cfg.Export)
	require.Equal(t, "http://localhost:4000", cfg.Export.ServerURL)
	require.NotZero(t, cfg.Export.Timeout.Duration)
}

func TestNewComponents(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		comps, err := newComponents(pkgconfig.Default(), false)
		require.NoError(t, err)
		require.Nil(t, comps.archive)
		require.Nil(t, comps.exporter)
	})

	t.Run("submit without server", func(t *testing.T) {
		_, err := newComponents(pkgconfig.Default(), true)
		require.ErrorContains(t, err, "export.server_url is required")
	})

	t.Run("submit with server", func(t *testing.T) {
		cfg := pkgconfig.Default()
		applyScanOverrides(cfg, scanFlags{serverURL: "http://localhost:4000"})

		comps, err := newComponents(cfg, true)
		require.NoError(t, err)
		require.NotNil(t, comps.exporter)
	})
}
