package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/common"
	"github.com/goran-ethernal/SubstrateScanner/internal/metrics"
)

// healthProbe polls system_health until ctx is cancelled and publishes failures on c.errs.
// Only the most recent undelivered failure is kept.
func (c *Client) healthProbe(ctx context.Context, interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.checkHealth(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}

				HealthCheckFailures.Inc()
				metrics.ComponentHealthSet(common.ComponentRPC, false)
				c.log.Warnw("substrate node health check failed", "error", err)
				c.publish(err)
				continue
			}

			metrics.ComponentHealthSet(common.ComponentRPC, true)
		}
	}
}

func (c *Client) checkHealth(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	var health struct {
		Peers     int  `json:"peers"`
		IsSyncing bool `json:"isSyncing"`
	}

	if err := c.call(callCtx, &health, "system_health"); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return ErrClientClosed
		}
		return fmt.Errorf("connection lost: %w", err)
	}

	return nil
}

func (c *Client) publish(err error) {
	select {
	case c.errs <- err:
	default:
	}
}
