package scanner

import (
	"context"
	"errors"
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	pkgrpc "github.com/goran-ethernal/SubstrateScanner/pkg/rpc"
)

// ProgressFunc receives the percentage of the range processed, in [0, 100].
type ProgressFunc func(percent float64)

// connectionLost is the cancellation cause used when the client reports an asynchronous error.
type connectionLost struct {
	err error
}

func (c *connectionLost) Error() string { return c.err.Error() }
func (c *connectionLost) Unwrap() error { return c.err }

// Collector scans a block range one block at a time and gathers normalized events.
type Collector struct {
	client pkgrpc.SubstrateClient
	log    *logger.Logger
}

// NewCollector creates a collector reading from client.
func NewCollector(client pkgrpc.SubstrateClient, log *logger.Logger) *Collector {
	return &Collector{
		client: client,
		log:    log,
	}
}

// Collect validates r, checks it against the current chain head once and then fetches
// every block in ascending order. onProgress is called after each block and reaches 100
// exactly once: after the last block or on the first failure. Any failure discards
// everything collected so far and no result is returned.
func (c *Collector) Collect(ctx context.Context, r BlockRange, onProgress ProgressFunc) (*CollectionResult, error) {
	if onProgress == nil {
		onProgress = func(float64) {}
	}

	if err := r.Validate(); err != nil {
		onProgress(100)
		ScanFinished(outcomeInvalidRange, 0)
		return nil, err
	}

	start := time.Now()

	result, err := c.collect(ctx, r, onProgress)
	if err != nil {
		onProgress(100)
		ScanFinished(outcomeLabel(err), time.Since(start))
		c.log.Warnw("scan failed",
			"start_block", r.Start,
			"end_block", r.End,
			"error", err,
		)
		return nil, err
	}

	ScanFinished(outcomeCompleted, time.Since(start))
	c.log.Infow("scan completed",
		"start_block", r.Start,
		"end_block", r.End,
		"events", len(result.Events),
		"duration", time.Since(start),
	)

	return result, nil
}

func (c *Collector) collect(ctx context.Context, r BlockRange, onProgress ProgressFunc) (*CollectionResult, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	if notifier, ok := c.client.(pkgrpc.ErrorNotifier); ok {
		go func() {
			select {
			case err := <-notifier.Errors():
				cancel(&connectionLost{err: err})
			case <-ctx.Done():
			}
		}()
	}

	head, err := c.client.GetCurrentHead(ctx)
	if err != nil {
		return nil, rpcError(ctx, OpGetCurrentHead, 0, err)
	}

	if r.End > head {
		return nil, &ChainHeadExceededError{End: r.End, Head: head}
	}

	c.log.Debugw("scan started",
		"start_block", r.Start,
		"end_block", r.End,
		"head", head,
	)

	var (
		total  = r.Len()
		events = make([]NormalizedEvent, 0)
		facets = NewFacetSets()
	)

	for blockNum := r.Start; ; blockNum++ {
		if ctx.Err() != nil {
			return nil, rpcError(ctx, OpConnection, blockNum, ctx.Err())
		}

		hash, err := c.client.GetBlockHash(ctx, blockNum)
		if err != nil {
			return nil, rpcError(ctx, OpGetBlockHash, blockNum, err)
		}

		raws, err := c.client.GetEventsAt(ctx, hash)
		if err != nil {
			return nil, rpcError(ctx, OpGetEventsAt, blockNum, err)
		}

		for _, raw := range raws {
			ev := Normalize(raw, blockNum)
			facets.Add(ev)
			events = append(events, ev)
		}

		BlockScanned(len(raws))
		c.log.Debugw("block scanned", "block", blockNum, "hash", hash, "events", len(raws))

		done := blockNum - r.Start + 1
		if done < total {
			onProgress(float64(done) * 100 / float64(total))
			continue
		}

		onProgress(100)
		break
	}

	return newCollectionResult(r, events, facets), nil
}

// rpcError wraps err, replacing it with the asynchronous connection error when that
// is what interrupted the call.
func rpcError(ctx context.Context, op string, block uint64, err error) *RPCError {
	var lost *connectionLost
	if errors.As(context.Cause(ctx), &lost) {
		return &RPCError{Op: OpConnection, Block: block, Err: lost.err}
	}

	return &RPCError{Op: op, Block: block, Err: err}
}
