package rpc

import (
	"context"
)

// BlockHash is the 0x-prefixed hex hash of a block.
type BlockHash string

// RawEvent is a decoded runtime event as reported by the chain for one block.
// Data, Types and Args are index-aligned: Types[i] is the declared type label of
// Data[i] and Args[i] its declared field name.
type RawEvent struct {
	// Section is the pallet (module) that emitted the event, e.g. "balances".
	Section string

	// Method is the event name, e.g. "Transfer".
	Method string

	// Data holds the decoded argument values. Every value has a readable fmt.Sprint form.
	Data []any

	// Types holds the declared type label of each argument, e.g. "AccountId".
	Types []string

	// Args holds the declared name of each argument, e.g. "from".
	Args []string

	// Docs holds the documentation lines attached to the event in runtime metadata.
	Docs []string
}

// SubstrateClient defines the interface for the Substrate node operations used by the scanner.
// This abstraction allows for easier testing and alternative implementations.
type SubstrateClient interface {
	// Close closes the RPC client connection.
	Close()

	// GetCurrentHead returns the block number of the latest block header.
	GetCurrentHead(ctx context.Context) (uint64, error)

	// GetBlockHash returns the hash of the block at the given height.
	GetBlockHash(ctx context.Context, blockNum uint64) (BlockHash, error)

	// GetEventsAt returns the events recorded in the block with the given hash,
	// in the order the chain reports them.
	GetEventsAt(ctx context.Context, hash BlockHash) ([]RawEvent, error)
}

// ErrorNotifier is implemented by clients that report connection failures
// asynchronously, outside of any pending call.
type ErrorNotifier interface {
	// Errors returns a channel that receives connection errors.
	Errors() <-chan error
}
