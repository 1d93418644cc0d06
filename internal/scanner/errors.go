package scanner

import (
	"fmt"
)

// RangeError is returned when the start block is after the end block.
type RangeError struct {
	Start uint64
	End   uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid block range: start block %d is greater than end block %d", e.Start, e.End)
}

// ChainHeadExceededError is returned when the end block is beyond the current chain head.
type ChainHeadExceededError struct {
	End  uint64
	Head uint64
}

func (e *ChainHeadExceededError) Error() string {
	return fmt.Sprintf("end block %d is greater than chain head %d", e.End, e.Head)
}

// RPCError wraps any failure talking to the chain, including asynchronous
// connection errors. Block is not set for the head lookup.
type RPCError struct {
	Op    string
	Block uint64
	Err   error
}

func (e *RPCError) Error() string {
	if e.Op == OpGetCurrentHead {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed at block %d: %v", e.Op, e.Block, e.Err)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}

// Chain operations reported in RPCError.Op.
const (
	OpGetCurrentHead = "get current head"
	OpGetBlockHash   = "get block hash"
	OpGetEventsAt    = "get events"
	OpConnection     = "connection"
)
