package rpc

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
)

var (
	// ErrBlockNotFound is returned when the node has no block at the requested height.
	ErrBlockNotFound = errors.New("block not found")

	// ErrClientClosed is published on the error channel when the health probe stops
	// because the connection was closed.
	ErrClientClosed = errors.New("rpc client closed")
)

// MetadataError is returned when runtime metadata cannot be used to decode events.
type MetadataError struct {
	SpecVersion uint32
	Reason      string
	Err         error
}

func (e *MetadataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("runtime metadata (spec version %d): %s: %v", e.SpecVersion, e.Reason, e.Err)
	}
	return fmt.Sprintf("runtime metadata (spec version %d): %s", e.SpecVersion, e.Reason)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// errorType classifies err for the rpc error metric.
func errorType(err error) string {
	var jsonErr rpc.Error
	var metaErr *MetadataError

	switch {
	case errors.Is(err, ErrBlockNotFound):
		return "not_found"
	case errors.As(err, &metaErr):
		return "metadata"
	case errors.As(err, &jsonErr):
		return "json_rpc"
	case retryableError(err):
		return "transport"
	default:
		return "other"
	}
}
