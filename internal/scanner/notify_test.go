package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotifyError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		title       string
		description string
	}{
		{
			name:        "invalid range",
			err:         &RangeError{Start: 11, End: 10},
			title:       "End block should be greater than start block.",
			description: "Error: 11 > 10.",
		},
		{
			name:        "head exceeded",
			err:         &ChainHeadExceededError{End: 600, Head: 500},
			title:       "End block shouldn't be greater than chain head.",
			description: "Error: 600 > 500.",
		},
		{
			name:        "rpc failure",
			err:         &RPCError{Op: OpGetBlockHash, Block: 105, Err: errors.New("timeout")},
			title:       "Couldn't fetch events.",
			description: "Error: get block hash failed at block 105: timeout.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NotifyError(tt.err)
			require.Equal(t, LevelError, n.Level)
			require.Equal(t, tt.title, n.Title)
			require.Equal(t, tt.description, n.Description)
			require.False(t, n.CreatedAt.IsZero())
		})
	}
}

func TestNotifyCollected(t *testing.T) {
	n := NotifyCollected(BlockRange{Start: 100, End: 102})
	require.Equal(t, LevelSuccess, n.Level)
	require.Equal(t, "We've fetched events from block 100 through 102.", n.Description)
}

func TestNotifyStored(t *testing.T) {
	n := NotifyStored("http://localhost:4000/events/1", "http://localhost...00/events/1")
	require.Equal(t, LevelSuccess, n.Level)
	require.Equal(t, "http://localhost:4000/events/1", n.Link)
	require.Equal(t, "http://localhost...00/events/1", n.Description)
}

func TestNotifyStoreFailed(t *testing.T) {
	n := NotifyStoreFailed(errors.New("connection refused"))
	require.Equal(t, LevelWarning, n.Level)
	require.Equal(t, "Couldn't store events in the server.", n.Title)
	require.Equal(t, "Error: connection refused.", n.Description)
}
