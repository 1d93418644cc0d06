package rpc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockJSONError struct {
	code int
	msg  string
}

func (m *mockJSONError) Error() string  { return m.msg }
func (m *mockJSONError) ErrorCode() int { return m.code }

func TestMetadataError(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected EOF")
	err := fmt.Errorf("block 0xabc: %w", &MetadataError{SpecVersion: 9430, Reason: "decode metadata", Err: cause})

	var metaErr *MetadataError
	require.ErrorAs(t, err, &metaErr)
	require.Equal(t, uint32(9430), metaErr.SpecVersion)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "runtime metadata (spec version 9430): decode metadata: unexpected EOF", metaErr.Error())

	bare := &MetadataError{SpecVersion: 1, Reason: "unsupported metadata version 13"}
	require.Equal(t, "runtime metadata (spec version 1): unsupported metadata version 13", bare.Error())
}

func TestErrorType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "block not found", err: fmt.Errorf("block 7: %w", ErrBlockNotFound), want: "not_found"},
		{name: "metadata", err: &MetadataError{Reason: "x"}, want: "metadata"},
		{name: "json-rpc error", err: &mockJSONError{code: -32601, msg: "Method not found"}, want: "json_rpc"},
		{name: "transport", err: errors.New("websocket: close 1006 (abnormal closure): unexpected EOF"), want: "transport"},
		{name: "other", err: errors.New("something else"), want: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, errorType(tt.err))
		})
	}
}
