package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func queryFixture() *CollectionResult {
	return NewCollectionResult(BlockRange{Start: 100, End: 103}, []NormalizedEvent{
		{ID: "a", BlockNumber: 100, Name: "ExtrinsicSuccess", Module: "System", ArgumentTypes: []string{"DispatchInfo"}},
		{ID: "b", BlockNumber: 101, Name: "Transfer", Module: "Balances", ArgumentTypes: []string{"AccountId", "AccountId", "Balance"}},
		{ID: "c", BlockNumber: 101, Name: "Withdraw", Module: "Balances", ArgumentTypes: []string{"AccountId", "Balance"}},
		{ID: "d", BlockNumber: 102, Name: "TransactionFeePaid", Module: "TransactionPayment", ArgumentTypes: []string{"AccountId", "Balance", "Balance"}},
		{ID: "e", BlockNumber: 103, Name: "ExtrinsicSuccess", Module: "System", ArgumentTypes: []string{"DispatchInfo"}},
	})
}

func ids(events []NormalizedEvent) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.ID)
	}
	return out
}

func TestCollectionResult_Query(t *testing.T) {
	result := queryFixture()

	tests := []struct {
		name          string
		query         *EventQuery
		expectedIDs   []string
		expectedTotal int
	}{
		{
			name:          "nil query uses defaults",
			query:         nil,
			expectedIDs:   []string{"e", "d", "b", "c", "a"},
			expectedTotal: 5,
		},
		{
			name:          "ascending keeps chain order",
			query:         &EventQuery{SortOrder: SortAsc},
			expectedIDs:   []string{"a", "b", "c", "d", "e"},
			expectedTotal: 5,
		},
		{
			name:          "name prefix",
			query:         &EventQuery{Names: []string{"Trans"}, SortOrder: SortAsc},
			expectedIDs:   []string{"b", "d"},
			expectedTotal: 2,
		},
		{
			name:          "names are alternatives",
			query:         &EventQuery{Names: []string{"Withdraw", "Extrinsic"}, SortOrder: SortAsc},
			expectedIDs:   []string{"a", "c", "e"},
			expectedTotal: 3,
		},
		{
			name:          "module prefix",
			query:         &EventQuery{Modules: []string{"Transaction"}},
			expectedIDs:   []string{"d"},
			expectedTotal: 1,
		},
		{
			name:          "argument type is exact",
			query:         &EventQuery{ArgumentTypes: []string{"Dispatch"}},
			expectedIDs:   []string{},
			expectedTotal: 0,
		},
		{
			name:          "filters combine",
			query:         &EventQuery{Modules: []string{"Balances"}, ArgumentTypes: []string{"Balance"}, Names: []string{"W"}},
			expectedIDs:   []string{"c"},
			expectedTotal: 1,
		},
		{
			name:          "paging",
			query:         &EventQuery{SortOrder: SortDesc, Limit: 2, Offset: 2},
			expectedIDs:   []string{"b", "c"},
			expectedTotal: 5,
		},
		{
			name:          "last partial page",
			query:         &EventQuery{SortOrder: SortAsc, Limit: 2, Offset: 4},
			expectedIDs:   []string{"e"},
			expectedTotal: 5,
		},
		{
			name:          "offset past the end",
			query:         &EventQuery{Limit: 10, Offset: 5},
			expectedIDs:   []string{},
			expectedTotal: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, total := result.Query(tt.query)
			require.Equal(t, tt.expectedIDs, ids(page))
			require.Equal(t, tt.expectedTotal, total)
		})
	}

	// querying never reorders the stored events
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(result.Events))
}

func TestEventQuery_Validate(t *testing.T) {
	require.NoError(t, NewDefaultEventQuery().Validate())
	require.NoError(t, (&EventQuery{}).Validate())

	require.ErrorContains(t, (&EventQuery{SortOrder: "newest"}).Validate(), "sort_order")
	require.ErrorContains(t, (&EventQuery{Limit: -1}).Validate(), "limit")
	require.ErrorContains(t, (&EventQuery{Offset: -1}).Validate(), "offset")
}
