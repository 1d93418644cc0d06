package scanner

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// DefaultPageLimit matches the page size of the events table.
	DefaultPageLimit = 10

	SortAsc  = "asc"
	SortDesc = "desc"
)

// EventQuery selects, orders and pages the events of a CollectionResult.
// Values within one filter are alternatives; different filters must all match.
type EventQuery struct {
	// Names keeps events whose name starts with any of the values
	Names []string

	// Modules keeps events whose module starts with any of the values
	Modules []string

	// ArgumentTypes keeps events with at least one argument of any of the types
	ArgumentTypes []string

	// SortOrder orders by block number: "asc" or "desc"
	SortOrder string

	// Pagination. A zero Limit returns every matching event.
	Limit  int
	Offset int
}

// NewDefaultEventQuery returns the first page, newest blocks first.
func NewDefaultEventQuery() *EventQuery {
	return &EventQuery{
		Limit:     DefaultPageLimit,
		SortOrder: SortDesc,
	}
}

// Validate checks sort order and pagination bounds.
func (q *EventQuery) Validate() error {
	if q.SortOrder != "" && q.SortOrder != SortAsc && q.SortOrder != SortDesc {
		return fmt.Errorf("sort_order must be one of: asc, desc")
	}
	if q.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	if q.Offset < 0 {
		return fmt.Errorf("offset must not be negative")
	}
	return nil
}

// Matches reports whether ev passes every filter of q.
func (q *EventQuery) Matches(ev NormalizedEvent) bool {
	if len(q.Names) > 0 && !hasAnyPrefix(ev.Name, q.Names) {
		return false
	}

	if len(q.Modules) > 0 && !hasAnyPrefix(ev.Module, q.Modules) {
		return false
	}

	if len(q.ArgumentTypes) > 0 && !slices.ContainsFunc(ev.ArgumentTypes, func(typ string) bool {
		return slices.Contains(q.ArgumentTypes, typ)
	}) {
		return false
	}

	return true
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Query returns one page of the events matching q and the total number of matches.
// Events of the same block keep the order the chain reported them in.
func (r *CollectionResult) Query(q *EventQuery) ([]NormalizedEvent, int) {
	if q == nil {
		q = NewDefaultEventQuery()
	}

	matched := make([]NormalizedEvent, 0, len(r.Events))
	for _, ev := range r.Events {
		if q.Matches(ev) {
			matched = append(matched, ev)
		}
	}

	if q.SortOrder != SortAsc {
		slices.SortStableFunc(matched, func(a, b NormalizedEvent) int {
			switch {
			case a.BlockNumber > b.BlockNumber:
				return -1
			case a.BlockNumber < b.BlockNumber:
				return 1
			default:
				return 0
			}
		})
	}

	total := len(matched)
	if q.Offset >= total {
		return []NormalizedEvent{}, total
	}

	end := total
	if q.Limit > 0 {
		end = min(q.Offset+q.Limit, total)
	}

	return matched[q.Offset:end], total
}
