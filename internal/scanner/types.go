package scanner

import (
	"maps"
	"slices"
)

// BlockRange is an inclusive range of block heights.
type BlockRange struct {
	Start uint64 `json:"start_block"`
	End   uint64 `json:"end_block"`
}

// Validate returns a *RangeError when Start is after End.
func (r BlockRange) Validate() error {
	if r.Start > r.End {
		return &RangeError{Start: r.Start, End: r.End}
	}
	return nil
}

// Len returns the number of blocks in the range. The range must be valid.
func (r BlockRange) Len() uint64 {
	return r.End - r.Start + 1
}

// DefaultRange returns the window blocks ending at head, clamped at genesis.
func DefaultRange(head, window uint64) BlockRange {
	start := uint64(0)
	if head > window {
		start = head - window
	}
	return BlockRange{Start: start, End: head}
}

// NormalizedEvent is one event occurrence flattened for display and export.
// ArgumentValues, ArgumentNames and ArgumentTypes are index-aligned.
type NormalizedEvent struct {
	ID             string   `json:"id"`
	BlockNumber    uint64   `json:"block_number"`
	Name           string   `json:"name"`
	Module         string   `json:"module"`
	Metadata       string   `json:"metadata"`
	ArgumentValues []string `json:"argument_values"`
	ArgumentNames  []string `json:"argument_names"`
	ArgumentTypes  []string `json:"argument_types"`
}

// FacetFilter is one selectable filter option.
type FacetFilter struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FacetSets accumulates the distinct event names, modules and argument types of a scan.
type FacetSets struct {
	Names         map[string]struct{}
	Modules       map[string]struct{}
	ArgumentTypes map[string]struct{}
}

// NewFacetSets returns empty facet sets.
func NewFacetSets() *FacetSets {
	return &FacetSets{
		Names:         make(map[string]struct{}),
		Modules:       make(map[string]struct{}),
		ArgumentTypes: make(map[string]struct{}),
	}
}

// Add merges the facets of ev.
func (f *FacetSets) Add(ev NormalizedEvent) {
	f.Names[ev.Name] = struct{}{}
	f.Modules[ev.Module] = struct{}{}
	for _, typ := range ev.ArgumentTypes {
		f.ArgumentTypes[typ] = struct{}{}
	}
}

// BuildFilters maps every member of set to a filter whose label and value are the member.
// The output is sorted by value so repeated calls render identically.
func BuildFilters(set map[string]struct{}) []FacetFilter {
	filters := make([]FacetFilter, 0, len(set))
	for _, member := range slices.Sorted(maps.Keys(set)) {
		filters = append(filters, FacetFilter{Label: member, Value: member})
	}
	return filters
}

// CollectionResult is the immutable outcome of a successful scan.
type CollectionResult struct {
	Range           BlockRange        `json:"range"`
	Events          []NormalizedEvent `json:"events"`
	NameFilters     []FacetFilter     `json:"name_filters"`
	ModuleFilters   []FacetFilter     `json:"module_filters"`
	ArgumentFilters []FacetFilter     `json:"argument_filters"`
}

// NewCollectionResult builds a result whose filters are derived from events.
func NewCollectionResult(r BlockRange, events []NormalizedEvent) *CollectionResult {
	facets := NewFacetSets()
	for _, ev := range events {
		facets.Add(ev)
	}

	return newCollectionResult(r, events, facets)
}

func newCollectionResult(r BlockRange, events []NormalizedEvent, facets *FacetSets) *CollectionResult {
	if events == nil {
		events = []NormalizedEvent{}
	}

	return &CollectionResult{
		Range:           r,
		Events:          events,
		NameFilters:     BuildFilters(facets.Names),
		ModuleFilters:   BuildFilters(facets.Modules),
		ArgumentFilters: BuildFilters(facets.ArgumentTypes),
	}
}
