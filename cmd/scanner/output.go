package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goran-ethernal/SubstrateScanner/internal/scanner"
	"github.com/olekukonko/tablewriter"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

type jsonOutput struct {
	Range           scanner.BlockRange        `json:"range"`
	Total           int                       `json:"total"`
	Events          []scanner.NormalizedEvent `json:"events"`
	NameFilters     []scanner.FacetFilter     `json:"name_filters"`
	ModuleFilters   []scanner.FacetFilter     `json:"module_filters"`
	ArgumentFilters []scanner.FacetFilter     `json:"argument_filters"`
}

func renderJSON(w io.Writer, result *scanner.CollectionResult, events []scanner.NormalizedEvent, total int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(jsonOutput{
		Range:           result.Range,
		Total:           total,
		Events:          events,
		NameFilters:     result.NameFilters,
		ModuleFilters:   result.ModuleFilters,
		ArgumentFilters: result.ArgumentFilters,
	})
}

func renderTable(w io.Writer, events []scanner.NormalizedEvent, total int) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Block", "Module", "Event", "Arguments"})
	table.SetAutoWrapText(false)
	table.SetRowLine(true)

	for _, ev := range events {
		table.Append([]string{
			strconv.FormatUint(ev.BlockNumber, 10),
			ev.Module,
			ev.Name,
			formatArguments(ev),
		})
	}

	table.Render()

	_, err := fmt.Fprintf(w, "%d of %d events\n", len(events), total)
	return err
}

// formatArguments renders one "name (Type): value" line per argument.
func formatArguments(ev scanner.NormalizedEvent) string {
	lines := make([]string, 0, len(ev.ArgumentValues))
	for i, value := range ev.ArgumentValues {
		name, typ := "", ""
		if i < len(ev.ArgumentNames) {
			name = ev.ArgumentNames[i]
		}
		if i < len(ev.ArgumentTypes) {
			typ = ev.ArgumentTypes[i]
		}

		switch {
		case name != "" && name != typ:
			lines = append(lines, fmt.Sprintf("%s (%s): %s", name, typ, value))
		default:
			lines = append(lines, fmt.Sprintf("%s: %s", typ, value))
		}
	}
	return strings.Join(lines, "\n")
}
