package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goran-ethernal/SubstrateScanner/internal/scanner"
	"github.com/graphql-go/graphql/language/parser"
)

// MutationName is the remote mutation storing a scan.
const MutationName = "addEvents"

var argumentStripper = strings.NewReplacer(`\`, "", `"`, "", "\n", "")

// Serialize renders events as a GraphQL list literal of event input objects:
//
//	[{key: "…", blockNumber: 101, name: "Transfer", module: "Balances", metadata: "…",
//	  arguments: {argsArr: ["AccountId: 5Grw…"], argNames: ["from"]}}]
//
// events is not modified.
func Serialize(events []scanner.NormalizedEvent) string {
	var b strings.Builder

	b.WriteByte('[')
	for i, ev := range events {
		if i > 0 {
			b.WriteString(", ")
		}
		writeEvent(&b, ev)
	}
	b.WriteByte(']')

	return b.String()
}

func writeEvent(b *strings.Builder, ev scanner.NormalizedEvent) {
	b.WriteString("{key: ")
	b.WriteString(quote(ev.ID))
	b.WriteString(", blockNumber: ")
	b.WriteString(strconv.FormatUint(ev.BlockNumber, 10))
	b.WriteString(", name: ")
	b.WriteString(quote(ev.Name))
	b.WriteString(", module: ")
	b.WriteString(quote(ev.Module))
	b.WriteString(", metadata: ")
	b.WriteString(quote(strings.ReplaceAll(ev.Metadata, `\`, "")))

	args := make([]string, len(ev.ArgumentValues))
	for i, value := range ev.ArgumentValues {
		args[i] = argumentStripper.Replace(ev.ArgumentTypes[i] + ": " + value)
	}

	b.WriteString(", arguments: {argsArr: ")
	writeList(b, args)
	b.WriteString(", argNames: ")
	writeList(b, ev.ArgumentNames)
	b.WriteString("}}")
}

func writeList(b *strings.Builder, values []string) {
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(v))
	}
	b.WriteByte(']')
}

// quote returns s as a double-quoted string literal. JSON string escapes are a
// subset of GraphQL's, so control characters left in s stay escaped.
func quote(s string) string {
	bz, err := json.Marshal(s)
	if err != nil {
		// strings always marshal
		panic(err)
	}
	return string(bz)
}

// BuildMutation wraps the serialized events into the addEvents mutation document
// and checks that the result parses.
func BuildMutation(endpoint string, r scanner.BlockRange, events []scanner.NormalizedEvent) (string, error) {
	mutation := fmt.Sprintf("mutation { %s(polkadotURL: %s, startBlock: %d, endBlock: %d, events: %s) }",
		MutationName, quote(endpoint), r.Start, r.End, Serialize(events))

	if _, err := parser.Parse(parser.ParseParams{Source: mutation}); err != nil {
		return "", fmt.Errorf("malformed %s mutation: %w", MutationName, err)
	}

	return mutation, nil
}
