package scanner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	pkgrpc "github.com/goran-ethernal/SubstrateScanner/pkg/rpc"
)

// Normalize flattens raw into a NormalizedEvent at blockNumber.
// Every call assigns a fresh random ID; all other fields depend only on the input.
func Normalize(raw pkgrpc.RawEvent, blockNumber uint64) NormalizedEvent {
	ev := NormalizedEvent{
		ID:             uuid.NewString(),
		BlockNumber:    blockNumber,
		Name:           raw.Method,
		Module:         raw.Section,
		Metadata:       strings.ReplaceAll(strings.Join(raw.Docs, " "), `\`, ""),
		ArgumentValues: make([]string, len(raw.Data)),
		ArgumentNames:  make([]string, len(raw.Data)),
		ArgumentTypes:  make([]string, len(raw.Data)),
	}

	for i, value := range raw.Data {
		ev.ArgumentValues[i] = fmt.Sprint(value)
		ev.ArgumentTypes[i] = raw.Types[i]
		ev.ArgumentNames[i] = raw.Args[i]
	}

	return ev
}
