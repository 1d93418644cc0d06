package rpc

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v4/registry"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/vedhavyas/go-subkey/v2"
)

// genericSS58Format is the address prefix of chains that do not report their own.
const genericSS58Format uint16 = 42

var accountTypes = map[string]struct{}{
	"AccountId":   {},
	"AccountId32": {},
}

// displayValue wraps a decoded SCALE value so that fmt.Sprint renders it the way
// block explorers do: accounts as SS58 addresses, byte arrays as 0x-hex and
// composites as {name: value}.
type displayValue struct {
	value any

	account    bool
	ss58Format uint16
}

func (d displayValue) String() string {
	if d.account {
		if pub, ok := accountBytes(d.value); ok {
			return subkey.SS58Encode(pub, d.ss58Format)
		}
	}

	return formatValue(d.value)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case displayValue:
		return val.String()
	case registry.DecodedFields:
		return formatFields(val)
	case map[string]any:
		return formatMap(val)
	case []byte:
		return hexutil.Encode(val)
	case []any:
		if bz, ok := asBytes(val); ok {
			return hexutil.Encode(bz)
		}
		return formatList(val)
	case types.UCompact:
		return (*big.Int)(&val).String()
	case *types.UCompact:
		return (*big.Int)(val).String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// formatFields renders a single unnamed field as its inner value
// (newtype wrappers such as AccountId32) and everything else as {name: value}.
func formatFields(fields registry.DecodedFields) string {
	if len(fields) == 1 && fields[0] != nil && fields[0].Name == "" {
		return formatValue(fields[0].Value)
	}

	parts := make([]string, 0, len(fields))
	for i, field := range fields {
		if field == nil {
			continue
		}

		name := field.Name
		if name == "" {
			name = strconv.Itoa(i)
		}
		parts = append(parts, name+": "+formatValue(field.Value))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func formatMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+formatValue(m[k]))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func formatList(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, formatValue(item))
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// asBytes reports whether every element is a byte and returns them.
func asBytes(items []any) ([]byte, bool) {
	if len(items) == 0 {
		return nil, false
	}

	bz := make([]byte, 0, len(items))
	for _, item := range items {
		switch b := item.(type) {
		case types.U8:
			bz = append(bz, byte(b))
		case uint8:
			bz = append(bz, b)
		default:
			return nil, false
		}
	}

	return bz, true
}

// accountBytes unwraps an AccountId32 value into its 32 public key bytes.
func accountBytes(v any) ([]byte, bool) {
	var bz []byte

	switch val := v.(type) {
	case registry.DecodedFields:
		if len(val) != 1 || val[0] == nil {
			return nil, false
		}
		return accountBytes(val[0].Value)
	case types.AccountID:
		bz = val[:]
	case []byte:
		bz = val
	case []any:
		b, ok := asBytes(val)
		if !ok {
			return nil, false
		}
		bz = b
	default:
		return nil, false
	}

	return bz, len(bz) == types.AccountIDLen
}
