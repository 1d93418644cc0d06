package common

import (
	"strconv"
	"strings"
)

// ParseUint64orHex converts the given uint64 string into the number.
// It can parse the string with 0x prefix as well.
func ParseUint64orHex(val *string) (uint64, error) {
	if val == nil {
		return 0, nil
	}

	str := *val
	base := 10

	if strings.HasPrefix(str, "0x") {
		str = str[2:]
		base = 16
	}

	return strconv.ParseUint(str, base, 64)
}

const bytesInMB = 1024 * 1024

func BytesToMB(bytes uint64) uint64 {
	return bytes / bytesInMB
}

func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Shorten keeps the first and last n characters of s joined by "...".
// Strings of 2n characters or fewer are returned unchanged.
func Shorten(s string, n int) string {
	if n <= 0 || len(s) <= 2*n {
		return s
	}

	return s[:n] + "..." + s[len(s)-n:]
}
