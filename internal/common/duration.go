package common

import (
	"time"

	"github.com/invopop/jsonschema"
)

// Duration is a wrapper around time.Duration that reads and writes
// human-readable strings such as "30s" or "1h30m" in YAML, JSON and TOML.
type Duration struct {
	time.Duration
}

// NewDuration returns a Duration wrapping d.
func NewDuration(d time.Duration) Duration {
	return Duration{Duration: d}
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(data []byte) error {
	duration, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}

	d.Duration = duration
	return nil
}

// MarshalText renders the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// JSONSchema describes Duration as a string in the generated config schema.
func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Title:       "Duration",
		Description: "Duration expressed in units: [ns, us, ms, s, m, h]",
		Examples: []any{
			"30s",
			"30m",
		},
	}
}
