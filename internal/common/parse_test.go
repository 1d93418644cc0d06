package common

import (
	"testing"
)

func TestParseUint64orHex(t *testing.T) {
	tests := []struct {
		name    string
		input   *string
		want    uint64
		wantErr bool
	}{
		{
			name:    "nil input",
			input:   nil,
			want:    0,
			wantErr: false,
		},
		{
			name:    "decimal string",
			input:   strPtr("12345"),
			want:    12345,
			wantErr: false,
		},
		{
			name:    "hex string with 0x prefix",
			input:   strPtr("0x1a2b"),
			want:    0x1a2b,
			wantErr: false,
		},
		{
			name:    "substrate header number",
			input:   strPtr("0x01546a2c"),
			want:    22309420,
			wantErr: false,
		},
		{
			name:    "hex string with 0x prefix and uppercase",
			input:   strPtr("0xDEADBEEF"),
			want:    0xDEADBEEF,
			wantErr: false,
		},
		{
			name:    "invalid decimal string",
			input:   strPtr("12abc"),
			want:    0,
			wantErr: true,
		},
		{
			name:    "invalid hex string",
			input:   strPtr("0xGHIJK"),
			want:    0,
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   strPtr(""),
			want:    0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUint64orHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseUint64orHex() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseUint64orHex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShorten(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{name: "short string unchanged", input: "abc", n: 15, want: "abc"},
		{name: "exactly twice n unchanged", input: "abcdef", n: 3, want: "abcdef"},
		{name: "long string shortened", input: "abcdefghij", n: 3, want: "abc...hij"},
		{name: "non-positive n", input: "abcdefghij", n: 0, want: "abcdefghij"},
		{
			name:  "stored events url",
			input: "https://archive.example.org/events/5f8d0a9b",
			n:     15,
			want:  "https://archive...events/5f8d0a9b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Shorten(tt.input, tt.n); got != tt.want {
				t.Errorf("Shorten() = %q, want %q", got, tt.want)
			}
		})
	}
}

func strPtr(s string) *string {
	return &s
}
