package config

import (
	"encoding/json"
	"fmt"

	pkgconfig "github.com/goran-ethernal/SubstrateScanner/pkg/config"
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema describing the configuration file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}

	schema := r.Reflect(&pkgconfig.Config{})
	schema.Title = "SubstrateScanner configuration"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config schema: %w", err)
	}

	return data, nil
}
