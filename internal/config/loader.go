package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	pkgconfig "github.com/goran-ethernal/SubstrateScanner/pkg/config"
	"gopkg.in/yaml.v3"
)

// format describes one supported configuration file syntax.
type format struct {
	name      string
	tag       string
	unmarshal func(data []byte, v any) error
}

var (
	yamlFormat = format{name: "YAML", tag: "yaml", unmarshal: yaml.Unmarshal}
	jsonFormat = format{name: "JSON", tag: "json", unmarshal: json.Unmarshal}
	tomlFormat = format{name: "TOML", tag: "toml", unmarshal: toml.Unmarshal}

	formats = map[string]format{
		".yaml": yamlFormat,
		".yml":  yamlFormat,
		".json": jsonFormat,
		".toml": tomlFormat,
	}
)

// LoadFromFile loads configuration from a file, auto-detecting the format by extension.
// Supported formats: .yaml, .yml, .json, .toml
func LoadFromFile(path string) (*pkgconfig.Config, error) {
	ext := strings.ToLower(filepath.Ext(path))

	f, ok := formats[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json, .toml)", ext)
	}

	return load(path, f)
}

// load decodes path, rejects keys the configuration does not define (the same
// closed set `scanner schema` publishes), then applies defaults and validates.
func load(path string, f format) (*pkgconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := f.unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s config %s: %w", f.name, path, err)
	}

	if key := unknownKey(raw, reflect.TypeFor[pkgconfig.Config](), f.tag, ""); key != "" {
		return nil, fmt.Errorf("invalid configuration in %s: unknown key %q", path, key)
	}

	var cfg pkgconfig.Config
	if err := f.unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s config %s: %w", f.name, path, err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return &cfg, nil
}

// unknownKey returns the dotted path of the first key in raw that t has no field for,
// descending into nested sections.
func unknownKey(raw map[string]any, t reflect.Type, tag, prefix string) string {
	fields := make(map[string]reflect.Type, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)

		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "" || name == "-" {
			continue
		}
		fields[name] = field.Type
	}

	for _, key := range slices.Sorted(maps.Keys(raw)) {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		fieldType, ok := fields[key]
		if !ok {
			return path
		}

		if fieldType.Kind() == reflect.Pointer {
			fieldType = fieldType.Elem()
		}

		// durations are strings in the file, so only real sections arrive as maps
		nested, isSection := raw[key].(map[string]any)
		if fieldType.Kind() != reflect.Struct || !isSection {
			continue
		}

		if nestedKey := unknownKey(nested, fieldType, tag, path); nestedKey != "" {
			return nestedKey
		}
	}

	return ""
}
