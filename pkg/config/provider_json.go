package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONProvider loads configuration from a JSON file.
type JSONProvider struct {
	filename string
}

// NewJSONProvider creates a provider for the given file.
func NewJSONProvider(filename string) *JSONProvider {
	return &JSONProvider{filename: filename}
}

// LoadConfig reads and decodes the file. Unknown keys at the document root
// are rejected; keys inside driver config bags are ignored.
func (p *JSONProvider) LoadConfig() (*Data, error) {
	raw, err := os.ReadFile(p.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", p.filename, err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("config file %s is not valid JSON: %w", p.filename, err)
	}
	for key := range top {
		if !topLevelKeys[key] {
			return nil, fmt.Errorf("unknown top-level config key %q", key)
		}
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", p.filename, err)
	}
	return &data, nil
}

// IsReadOnly is always true for file providers.
func (p *JSONProvider) IsReadOnly() bool { return true }

// Close is a no-op.
func (p *JSONProvider) Close() error { return nil }
