package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider loads configuration from a YAML file.
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a provider for the given file.
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{filename: filename}
}

// LoadConfig reads and decodes the file with the same top-level key policy
// as the JSON provider.
func (p *YAMLProvider) LoadConfig() (*Data, error) {
	raw, err := os.ReadFile(p.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", p.filename, err)
	}

	var top map[string]interface{}
	if err := yaml.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("config file %s is not valid YAML: %w", p.filename, err)
	}
	for key := range top {
		if !topLevelKeys[key] {
			return nil, fmt.Errorf("unknown top-level config key %q", key)
		}
	}

	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", p.filename, err)
	}
	return &data, nil
}

// IsReadOnly is always true for file providers.
func (p *YAMLProvider) IsReadOnly() bool { return true }

// Close is a no-op.
func (p *YAMLProvider) Close() error { return nil }
