package paramset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse parses a File from YAML bytes and validates it. Used for APIs where
// the declaration arrives as a payload rather than from the filesystem.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("paramset: failed to parse yaml: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, fmt.Errorf("paramset: invalid parameter set: %w", err)
	}
	return &f, nil
}

// ParseString is a convenience wrapper around Parse for inline YAML text.
func ParseString(yamlText string) (*File, error) {
	return Parse([]byte(yamlText))
}

// Load reads and parses a parameter-set file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("paramset: failed to read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("paramset: failed to parse %s: %w", path, err)
	}
	return f, nil
}
