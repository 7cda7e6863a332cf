package graph

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse decodes a pipeline definition from YAML.
func Parse(b []byte) (*Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("graph: parsing pipeline: %w", err)
	}
	return &p, nil
}

// ParseFile loads a pipeline definition from a YAML file.
func ParseFile(path string) (*Pipeline, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graph: reading %s: %w", path, err)
	}
	var p Pipeline
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("graph: parsing %s: %w", path, err)
	}
	return &p, nil
}
