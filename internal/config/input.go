// Package config loads comparison requests from YAML or JSON files and
// enforces the wire-contract defaults and validation before the engine runs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/karimaz/switchcalc/internal/domain"
)

// InputParser handles parsing of comparison request files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a comparison request from a YAML or JSON file. JSON is
// a YAML subset, so one decoder covers both.
func (ip *InputParser) LoadFromFile(filename string) (*domain.ComparisonRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a request, applies defaults, and validates it.
func (ip *InputParser) Parse(data []byte) (*domain.ComparisonRequest, error) {
	var req domain.ComparisonRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	return &req, nil
}
