// Package catalogue serves the embedded list of well known breaches.
package catalogue

import (
	"breachcheck/pkg/domain"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed breaches.yaml
var breachesYAML []byte

// Parse decodes a YAML list of catalogue entries.
func Parse(raw []byte) ([]domain.CatalogueEntry, error) {
	var entries []domain.CatalogueEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("could not parse breach catalogue: %w", err)
	}
	if entries == nil {
		entries = []domain.CatalogueEntry{}
	}

	return entries, nil
}

// Load returns the embedded catalogue.
func Load() ([]domain.CatalogueEntry, error) {
	return Parse(breachesYAML)
}
