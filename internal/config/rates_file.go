package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadRatesFile merges a YAML rates file over the current rates. Only fields
// present in the file are overridden.
func loadRatesFile(path string, rates *Rates) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	// Unmarshal into a copy seeded with current values so absent keys keep
	// their defaults.
	merged := *rates
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if merged.StatutoryLifeYears == nil {
		merged.StatutoryLifeYears = rates.StatutoryLifeYears
	}

	*rates = merged
	return nil
}
