// v0
// fixture.go
package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture is a flat list of registry key/value entries, for seeding a
// badger store from a hand-written YAML file ahead of a debug session.
type Fixture struct {
	Entries []FixtureEntry `yaml:"entries"`
}

// FixtureEntry is one registry record.
type FixtureEntry struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// loadFixture reads and strictly decodes a fixture file, rejecting
// unknown fields so a typo'd key name fails loudly instead of silently
// seeding nothing.
func loadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i, e := range f.Entries {
		if e.Key == "" {
			return nil, fmt.Errorf("entries[%d]: key is required", i)
		}
	}
	return &f, nil
}
