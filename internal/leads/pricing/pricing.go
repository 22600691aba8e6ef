// Package pricing provides the fixed daily-rate lookup for the facility this
// instance serves. Rates depend on stay duration, room type and care level.
// The table is data: adding a tier or a facility variant means editing the
// YAML, not the lookup.
package pricing

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_rates.yaml
var defaultRatesYAML []byte

// Table maps duration → room type → care level → daily rate.
type Table struct {
	Facility string                                   `yaml:"facility"`
	Currency string                                   `yaml:"currency"`
	Rates    map[string]map[string]map[string]float64 `yaml:"rates"`
}

// Default returns the built-in rate table.
func Default() *Table {
	t, err := parse(defaultRatesYAML)
	if err != nil {
		// The embedded table is validated by tests; this cannot happen at runtime.
		panic(fmt.Sprintf("pricing: embedded rate table invalid: %v", err))
	}
	return t
}

// Load reads a rate table from a YAML file. An empty path yields the
// built-in default.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing table: %w", err)
	}
	t, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse pricing table %s: %w", path, err)
	}
	return t, nil
}

func parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if len(t.Rates) == 0 {
		return nil, fmt.Errorf("no rates defined")
	}
	return &t, nil
}

// DailyRate looks up the daily rate for the given stay duration, room type
// and care level ("1".."4"). Absence (a missing input, an unknown value, or
// a combination not offered, e.g. no short-stay triple rooms) is signaled
// by ok=false, never by an error: callers must treat it as incomplete
// pricing inputs.
func (t *Table) DailyRate(duration, roomType, careLevel string) (float64, bool) {
	if duration == "" || roomType == "" || careLevel == "" {
		return 0, false
	}
	rooms, ok := t.Rates[duration]
	if !ok {
		return 0, false
	}
	levels, ok := rooms[roomType]
	if !ok {
		return 0, false
	}
	rate, ok := levels[careLevel]
	if !ok {
		return 0, false
	}
	return rate, true
}
