// ABOUTME: Shift code table and predefined solver scenarios
// ABOUTME: Loads YAML presets and derives shift windows from a code and calendar date

package services

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
)

//go:embed presets.yaml
var defaultPresets []byte

var (
	ErrUnknownShift    = errors.New("unknown shift code")
	ErrUnknownScenario = errors.New("unknown scenario")
)

// ShiftDefinition maps a shift code to two times of day.
type ShiftDefinition struct {
	Code  string `yaml:"code" json:"code"`
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// Scenario is a predefined solver run (site data prefix, date, shift).
type Scenario struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	// Prefix selects the solver's input data set
	Prefix string `yaml:"prefix" json:"prefix"`
	Date   string `yaml:"date" json:"date"`
	Shift  string `yaml:"shift" json:"shift"`
	Notes  string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Presets holds the shift table and scenario list.
type Presets struct {
	Shifts          []ShiftDefinition `yaml:"shifts" json:"shifts"`
	DefaultScenario string            `yaml:"default_scenario" json:"default_scenario"`
	Scenarios       []Scenario        `yaml:"scenarios" json:"scenarios"`
}

// LoadPresets reads presets from path, or the embedded defaults when path is empty.
func LoadPresets(path string) (*Presets, error) {
	data := defaultPresets
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read presets %s: %w", path, err)
		}
		data = b
	}
	return ParsePresets(data)
}

// ParsePresets decodes and validates a presets document.
func ParsePresets(data []byte) (*Presets, error) {
	var p Presets
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}

	for _, s := range p.Shifts {
		if _, _, err := parseClock(s.Start); err != nil {
			return nil, fmt.Errorf("shift %s start: %w", s.Code, err)
		}
		if _, _, err := parseClock(s.End); err != nil {
			return nil, fmt.Errorf("shift %s end: %w", s.Code, err)
		}
	}
	for _, sc := range p.Scenarios {
		if _, ok := p.shift(sc.Shift); !ok {
			return nil, fmt.Errorf("scenario %s: %w %q", sc.ID, ErrUnknownShift, sc.Shift)
		}
		if _, err := time.Parse(time.DateOnly, sc.Date); err != nil {
			return nil, fmt.Errorf("scenario %s date: %w", sc.ID, err)
		}
	}
	if p.DefaultScenario != "" {
		if _, err := p.Scenario(p.DefaultScenario); err != nil {
			return nil, fmt.Errorf("default scenario: %w", err)
		}
	}

	return &p, nil
}

// Scenario looks up a scenario by id.
func (p *Presets) Scenario(id string) (Scenario, error) {
	for _, sc := range p.Scenarios {
		if strings.EqualFold(sc.ID, id) {
			return sc, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, id)
}

// Window derives the shift window for code on date (YYYY-MM-DD) in loc.
// Shifts whose end time is not after their start run into the next day.
func (p *Presets) Window(code, date string, loc *time.Location) (*models.ShiftWindow, error) {
	def, ok := p.shift(code)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownShift, code)
	}
	if loc == nil {
		loc = time.UTC
	}

	day, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid shift date %q: %w", date, err)
	}
	sh, sm, _ := parseClock(def.Start)
	eh, em, _ := parseClock(def.End)

	start := time.Date(day.Year(), day.Month(), day.Day(), sh, sm, 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), eh, em, 0, 0, loc)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return &models.ShiftWindow{Start: start, End: end}, nil
}

// ScenarioWindow derives the shift window for a predefined scenario.
func (p *Presets) ScenarioWindow(id string, loc *time.Location) (*models.ShiftWindow, error) {
	sc, err := p.Scenario(id)
	if err != nil {
		return nil, err
	}
	return p.Window(sc.Shift, sc.Date, loc)
}

func (p *Presets) shift(code string) (ShiftDefinition, bool) {
	for _, s := range p.Shifts {
		if strings.EqualFold(s.Code, strings.TrimSpace(code)) {
			return s, true
		}
	}
	return ShiftDefinition{}, false
}

// parseClock splits "HH:MM" into hour and minute.
func parseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	return t.Hour(), t.Minute(), nil
}
