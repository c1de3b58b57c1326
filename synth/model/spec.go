// Package model loads YAML model specifications and builds the record
// producer and arrival model they describe.
package model

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ModelSpec is the top-level model configuration.
// Loaded from YAML via LoadModelSpec(path).
type ModelSpec struct {
	Version string      `yaml:"version"`
	Seed    int64       `yaml:"seed"`
	DataDir string      `yaml:"data_dir,omitempty"`
	Arrival ArrivalSpec `yaml:"arrival"`
	Fields  []FieldSpec `yaml:"fields"`
}

// ArrivalSpec configures the arrival batch model.
type ArrivalSpec struct {
	RatePerMs float64     `yaml:"rate_per_ms"`
	Minimum   int         `yaml:"minimum"`
	Source    *SourceSpec `yaml:"source,omitempty"` // default uniform
}

// SourceSpec selects a uniform source.
type SourceSpec struct {
	Type       string          `yaml:"type"`
	Alpha      float64         `yaml:"alpha,omitempty"`
	Beta       float64         `yaml:"beta,omitempty"`
	Components []ComponentSpec `yaml:"components,omitempty"`
}

// ComponentSpec is one weighted child of a mixture source.
type ComponentSpec struct {
	Weight float64    `yaml:"weight"`
	Source SourceSpec `yaml:"source"`
}

// FieldSpec defines one record field.
type FieldSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// list, csv
	States  []string  `yaml:"states,omitempty"`
	Weights []float64 `yaml:"weights,omitempty"`
	File    string    `yaml:"file,omitempty"`
	Skip    int       `yaml:"skip,omitempty"`
	// weighted resources: column of the weight, -1 for line-per-state files
	WeightColumn *int `yaml:"weight_column,omitempty"`

	// csv
	Columns []string `yaml:"columns,omitempty"`

	// dates
	From *time.Time `yaml:"from,omitempty"`
	To   *time.Time `yaml:"to,omitempty"`

	// ages
	Young int `yaml:"young,omitempty"`
	Old   int `yaml:"old,omitempty"`

	// range
	Min float64 `yaml:"min,omitempty"`
	Max float64 `yaml:"max,omitempty"`

	// full_names
	First string `yaml:"first,omitempty"`
	Last  string `yaml:"last,omitempty"`

	Source *SourceSpec `yaml:"source,omitempty"`
}

// Field types.
const (
	FieldList        = "list"
	FieldCSV         = "csv"
	FieldDates       = "dates"
	FieldRecentDates = "recent_dates"
	FieldAges        = "ages"
	FieldRange       = "range"
	FieldFullNames   = "full_names"
)

// Source types.
const (
	SourceUniform = "uniform"
	SourceBeta    = "beta"
	SourceMixture = "mixture"
)

// Valid value registries.
var (
	validFieldTypes = map[string]bool{
		FieldList: true, FieldCSV: true, FieldDates: true, FieldRecentDates: true,
		FieldAges: true, FieldRange: true, FieldFullNames: true,
	}
	validSourceTypes = map[string]bool{
		"": true, SourceUniform: true, SourceBeta: true, SourceMixture: true,
	}
)

// LoadModelSpec reads and parses a YAML model spec.
// Uses strict field checking: unknown keys are errors.
func LoadModelSpec(path string) (*ModelSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model spec: %w", err)
	}
	return ParseModelSpec(data)
}

// ParseModelSpec parses a YAML model spec from memory.
func ParseModelSpec(data []byte) (*ModelSpec, error) {
	var spec ModelSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing model spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks the spec for configuration errors. Every error names the
// offending field.
func (s *ModelSpec) Validate() error {
	if s.Version != "1" {
		return fmt.Errorf("unsupported version %q", s.Version)
	}
	if err := validateFinitePositive("arrival.rate_per_ms", s.Arrival.RatePerMs); err != nil {
		return err
	}
	if s.Arrival.Minimum < 0 {
		return fmt.Errorf("arrival.minimum must be non-negative, got %d", s.Arrival.Minimum)
	}
	if s.Arrival.Source != nil {
		if err := s.Arrival.Source.validate("arrival.source"); err != nil {
			return err
		}
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("at least one field is required")
	}
	seen := make(map[string]bool, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		prefix := fmt.Sprintf("fields[%d]", i)
		if f.Name == "" {
			return fmt.Errorf("%s: name is required", prefix)
		}
		if seen[f.Name] {
			return fmt.Errorf("%s: duplicate field name %q", prefix, f.Name)
		}
		seen[f.Name] = true
		if err := f.validate(fmt.Sprintf("%s (%s)", prefix, f.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (f *FieldSpec) validate(prefix string) error {
	if !validFieldTypes[f.Type] {
		return fmt.Errorf("%s: unknown type %q", prefix, f.Type)
	}
	if f.Source != nil {
		if err := f.Source.validate(prefix + ".source"); err != nil {
			return err
		}
	}
	switch f.Type {
	case FieldList, FieldCSV:
		if (len(f.States) == 0) == (f.File == "") {
			return fmt.Errorf("%s: exactly one of states or file is required", prefix)
		}
		if len(f.Weights) > 0 && len(f.Weights) != len(f.States) {
			return fmt.Errorf("%s: %d weights for %d states", prefix, len(f.Weights), len(f.States))
		}
		if f.Skip < 0 {
			return fmt.Errorf("%s: skip must be non-negative", prefix)
		}
		if f.WeightColumn != nil && f.File == "" {
			return fmt.Errorf("%s: weight_column requires file", prefix)
		}
		if f.Type == FieldCSV && len(f.Columns) == 0 {
			logrus.Warnf("%s: no columns given; using default zip code columns", prefix)
		}
	case FieldDates:
		if f.From == nil {
			return fmt.Errorf("%s: from is required", prefix)
		}
		if f.To != nil && f.To.Before(*f.From) {
			return fmt.Errorf("%s: to %v is before from %v", prefix, *f.To, *f.From)
		}
	case FieldAges:
		if f.Old != 0 || f.Young != 0 {
			if f.Young < 0 || f.Old <= f.Young {
				return fmt.Errorf("%s: need 0 <= young < old, got young=%d old=%d", prefix, f.Young, f.Old)
			}
		}
	case FieldRange:
		if math.IsNaN(f.Min) || math.IsNaN(f.Max) || f.Max < f.Min {
			return fmt.Errorf("%s: need min <= max, got min=%g max=%g", prefix, f.Min, f.Max)
		}
	case FieldFullNames:
		if f.First == "" || f.Last == "" {
			return fmt.Errorf("%s: first and last name files are required", prefix)
		}
	}
	return nil
}

func (s *SourceSpec) validate(prefix string) error {
	if !validSourceTypes[s.Type] {
		return fmt.Errorf("%s: unknown source type %q", prefix, s.Type)
	}
	switch s.Type {
	case SourceBeta:
		if err := validateFinitePositive(prefix+".alpha", s.Alpha); err != nil {
			return err
		}
		if err := validateFinitePositive(prefix+".beta", s.Beta); err != nil {
			return err
		}
	case SourceMixture:
		if len(s.Components) == 0 {
			return fmt.Errorf("%s: mixture needs at least one component", prefix)
		}
		for i := range s.Components {
			c := &s.Components[i]
			cp := fmt.Sprintf("%s.components[%d]", prefix, i)
			if c.Weight < 0 || math.IsNaN(c.Weight) {
				return fmt.Errorf("%s: weight must be non-negative, got %g", cp, c.Weight)
			}
			if err := c.Source.validate(cp + ".source"); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateFinitePositive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return fmt.Errorf("%s must be positive and finite, got %g", name, v)
	}
	return nil
}
