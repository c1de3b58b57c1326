package model

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTestSpec returns a minimal valid ModelSpec.
func makeTestSpec(seed int64) *ModelSpec {
	return &ModelSpec{
		Version: "1",
		Seed:    seed,
		Arrival: ArrivalSpec{RatePerMs: 0.01, Minimum: 1},
		Fields: []FieldSpec{
			{Name: "status", Type: FieldList, States: []string{"active", "idle"}, Weights: []float64{3, 1}},
			{Name: "age", Type: FieldAges},
		},
	}
}

func TestLoadModelSpec_ExampleFile(t *testing.T) {
	// GIVEN the people.yaml example
	spec, err := LoadModelSpec(filepath.Join("testdata", "people.yaml"))
	require.NoError(t, err)

	// THEN it parses and validates
	require.NoError(t, spec.Validate())
	assert.Equal(t, int64(42), spec.Seed)
	assert.Equal(t, 0.01, spec.Arrival.RatePerMs)
	require.Len(t, spec.Fields, 6)
	assert.Equal(t, FieldFullNames, spec.Fields[0].Type)
	assert.Equal(t, []float64{6, 3, 1}, spec.Fields[1].Weights)
	require.NotNil(t, spec.Fields[5].Source)
	assert.Equal(t, SourceMixture, spec.Fields[5].Source.Type)
	assert.Len(t, spec.Fields[5].Source.Components, 2)
}

func TestParseModelSpec_UnknownField_Rejected(t *testing.T) {
	_, err := ParseModelSpec([]byte("seed: 1\nrate: 3\n"))
	assert.Error(t, err, "typos must cause errors")
}

func TestParseModelSpec_DefaultsVersion(t *testing.T) {
	spec, err := ParseModelSpec([]byte("seed: 7\n"))
	require.NoError(t, err)
	assert.Equal(t, "1", spec.Version)
}

func TestParseModelSpec_Dates(t *testing.T) {
	spec, err := ParseModelSpec([]byte(`
arrival: {rate_per_ms: 1}
fields:
  - name: d
    type: dates
    from: 2000-06-01T00:00:00Z
    to: 2010-06-01T00:00:00Z
`))
	require.NoError(t, err)
	require.NoError(t, spec.Validate())
	require.NotNil(t, spec.Fields[0].From)
	assert.True(t, spec.Fields[0].From.Equal(time.Date(2000, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, makeTestSpec(1).Validate())
}

func TestValidate_Errors(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	before := from.Add(-time.Hour)
	col := 1
	tests := []struct {
		name    string
		mutate  func(*ModelSpec)
		wantMsg string
	}{
		{"bad version", func(s *ModelSpec) { s.Version = "9" }, "unsupported version"},
		{"zero rate", func(s *ModelSpec) { s.Arrival.RatePerMs = 0 }, "arrival.rate_per_ms"},
		{"negative minimum", func(s *ModelSpec) { s.Arrival.Minimum = -1 }, "arrival.minimum"},
		{"no fields", func(s *ModelSpec) { s.Fields = nil }, "at least one field"},
		{"unnamed field", func(s *ModelSpec) { s.Fields[0].Name = "" }, "name is required"},
		{"duplicate field", func(s *ModelSpec) { s.Fields[1].Name = "status" }, "duplicate field"},
		{"unknown type", func(s *ModelSpec) { s.Fields[0].Type = "zipf" }, "unknown type"},
		{"states and file", func(s *ModelSpec) { s.Fields[0].File = "x.csv" }, "exactly one of states or file"},
		{"neither states nor file", func(s *ModelSpec) { s.Fields[0].States = nil; s.Fields[0].Weights = nil }, "exactly one of states or file"},
		{"weight mismatch", func(s *ModelSpec) { s.Fields[0].Weights = []float64{1} }, "1 weights for 2 states"},
		{"weight column without file", func(s *ModelSpec) { s.Fields[0].WeightColumn = &col }, "weight_column requires file"},
		{"dates without from", func(s *ModelSpec) { s.Fields[1] = FieldSpec{Name: "d", Type: FieldDates} }, "from is required"},
		{"dates inverted", func(s *ModelSpec) {
			s.Fields[1] = FieldSpec{Name: "d", Type: FieldDates, From: &from, To: &before}
		}, "is before from"},
		{"ages inverted", func(s *ModelSpec) { s.Fields[1].Young, s.Fields[1].Old = 50, 20 }, "young < old"},
		{"range inverted", func(s *ModelSpec) {
			s.Fields[1] = FieldSpec{Name: "r", Type: FieldRange, Min: 5, Max: 1}
		}, "min <= max"},
		{"full names missing last", func(s *ModelSpec) {
			s.Fields[1] = FieldSpec{Name: "n", Type: FieldFullNames, First: "f.csv"}
		}, "first and last"},
		{"unknown source", func(s *ModelSpec) { s.Fields[1].Source = &SourceSpec{Type: "pareto"} }, "unknown source type"},
		{"beta without shape", func(s *ModelSpec) { s.Fields[1].Source = &SourceSpec{Type: SourceBeta, Alpha: 1} }, ".beta must be positive"},
		{"empty mixture", func(s *ModelSpec) { s.Arrival.Source = &SourceSpec{Type: SourceMixture} }, "at least one component"},
		{"negative component weight", func(s *ModelSpec) {
			s.Arrival.Source = &SourceSpec{Type: SourceMixture, Components: []ComponentSpec{{Weight: -1}}}
		}, "weight must be non-negative"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := makeTestSpec(1)
			tc.mutate(spec)
			err := spec.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}
