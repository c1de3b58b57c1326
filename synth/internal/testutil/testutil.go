// Package testutil provides shared test infrastructure for the synth packages.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ScriptedSource replays a fixed sequence of draws, cycling when exhausted.
// It counts how many draws were taken.
type ScriptedSource struct {
	Draws []float64
	Calls int
}

// NewScriptedSource creates a ScriptedSource over draws.
func NewScriptedSource(draws ...float64) *ScriptedSource {
	return &ScriptedSource{Draws: draws}
}

func (s *ScriptedSource) Next() float64 {
	v := s.Draws[s.Calls%len(s.Draws)]
	s.Calls++
	return v
}

// Frequencies returns the share of each value among n calls to next.
func Frequencies(n int, next func() string) map[string]float64 {
	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		counts[next()]++
	}
	freqs := make(map[string]float64, len(counts))
	for k, c := range counts {
		freqs[k] = float64(c) / float64(n)
	}
	return freqs
}

// AssertFloat64Equal compares two float64 values with relative tolerance,
// measured against want. Two zeros are equal.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	assert.InEpsilon(t, want, got, relTol, name)
}
