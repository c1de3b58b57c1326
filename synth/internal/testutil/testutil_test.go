package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertFloat64Equal_WithinTolerance(t *testing.T) {
	AssertFloat64Equal(t, "near", 100, 101, 0.02)
	AssertFloat64Equal(t, "zeros", 0, 0, 0.01)
	AssertFloat64Equal(t, "negative", -2, -2.01, 0.01)
}

func TestScriptedSource_CyclesAndCounts(t *testing.T) {
	s := NewScriptedSource(0.1, 0.2)
	got := []float64{s.Next(), s.Next(), s.Next()}
	assert.Equal(t, []float64{0.1, 0.2, 0.1}, got)
	assert.Equal(t, 3, s.Calls)
}
