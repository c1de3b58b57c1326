package synth

import (
	"math"
	"time"
)

// Interval maps a draw u from its source to start + u*(end-start), then
// through a transform to the output type.
type Interval[T any] struct {
	start, end float64
	src        UniformSource
	transform  func(float64) T
}

// NewInterval creates an Interval over [start, end).
func NewInterval[T any](start, end float64, src UniformSource, transform func(float64) T) *Interval[T] {
	return &Interval[T]{start: start, end: end, src: src, transform: transform}
}

// NewRange creates a plain float64 interval.
func NewRange(start, end float64, src UniformSource) *Interval[float64] {
	return NewInterval(start, end, src, func(v float64) float64 { return v })
}

// NewDates creates an interval of instants between from and to, with
// millisecond resolution.
func NewDates(from, to time.Time, src UniformSource) *Interval[time.Time] {
	return NewInterval(float64(from.UnixMilli()), float64(to.UnixMilli()), src, func(v float64) time.Time {
		return time.UnixMilli(int64(v)).In(from.Location())
	})
}

// DaysInPast returns the instant days days before now.
func DaysInPast(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// NewRecentDates creates dates from ten years before now up to now. With a
// RecentBetaAlpha/RecentBetaBeta source the dates skew to the last few years,
// as is common for recent technology acquisition.
func NewRecentDates(now time.Time, src UniformSource) *Interval[time.Time] {
	return NewDates(DaysInPast(now, 365*10), now, src)
}

// Default adult age bounds.
const (
	DefaultYoungAge = 18
	DefaultOldAge   = 81
)

// NewAdultAges creates whole ages in [young, old). Technology use skews
// younger; pair with a DefaultBetaAlpha/DefaultBetaBeta source.
func NewAdultAges(young, old int, src UniformSource) *Interval[int] {
	return NewInterval(float64(young), float64(old), src, func(v float64) int {
		return int(math.Trunc(v))
	})
}

// Start returns the lower bound.
func (iv *Interval[T]) Start() float64 { return iv.start }

// End returns the upper bound.
func (iv *Interval[T]) End() float64 { return iv.end }

// Next returns the next transformed draw.
func (iv *Interval[T]) Next() T {
	return iv.transform(iv.start + iv.src.Next()*(iv.end-iv.start))
}
