package synth

import (
	"fmt"
	"math"
)

// MaxPeriods bounds the period count IntegrateOverPeriods accepts. It takes
// one draw per period, so a larger window would not finish in useful time.
const MaxPeriods = 1 << 30

// RateProcess turns uniform draws into scaled-exponential magnitudes,
// rate * -ln(1-u). Use it to approximate arrivals of events per time
// unit, like packets per second.
//
// IntegrateOverPeriods is a heuristic: it sums one scaled-exponential draw
// per period rather than counting Poisson arrivals that fit in a window.
type RateProcess struct {
	rate float64
	src  UniformSource
}

// NewRateProcess creates a RateProcess with the given rate per time unit.
func NewRateProcess(rate float64, src UniformSource) (*RateProcess, error) {
	if !(rate > 0) || math.IsInf(rate, 1) {
		return nil, fmt.Errorf("%w: rate must be positive and finite, got %g", ErrInvalidArgument, rate)
	}
	return &RateProcess{rate: rate, src: src}, nil
}

// Rate returns the configured rate.
func (r *RateProcess) Rate() float64 { return r.rate }

// Next returns one scaled-exponential magnitude.
func (r *RateProcess) Next() (float64, error) {
	u := r.src.Next()
	if !(u >= 0 && u < 1) {
		return 0, fmt.Errorf("%w: got %g, want [0,1)", ErrDrawOutOfRange, u)
	}
	return r.rate * -math.Log(1.0-u), nil
}

// IntegrateOverPeriods returns the cumulative magnitude after periods
// periods: one full draw per whole period above 1, plus a final draw scaled
// by the remainder. The remainder is exactly 1 for whole-number inputs. The
// source is sampled at least once per call, however small periods is.
// Period counts above MaxPeriods are rejected.
func (r *RateProcess) IntegrateOverPeriods(periods float64) (float64, error) {
	if math.IsNaN(periods) || math.IsInf(periods, 0) {
		return 0, fmt.Errorf("%w: period count must be finite, got %g", ErrInvalidArgument, periods)
	}
	if periods > MaxPeriods {
		return 0, fmt.Errorf("%w: period count %g exceeds %d", ErrInvalidArgument, periods, MaxPeriods)
	}
	result := 0.0
	remaining := periods
	for remaining > 1.0 {
		v, err := r.Next()
		if err != nil {
			return 0, err
		}
		result += v
		remaining -= 1.0
	}
	v, err := r.Next()
	if err != nil {
		return 0, err
	}
	if remaining < 0 {
		remaining = 0
	}
	return result + remaining*v, nil
}
