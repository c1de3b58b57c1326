package synth

import "errors"

var (
	// ErrInvalidArgument reports mismatched lengths or malformed configuration.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidWeights reports a negative weight or a non-positive weight total.
	ErrInvalidWeights = errors.New("invalid weights")
	// ErrUnknownState reports a reference to a state absent from a WeightedList.
	ErrUnknownState = errors.New("unknown state")
	// ErrDrawOutOfRange reports a uniform draw outside [0,1) reaching the exponential transform.
	ErrDrawOutOfRange = errors.New("draw out of range")
)
