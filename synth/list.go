package synth

import "fmt"

// WeightedList holds an ordered set of states and their relative weights.
//
// Weight edits are two-phase: AdjustWeight mutates weights and the running
// total but leaves NormalizedWeights stale. Call Normalize once after a batch
// of edits, then Rebuild any CategoricalIndex built over the list.
type WeightedList struct {
	states     []string
	weights    []float64
	normalized []float64
	stateIndex map[string]int // label -> first position
	total      float64
}

// NewWeightedList creates a list over states. A nil weights slice assigns
// every state weight 1.
func NewWeightedList(states []string, weights []float64) (*WeightedList, error) {
	if weights == nil {
		weights = make([]float64, len(states))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(states) != len(weights) {
		return nil, fmt.Errorf("%w: %d states but %d weights", ErrInvalidArgument, len(states), len(weights))
	}
	l := &WeightedList{
		states:     append([]string(nil), states...),
		weights:    append([]float64(nil), weights...),
		stateIndex: make(map[string]int, len(states)),
	}
	for i, s := range l.states {
		if _, ok := l.stateIndex[s]; !ok {
			l.stateIndex[s] = i
		}
	}
	if err := l.Normalize(); err != nil {
		return nil, err
	}
	return l, nil
}

// AdjustWeight adds delta to the weight of state and to the total and
// returns the new weight. NormalizedWeights is NOT refreshed.
func (l *WeightedList) AdjustWeight(state string, delta float64) (float64, error) {
	idx, ok := l.stateIndex[state]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownState, state)
	}
	l.weights[idx] += delta
	l.total += delta
	return l.weights[idx], nil
}

// Normalize recomputes the total and the normalized weights from the current
// weights. On error the previous normalized weights are kept.
func (l *WeightedList) Normalize() error {
	total := 0.0
	for i, w := range l.weights {
		if w < 0 {
			return fmt.Errorf("%w: state %q has negative weight %g", ErrInvalidWeights, l.states[i], w)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("%w: total weight %g must be positive", ErrInvalidWeights, total)
	}
	normalized := make([]float64, len(l.weights))
	for i, w := range l.weights {
		normalized[i] = w / total
	}
	l.total = total
	l.normalized = normalized
	return nil
}

// Len returns the number of states.
func (l *WeightedList) Len() int { return len(l.states) }

// States returns the state labels in construction order.
func (l *WeightedList) States() []string { return l.states }

// Weights returns the raw weights, aligned with States.
func (l *WeightedList) Weights() []float64 { return l.weights }

// NormalizedWeights returns weight/total as of the last Normalize.
func (l *WeightedList) NormalizedWeights() []float64 { return l.normalized }

// Total returns the running weight total, including unnormalized edits.
func (l *WeightedList) Total() float64 { return l.total }

// IndexOf returns the first position of state, or -1.
func (l *WeightedList) IndexOf(state string) int {
	if idx, ok := l.stateIndex[state]; ok {
		return idx
	}
	return -1
}
