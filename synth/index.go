package synth

import "sort"

// CategoricalIndex samples states of a WeightedList in proportion to their
// normalized weights.
//
// States are ordered by descending weight before their probabilities are
// accumulated, so cumulative[k] is the upper probability boundary of the
// k-th most likely state. A draw equal to a boundary belongs to the bucket
// ending at that boundary.
//
// The index is a snapshot: after editing the list's weights, call
// WeightedList.Normalize and then Rebuild.
//
// Thread-safety: NOT thread-safe.
type CategoricalIndex struct {
	list        *WeightedList
	src         UniformSource
	sortedOrder []int     // state indices, most likely first
	cumulative  []float64 // prefix sums of normalized weights in sortedOrder
}

// NewCategoricalIndex builds an index over list drawing from src.
func NewCategoricalIndex(list *WeightedList, src UniformSource) *CategoricalIndex {
	x := &CategoricalIndex{list: list, src: src}
	x.Rebuild()
	return x
}

// Rebuild re-sorts the states and re-accumulates the cumulative table from
// the list's current normalized weights.
func (x *CategoricalIndex) Rebuild() {
	weights := x.list.NormalizedWeights()
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return weights[order[a]] > weights[order[b]]
	})

	cumulative := make([]float64, len(order))
	sum := 0.0
	for k, idx := range order {
		sum += weights[idx]
		cumulative[k] = sum
	}
	// Ensure last boundary is exactly 1.0
	if len(cumulative) > 0 {
		cumulative[len(cumulative)-1] = 1.0
	}
	x.sortedOrder = order
	x.cumulative = cumulative
}

// List returns the underlying WeightedList.
func (x *CategoricalIndex) List() *WeightedList { return x.list }

// Source returns the bound UniformSource.
func (x *CategoricalIndex) Source() UniformSource { return x.src }

// SortedOrder returns state indices ordered by descending weight.
func (x *CategoricalIndex) SortedOrder() []int { return x.sortedOrder }

// Cumulative returns the cumulative boundaries aligned with SortedOrder.
func (x *CategoricalIndex) Cumulative() []float64 { return x.cumulative }

// BucketForDraw returns the rank of the bucket selected by p, or -1 when
// p <= 0 or p exceeds the total probability mass.
func (x *CategoricalIndex) BucketForDraw(p float64) int {
	if !(p > 0) {
		return -1
	}
	idx := FindFirst(x.cumulative, p)
	if idx >= len(x.sortedOrder) {
		return -1
	}
	return idx
}

// StateIndexForDraw maps p to the original position of the selected state.
func (x *CategoricalIndex) StateIndexForDraw(p float64) (int, bool) {
	bucket := x.BucketForDraw(p)
	if bucket < 0 {
		return -1, false
	}
	return x.sortedOrder[bucket], true
}

// StateForDraw maps p to the label of the selected state.
func (x *CategoricalIndex) StateForDraw(p float64) (string, bool) {
	idx, ok := x.StateIndexForDraw(p)
	if !ok {
		return "", false
	}
	return x.list.states[idx], true
}

// CumulativeBoundaryOf returns the cumulative boundary of state's bucket,
// or -1 if the state is unknown.
func (x *CategoricalIndex) CumulativeBoundaryOf(state string) float64 {
	idx := x.list.IndexOf(state)
	if idx < 0 {
		return -1
	}
	for rank, stateIdx := range x.sortedOrder {
		if stateIdx == idx {
			return x.cumulative[rank]
		}
	}
	return -1
}

// Next draws from the bound source and returns the selected state. It
// returns "" for the zero-probability draw of exactly 0, and panics if the
// index has no buckets.
func (x *CategoricalIndex) Next() string {
	if len(x.cumulative) == 0 {
		panic("synth: Next called on CategoricalIndex with no states")
	}
	state, _ := x.StateForDraw(x.src.Next())
	return state
}
