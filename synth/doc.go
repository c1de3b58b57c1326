// Package synth synthesizes randomized structured data for tests and simulations.
//
// # Reading Guide
//
//   - search.go: FindFirst, the lower-bound search every categorical draw routes through
//   - list.go: WeightedList, states with positive weights and their normalization
//   - index.go: CategoricalIndex, maps a uniform draw to a state via a cumulative table
//   - rate.go: RateProcess, scaled-exponential magnitudes integrated over periods
//   - arrival.go: ArrivalBatchModel, converts elapsed time into a batch of records
//
// # Randomness
//
// Nothing in this package reads a global random source. Every sampler takes a
// UniformSource at construction; PartitionedRNG derives independent,
// reproducible streams from a single master seed.
//
// Sub-packages:
//   - synth/source/: delimited text resources (name lists, zip codes)
//   - synth/model/: YAML model specs and the builder that wires them
//   - synth/trace/: per-batch arrival trace and summary statistics
package synth
