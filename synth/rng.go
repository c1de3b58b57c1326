package synth

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	randv2 "math/rand/v2"
	"strconv"

	"gonum.org/v1/gonum/stat/distuv"
)

// UniformSource produces one scalar draw per call, in [0,1) for every
// implementation in this package.
type UniformSource interface {
	Next() float64
}

// Float64Source draws uniformly from [0,1).
type Float64Source struct {
	rng *rand.Rand
}

// NewFloat64Source wraps rng. Seed rng externally for reproducible draws.
func NewFloat64Source(rng *rand.Rand) *Float64Source {
	return &Float64Source{rng: rng}
}

func (s *Float64Source) Next() float64 {
	return s.rng.Float64()
}

// Default beta shapes.
const (
	// DefaultBetaAlpha and DefaultBetaBeta weight draws heavily toward the
	// low end; a good default for infrequent spiky traffic.
	DefaultBetaAlpha = 1.0
	DefaultBetaBeta  = 5.0

	// RecentBetaAlpha and RecentBetaBeta weight draws toward the high end,
	// e.g. dates skewed to the recent past.
	RecentBetaAlpha = 3.0
	RecentBetaBeta  = 1.0
)

// BetaSource produces Beta(alpha, beta) distributed draws in [0,1).
type BetaSource struct {
	dist distuv.Beta
}

// NewBetaSource creates a beta source whose generator is seeded from rng.
func NewBetaSource(alpha, beta float64, rng *rand.Rand) (*BetaSource, error) {
	if !(alpha > 0) || !(beta > 0) {
		return nil, fmt.Errorf("%w: beta shape parameters must be positive, got alpha=%g beta=%g",
			ErrInvalidArgument, alpha, beta)
	}
	src := randv2.NewPCG(uint64(rng.Int63()), uint64(rng.Int63()))
	return &BetaSource{
		dist: distuv.Beta{Alpha: alpha, Beta: beta, Src: src},
	}, nil
}

// Alpha returns the first shape parameter.
func (s *BetaSource) Alpha() float64 { return s.dist.Alpha }

// Beta returns the second shape parameter.
func (s *BetaSource) Beta() float64 { return s.dist.Beta }

func (s *BetaSource) Next() float64 {
	v := s.dist.Rand()
	// Beta support is closed; keep the half-open contract.
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	if v < 0 {
		return 0
	}
	return v
}

// MixtureSource is a composite source: each draw first selects one child
// source in proportion to its weight, then returns that child's draw.
type MixtureSource struct {
	selector *CategoricalIndex
	children []UniformSource
}

// NewMixtureSource mixes children by weights. selector drives the choice of
// child and must be independent of the children's own streams.
func NewMixtureSource(children []UniformSource, weights []float64, selector UniformSource) (*MixtureSource, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: mixture needs at least one component", ErrInvalidArgument)
	}
	labels := make([]string, len(children))
	for i := range children {
		labels[i] = strconv.Itoa(i)
	}
	list, err := NewWeightedList(labels, weights)
	if err != nil {
		return nil, fmt.Errorf("mixture weights: %w", err)
	}
	return &MixtureSource{
		selector: NewCategoricalIndex(list, selector),
		children: children,
	}, nil
}

func (s *MixtureSource) Next() float64 {
	idx, ok := s.selector.StateIndexForDraw(s.selector.Source().Next())
	if !ok {
		// Only a selector draw of exactly 0 lands here; use the dominant child.
		idx = s.selector.SortedOrder()[0]
	}
	return s.children[idx].Next()
}

// === PartitionedRNG ===

const (
	// SubsystemArrival is the RNG subsystem for arrival batch sizes.
	// Uses master seed directly.
	SubsystemArrival = "arrival"
)

// SubsystemField returns the subsystem name for a record field.
func SubsystemField(name string) string {
	return "field/" + name
}

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemArrival: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derivedSeed := p.seed
	if name != SubsystemArrival {
		derivedSeed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Seed returns the master seed.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
