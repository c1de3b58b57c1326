package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xmplr/xmplr/synth"
	"github.com/xmplr/xmplr/synth/source"
	"github.com/xmplr/xmplr/synth/trace"
)

// Options control how a spec is built.
type Options struct {
	DataDir string           // overrides spec.DataDir when non-empty
	Now     func() time.Time // defaults to time.Now
}

// Model is a built spec: a record producer wrapped in an arrival model.
type Model struct {
	Spec    *ModelSpec
	Record  *synth.Object
	Arrival *synth.ArrivalBatchModel[synth.Record]
	Trace   *trace.ArrivalTrace
}

// Build validates spec and wires its sources, fields and arrival model.
// Deterministic given the same spec and seed: every field draws from its own
// PartitionedRNG subsystem.
func Build(spec *ModelSpec, opts Options) (*Model, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model spec: %w", err)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	dataDir := spec.DataDir
	if opts.DataDir != "" {
		dataDir = opts.DataDir
	}
	rng := synth.NewPartitionedRNG(spec.Seed)
	b := &builder{rng: rng, dataDir: dataDir, now: opts.Now}

	fields := make([]synth.Field, 0, len(spec.Fields))
	for i := range spec.Fields {
		f := &spec.Fields[i]
		p, err := b.field(f)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		fields = append(fields, synth.Field{Name: f.Name, Producer: p})
	}
	obj, err := synth.NewObject(fields...)
	if err != nil {
		return nil, err
	}

	arrivalSrc, err := newSource(spec.Arrival.Source, defaultUniform, rng, synth.SubsystemArrival)
	if err != nil {
		return nil, fmt.Errorf("arrival source: %w", err)
	}
	rate, err := synth.NewRateProcess(spec.Arrival.RatePerMs, arrivalSrc)
	if err != nil {
		return nil, fmt.Errorf("arrival rate: %w", err)
	}
	arrival, err := synth.NewArrivalBatchModel[synth.Record](obj, rate, spec.Arrival.Minimum)
	if err != nil {
		return nil, err
	}
	tr := trace.NewArrivalTrace()
	arrival.WithClock(opts.Now).WithTrace(tr)

	logrus.Infof("built model with %d field(s), rate=%g/ms, minimum=%d, seed=%d",
		len(fields), spec.Arrival.RatePerMs, spec.Arrival.Minimum, spec.Seed)
	return &Model{Spec: spec, Record: obj, Arrival: arrival, Trace: tr}, nil
}

type builder struct {
	rng     *synth.PartitionedRNG
	dataDir string
	now     func() time.Time
}

var (
	defaultUniform = SourceSpec{Type: SourceUniform}
	defaultYoung   = SourceSpec{Type: SourceBeta, Alpha: synth.DefaultBetaAlpha, Beta: synth.DefaultBetaBeta}
	defaultRecent  = SourceSpec{Type: SourceBeta, Alpha: synth.RecentBetaAlpha, Beta: synth.RecentBetaBeta}
)

func (b *builder) field(f *FieldSpec) (synth.Producer[any], error) {
	subsystem := synth.SubsystemField(f.Name)
	def := defaultUniform
	switch f.Type {
	case FieldAges:
		def = defaultYoung
	case FieldRecentDates:
		def = defaultRecent
	}
	src, err := newSource(f.Source, def, b.rng, subsystem)
	if err != nil {
		return nil, err
	}

	switch f.Type {
	case FieldList:
		list, err := b.list(f)
		if err != nil {
			return nil, err
		}
		return synth.Erase(synth.Infallible(synth.NewCategoricalIndex(list, src).Next)), nil

	case FieldCSV:
		list, err := b.list(f)
		if err != nil {
			return nil, err
		}
		columns := f.Columns
		if len(columns) == 0 {
			columns = synth.DefaultZipFields
		}
		return synth.Erase[map[string]string](synth.NewCSVObject(synth.NewCategoricalIndex(list, src), columns)), nil

	case FieldDates:
		to := b.now()
		if f.To != nil {
			to = *f.To
		}
		return synth.Erase(synth.Infallible(synth.NewDates(*f.From, to, src).Next)), nil

	case FieldRecentDates:
		return synth.Erase(synth.Infallible(synth.NewRecentDates(b.now(), src).Next)), nil

	case FieldAges:
		young, old := f.Young, f.Old
		if young == 0 && old == 0 {
			young, old = synth.DefaultYoungAge, synth.DefaultOldAge
		}
		return synth.Erase(synth.Infallible(synth.NewAdultAges(young, old, src).Next)), nil

	case FieldRange:
		return synth.Erase(synth.Infallible(synth.NewRange(f.Min, f.Max, src).Next)), nil

	case FieldFullNames:
		first, err := b.namesIndex(f.First, f.Skip, src)
		if err != nil {
			return nil, fmt.Errorf("first names: %w", err)
		}
		lastSrc, err := newSource(f.Source, def, b.rng, subsystem+"/last")
		if err != nil {
			return nil, err
		}
		last, err := b.namesIndex(f.Last, f.Skip, lastSrc)
		if err != nil {
			return nil, fmt.Errorf("last names: %w", err)
		}
		return synth.Erase[string](synth.NewFullNames(first, last)), nil
	}
	// Validated before reaching here
	return nil, fmt.Errorf("unknown field type %q", f.Type)
}

func (b *builder) list(f *FieldSpec) (*synth.WeightedList, error) {
	if f.File == "" {
		var weights []float64
		if len(f.Weights) > 0 {
			weights = f.Weights
		}
		return synth.NewWeightedList(f.States, weights)
	}
	path := source.Resolve(b.dataDir, f.File)
	var list *synth.WeightedList
	var err error
	if f.WeightColumn != nil && *f.WeightColumn >= 0 {
		list, err = source.LoadWeightedList(path, f.Skip, 0, *f.WeightColumn)
	} else {
		list, err = source.LoadList(path, f.Skip)
	}
	if err != nil {
		return nil, err
	}
	logrus.Infof("field %q: %d states from %s", f.Name, list.Len(), path)
	return list, nil
}

func (b *builder) namesIndex(file string, skip int, src synth.UniformSource) (*synth.CategoricalIndex, error) {
	list, err := source.LoadList(source.Resolve(b.dataDir, file), skip)
	if err != nil {
		return nil, err
	}
	return synth.NewCategoricalIndex(list, src), nil
}

// newSource builds the uniform source described by spec, or by def when
// spec is nil, drawing from the named subsystem of rngs. A mixture selects
// on "<subsystem>/mixture" and its component i draws from "<subsystem>/<i>",
// so the choice of child never shares a stream with the children.
func newSource(spec *SourceSpec, def SourceSpec, rngs *synth.PartitionedRNG, subsystem string) (synth.UniformSource, error) {
	if spec == nil {
		spec = &def
	}
	rng := rngs.ForSubsystem(subsystem)
	switch spec.Type {
	case "", SourceUniform:
		return synth.NewFloat64Source(rng), nil
	case SourceBeta:
		src, err := synth.NewBetaSource(spec.Alpha, spec.Beta, rng)
		if err != nil {
			return nil, err
		}
		return src, nil
	case SourceMixture:
		children := make([]synth.UniformSource, len(spec.Components))
		weights := make([]float64, len(spec.Components))
		for i := range spec.Components {
			c := &spec.Components[i]
			child, err := newSource(&c.Source, defaultUniform, rngs, subsystem+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, fmt.Errorf("component %d: %w", i, err)
			}
			children[i] = child
			weights[i] = c.Weight
		}
		selector := synth.NewFloat64Source(rngs.ForSubsystem(subsystem + "/mixture"))
		mix, err := synth.NewMixtureSource(children, weights, selector)
		if err != nil {
			return nil, err
		}
		return mix, nil
	}
	return nil, fmt.Errorf("unknown source type %q", spec.Type)
}
