package synth

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xmplr/xmplr/synth/trace"
)

// ArrivalBatchModel emits, per elapsed window, a batch of records whose size
// is the RateProcess integrated over the window (in milliseconds) plus a
// fixed minimum.
//
// The model never waits for time to pass; Next measures time already
// elapsed since the last call.
//
// Thread-safety: NOT thread-safe. The clock anchor and last-batch fields
// assume a single writer.
type ArrivalBatchModel[T any] struct {
	producer Producer[T]
	rate     *RateProcess
	minimum  int
	now      func() time.Time
	trace    *trace.ArrivalTrace

	lastTime      time.Time
	lastElapsedMs float64
	lastBatchSize int
}

// NewArrivalBatchModel wraps producer. rate is expressed per millisecond.
func NewArrivalBatchModel[T any](producer Producer[T], rate *RateProcess, minimum int) (*ArrivalBatchModel[T], error) {
	if producer == nil || rate == nil {
		return nil, fmt.Errorf("%w: arrival model needs a producer and a rate process", ErrInvalidArgument)
	}
	if minimum < 0 {
		return nil, fmt.Errorf("%w: minimum batch size must be non-negative, got %d", ErrInvalidArgument, minimum)
	}
	m := &ArrivalBatchModel[T]{
		producer: producer,
		rate:     rate,
		minimum:  minimum,
		now:      time.Now,
	}
	m.lastTime = m.now()
	return m, nil
}

// WithClock replaces the wall clock and resets the anchor to its current time.
func (m *ArrivalBatchModel[T]) WithClock(now func() time.Time) *ArrivalBatchModel[T] {
	m.now = now
	m.lastTime = now()
	return m
}

// WithTrace records every successful batch into tr.
func (m *ArrivalBatchModel[T]) WithTrace(tr *trace.ArrivalTrace) *ArrivalBatchModel[T] {
	m.trace = tr
	return m
}

// Start resets the clock anchor to now.
func (m *ArrivalBatchModel[T]) Start() {
	m.lastTime = m.now()
}

// Next emits the batch for the time elapsed since the clock anchor.
func (m *ArrivalBatchModel[T]) Next() ([]T, error) {
	elapsed := m.now().Sub(m.lastTime)
	return m.NextPeriod(float64(elapsed) / float64(time.Millisecond))
}

// maxPreallocBatch caps the capacity reserved up front for a batch.
const maxPreallocBatch = 1 << 16

// NextPeriod emits the batch for an elapsed window of elapsedMs. The clock
// anchor advances by elapsedMs, not to now, so synthetic or accelerated
// deltas stay consistent. If the producer fails, no batch is returned. A
// magnitude too large for an int batch size fails with ErrInvalidArgument.
func (m *ArrivalBatchModel[T]) NextPeriod(elapsedMs float64) ([]T, error) {
	m.lastElapsedMs = elapsedMs
	m.lastTime = m.lastTime.Add(time.Duration(elapsedMs * float64(time.Millisecond)))

	magnitude, err := m.rate.IntegrateOverPeriods(elapsedMs)
	if err != nil {
		return nil, fmt.Errorf("integrating %gms: %w", elapsedMs, err)
	}
	if magnitude >= float64(math.MaxInt-m.minimum) {
		return nil, fmt.Errorf("%w: batch magnitude %g over %gms overflows the batch size",
			ErrInvalidArgument, magnitude, elapsedMs)
	}
	size := int(math.Trunc(magnitude)) + m.minimum

	batch := make([]T, 0, min(size, maxPreallocBatch))
	for i := 0; i < size; i++ {
		rec, err := m.producer.Next()
		if err != nil {
			return nil, fmt.Errorf("producing record %d of %d: %w", i+1, size, err)
		}
		batch = append(batch, rec)
	}
	m.lastBatchSize = size
	if m.trace != nil {
		m.trace.RecordBatch(elapsedMs, size)
	}
	logrus.Debugf("arrival batch: elapsed=%.3fms magnitude=%.3f size=%d", elapsedMs, magnitude, size)
	return batch, nil
}

// Minimum returns the batch size floor.
func (m *ArrivalBatchModel[T]) Minimum() int { return m.minimum }

// LastBatchSize returns the size of the most recent successful batch.
func (m *ArrivalBatchModel[T]) LastBatchSize() int { return m.lastBatchSize }

// LastElapsedMs returns the elapsed window passed to the most recent call.
func (m *ArrivalBatchModel[T]) LastElapsedMs() float64 { return m.lastElapsedMs }

// LastTime returns the clock anchor.
func (m *ArrivalBatchModel[T]) LastTime() time.Time { return m.lastTime }
