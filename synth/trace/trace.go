// Package trace records per-batch arrival outcomes for later analysis.
// This package has no dependencies on synth/; it stores pure data types.
package trace

// BatchRecord captures one ArrivalBatchModel batch.
type BatchRecord struct {
	Index     int     // zero-based batch sequence number
	ElapsedMs float64 // elapsed window the batch covers
	Size      int     // records emitted
}

// ArrivalTrace collects batch records in call order.
type ArrivalTrace struct {
	Batches []BatchRecord
}

// NewArrivalTrace creates an ArrivalTrace ready for recording.
func NewArrivalTrace() *ArrivalTrace {
	return &ArrivalTrace{
		Batches: make([]BatchRecord, 0),
	}
}

// RecordBatch appends a batch record, assigning its Index.
func (at *ArrivalTrace) RecordBatch(elapsedMs float64, size int) {
	at.Batches = append(at.Batches, BatchRecord{
		Index:     len(at.Batches),
		ElapsedMs: elapsedMs,
		Size:      size,
	})
}
