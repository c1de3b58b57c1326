package trace

// TraceSummary aggregates statistics from an ArrivalTrace.
type TraceSummary struct {
	Batches        int
	TotalRecords   int
	EmptyBatches   int
	MaxBatchSize   int
	MeanBatchSize  float64
	TotalElapsedMs float64
	RecordsPerMs   float64 // TotalRecords / TotalElapsedMs; 0 when no time elapsed
}

// Summarize computes aggregate statistics from an ArrivalTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(at *ArrivalTrace) *TraceSummary {
	summary := &TraceSummary{}
	if at == nil || len(at.Batches) == 0 {
		return summary
	}

	summary.Batches = len(at.Batches)
	for _, b := range at.Batches {
		summary.TotalRecords += b.Size
		summary.TotalElapsedMs += b.ElapsedMs
		if b.Size == 0 {
			summary.EmptyBatches++
		}
		if b.Size > summary.MaxBatchSize {
			summary.MaxBatchSize = b.Size
		}
	}
	summary.MeanBatchSize = float64(summary.TotalRecords) / float64(summary.Batches)
	if summary.TotalElapsedMs > 0 {
		summary.RecordsPerMs = float64(summary.TotalRecords) / summary.TotalElapsedMs
	}
	return summary
}
