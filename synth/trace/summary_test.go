package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.Batches != 0 || summary.TotalRecords != 0 {
		t.Errorf("expected zero summary for nil trace, got %+v", summary)
	}
}

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	at := NewArrivalTrace()

	// WHEN summarized
	summary := Summarize(at)

	// THEN all counts are zero
	if summary.Batches != 0 {
		t.Errorf("expected 0 batches, got %d", summary.Batches)
	}
	if summary.MeanBatchSize != 0 || summary.RecordsPerMs != 0 {
		t.Error("expected 0 mean batch size and rate")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with three batches, one of them empty
	at := NewArrivalTrace()
	at.RecordBatch(100, 4)
	at.RecordBatch(100, 0)
	at.RecordBatch(200, 8)

	// WHEN summarized
	summary := Summarize(at)

	// THEN counts and aggregates match
	if summary.Batches != 3 {
		t.Errorf("expected 3 batches, got %d", summary.Batches)
	}
	if summary.TotalRecords != 12 {
		t.Errorf("expected 12 records, got %d", summary.TotalRecords)
	}
	if summary.EmptyBatches != 1 {
		t.Errorf("expected 1 empty batch, got %d", summary.EmptyBatches)
	}
	if summary.MaxBatchSize != 8 {
		t.Errorf("expected max batch size 8, got %d", summary.MaxBatchSize)
	}
	if summary.MeanBatchSize != 4 {
		t.Errorf("expected mean batch size 4, got %f", summary.MeanBatchSize)
	}
	if summary.TotalElapsedMs != 400 {
		t.Errorf("expected 400ms elapsed, got %f", summary.TotalElapsedMs)
	}
	if summary.RecordsPerMs != 0.03 {
		t.Errorf("expected 0.03 records/ms, got %f", summary.RecordsPerMs)
	}
}

func TestRecordBatch_AssignsSequentialIndex(t *testing.T) {
	at := NewArrivalTrace()
	for i := 0; i < 5; i++ {
		at.RecordBatch(1, i)
	}
	for i, b := range at.Batches {
		if b.Index != i {
			t.Errorf("batch %d has index %d", i, b.Index)
		}
	}
}
