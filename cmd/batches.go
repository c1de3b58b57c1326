package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xmplr/xmplr/synth"
)

// batchSource is the part of ArrivalBatchModel the generate loop drives.
type batchSource interface {
	Start()
	Next() ([]synth.Record, error)
	NextPeriod(elapsedMs float64) ([]synth.Record, error)
}

// batchWriter writes one batch of records.
type batchWriter interface {
	WriteBatch(index int, batch []synth.Record) error
	Close() error
}

// jsonLinesWriter writes one JSON object per record.
type jsonLinesWriter struct {
	enc *json.Encoder
}

func (w *jsonLinesWriter) WriteBatch(_ int, batch []synth.Record) error {
	for _, rec := range batch {
		if err := w.enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

func (w *jsonLinesWriter) Close() error { return nil }

// yamlWriter writes one YAML document per batch.
type yamlWriter struct {
	enc *yaml.Encoder
}

type yamlBatch struct {
	Batch   int            `yaml:"batch"`
	Records []synth.Record `yaml:"records"`
}

func (w *yamlWriter) WriteBatch(index int, batch []synth.Record) error {
	return w.enc.Encode(yamlBatch{Batch: index, Records: batch})
}

func (w *yamlWriter) Close() error { return w.enc.Close() }

func newBatchWriter(format string, out io.Writer) (batchWriter, error) {
	switch format {
	case "json":
		return &jsonLinesWriter{enc: json.NewEncoder(out)}, nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		return &yamlWriter{enc: enc}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

// runBatches emits n batches. Synthetic mode feeds deltaMs to NextPeriod;
// realtime mode sleeps deltaMs and lets the model measure the wall clock.
func runBatches(src batchSource, w batchWriter, n int, deltaMs float64, realtime bool, sleep func(time.Duration)) error {
	if realtime {
		src.Start()
	}
	for i := 0; i < n; i++ {
		var batch []synth.Record
		var err error
		if realtime {
			sleep(time.Duration(deltaMs * float64(time.Millisecond)))
			batch, err = src.Next()
		} else {
			batch, err = src.NextPeriod(deltaMs)
		}
		if err != nil {
			return fmt.Errorf("batch %d: %w", i, err)
		}
		if err := w.WriteBatch(i, batch); err != nil {
			return fmt.Errorf("writing batch %d: %w", i, err)
		}
	}
	return w.Close()
}
