package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// Recorder appends samples to a CSV stream. The header row is written with
// the first batch only.
type Recorder struct {
	out           io.Writer
	headerWritten bool
	rows          int
}

// NewRecorder returns a recorder writing to out.
func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

// Write appends samples. Writing an empty batch is a no-op.
func (r *Recorder) Write(samples ...Sample) error {
	if len(samples) == 0 {
		return nil
	}
	if !r.headerWritten {
		if err := gocsv.Marshal(samples, r.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(samples, r.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}
	r.rows += len(samples)
	return nil
}

// Rows returns the number of samples written so far.
func (r *Recorder) Rows() int { return r.rows }

// ReadSamples parses a CSV stream produced by a Recorder.
func ReadSamples(in io.Reader) ([]Sample, error) {
	var samples []Sample
	if err := gocsv.Unmarshal(in, &samples); err != nil {
		return nil, fmt.Errorf("reading telemetry: %w", err)
	}
	return samples, nil
}
