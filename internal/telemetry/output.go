// Package telemetry writes per-step observables of a run to CSV. Records
// are derived quantities for offline analysis, not restorable simulation
// state.
package telemetry

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pongo192/sphlab/internal/fluid"
)

// StepRecord is one CSV row describing the system after a step.
type StepRecord struct {
	Step        int     `csv:"step"`
	Time        float64 `csv:"time"`
	Dt          float64 `csv:"dt"`
	Particles   int     `csv:"particles"`
	MeanDensity float64 `csv:"mean_density"`
	Kinetic     float64 `csv:"kinetic_energy"`
	MaxSpeed    float64 `csv:"max_speed"`
}

// Snapshot computes the record for the system's current state.
func Snapshot(s *fluid.System, step int) StepRecord {
	rec := StepRecord{
		Step:      step,
		Time:      s.Time(),
		Dt:        s.Dt(),
		Particles: len(s.Particles()),
	}
	kinetic := 0.0
	meanDensity := 0.0
	maxSpeed := 0.0
	for _, p := range s.Particles() {
		v := p.Speed()
		kinetic += 0.5 * p.Mass * v * v
		meanDensity += p.Density
		maxSpeed = math.Max(maxSpeed, v)
	}
	if n := len(s.Particles()); n > 0 {
		meanDensity /= float64(n)
	}
	rec.Kinetic = kinetic
	rec.MeanDensity = meanDensity
	rec.MaxSpeed = maxSpeed
	return rec
}

// Writer appends step records to a CSV stream, emitting the header on the
// first write only.
type Writer struct {
	out         io.Writer
	closer      io.Closer
	wroteHeader bool
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Create opens a file-backed writer; Close releases the file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry file: %w", err)
	}
	return &Writer{out: f, closer: f}, nil
}

func (w *Writer) Write(rec StepRecord) error {
	records := []StepRecord{rec}
	if !w.wroteHeader {
		if err := gocsv.Marshal(records, w.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		w.wroteHeader = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.out); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
