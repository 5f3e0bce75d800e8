// Package metrics provides per-run observables computed from the fluid
// system between steps. Metrics are read-only consumers of particle state.
package metrics

import (
	"github.com/pongo192/sphlab/internal/fluid"
)

type Metric interface {
	Name() string
	Observe(s *fluid.System)
	Value() float64
	Reset()
}

// Default returns the standard metric set for a fluid run.
func Default() []Metric {
	return []Metric{
		NewKineticEnergy(),
		NewMeanDensity(),
		NewMaxSpeed(),
	}
}

// KineticEnergy reports the total kinetic energy at the last observation.
type KineticEnergy struct {
	value float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (m *KineticEnergy) Name() string { return "kinetic_energy" }

func (m *KineticEnergy) Observe(s *fluid.System) {
	total := 0.0
	for _, p := range s.Particles() {
		v := p.Speed()
		total += 0.5 * p.Mass * v * v
	}
	m.value = total
}

func (m *KineticEnergy) Value() float64 { return m.value }
func (m *KineticEnergy) Reset()         { m.value = 0 }

// MeanDensity reports the particle-mean density averaged over all
// observations of the run.
type MeanDensity struct {
	sum     float64
	samples int
}

func NewMeanDensity() *MeanDensity { return &MeanDensity{} }

func (m *MeanDensity) Name() string { return "mean_density" }

func (m *MeanDensity) Observe(s *fluid.System) {
	particles := s.Particles()
	if len(particles) == 0 {
		return
	}
	mean := 0.0
	for _, p := range particles {
		mean += p.Density
	}
	mean /= float64(len(particles))
	m.sum += mean
	m.samples++
}

func (m *MeanDensity) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanDensity) Reset() {
	m.sum = 0
	m.samples = 0
}

// MaxSpeed reports the fastest particle speed seen over the run, a cheap
// proxy for detecting blowups.
type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(s *fluid.System) {
	for _, p := range s.Particles() {
		if v := p.Speed(); v > m.max {
			m.max = v
		}
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }
