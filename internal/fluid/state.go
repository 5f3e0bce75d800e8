package fluid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// State is a flat snapshot of the system, laid out per particle as
// [px, py, pz, vx, vy, vz]. It is created on demand and discarded after
// use; the particle slice owned by the System is the persistent truth.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// Norm returns the Euclidean norm over the full vector.
func (s State) Norm() float64 {
	return floats.Norm(s, 2)
}

func (s State) Sub(other State) State {
	r := s.Clone()
	floats.Sub(r, other)
	return r
}

// AddScaled returns s + alpha*d without modifying s.
func (s State) AddScaled(alpha float64, d State) State {
	r := s.Clone()
	floats.AddScaled(r, alpha, d)
	return r
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
