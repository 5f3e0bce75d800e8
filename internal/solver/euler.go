package solver

import "github.com/pongo192/sphlab/internal/fluid"

// Euler is the explicit first-order scheme: one derivative evaluation per
// step.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) SimulateStep(s *fluid.System, dt float64) {
	deriv := s.DerivEval()
	next := s.State().AddScaled(dt, deriv)
	s.SetStateAt(s.CheckCollisions(next), s.Time()+dt)
}
