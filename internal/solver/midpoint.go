package solver

import "github.com/pongo192/sphlab/internal/fluid"

// Midpoint is the explicit second-order scheme: it evaluates the
// derivative at a trial half step and advances the full step with it.
type Midpoint struct{}

func NewMidpoint() *Midpoint {
	return &Midpoint{}
}

func (m *Midpoint) SimulateStep(s *fluid.System, dt float64) {
	x0 := s.State()
	t0 := s.Time()

	k1 := s.DerivEval()
	s.SetStateAt(x0.AddScaled(dt/2, k1), t0+dt/2)
	k2 := s.DerivEval()

	next := x0.AddScaled(dt, k2)
	s.SetStateAt(s.CheckCollisions(next), t0+dt)
}
