package solver

import "github.com/pongo192/sphlab/internal/fluid"

// RK4 is the classical fourth-order Runge-Kutta scheme: four derivative
// evaluations per step.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) SimulateStep(s *fluid.System, dt float64) {
	x0 := s.State()
	t0 := s.Time()

	k1 := s.DerivEval()

	s.SetStateAt(x0.AddScaled(dt/2, k1), t0+dt/2)
	k2 := s.DerivEval()

	s.SetStateAt(x0.AddScaled(dt/2, k2), t0+dt/2)
	k3 := s.DerivEval()

	s.SetStateAt(x0.AddScaled(dt, k3), t0+dt)
	k4 := s.DerivEval()

	next := x0.
		AddScaled(dt/6, k1).
		AddScaled(dt/3, k2).
		AddScaled(dt/3, k3).
		AddScaled(dt/6, k4)
	s.SetStateAt(s.CheckCollisions(next), t0+dt)
}
