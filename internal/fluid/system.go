package fluid

import "math"

const (
	// DefaultSmoothingRadius bounds the neighbor search; chosen so a
	// particle in the default box interacts with one or two shells of
	// neighbors.
	DefaultSmoothingRadius = 0.05

	// DefaultStiffness is the equation-of-state constant k in
	// p = k (rho - rho_rest).
	DefaultStiffness = 0.1

	// DefaultDt is the starting step size; the adaptive branch of Step
	// rescales it over the course of a run.
	DefaultDt = 0.001

	// stepTolerance is the local error target of the step-doubling
	// estimate.
	stepTolerance = 0.001

	// densityFloor keeps the force-to-acceleration division defined when
	// a particle has no neighbors in range.
	densityFloor = 1e-6
)

// Solver advances a system by one integration step of size dt. It obtains
// derivatives from DerivEval, runs the candidate state through
// CheckCollisions, and commits it together with the new time.
type Solver interface {
	SimulateStep(s *System, dt float64)
}

// Constraint is a placeholder collaborator: constraints are registered and
// exposed for external solvers and renderers but take no part in the
// current derivative pipeline.
type Constraint interface {
	Apply(s *System)
}

// Bounds is the axis-aligned collision box. The box is open at the top:
// only a floor bounds the y axis.
type Bounds struct {
	XMin, XMax float64
	ZMin, ZMax float64
	Floor      float64
}

func DefaultBounds() Bounds {
	return Bounds{XMin: -0.2, XMax: 0.2, ZMin: -0.2, ZMax: 0.2, Floor: -2.0}
}

// Params collects the numerical constants of a System. Zero values are
// replaced with the package defaults.
type Params struct {
	SmoothingRadius float64
	Stiffness       float64
	Dt              float64
	Bounds          Bounds
}

func DefaultParams() Params {
	return Params{
		SmoothingRadius: DefaultSmoothingRadius,
		Stiffness:       DefaultStiffness,
		Dt:              DefaultDt,
		Bounds:          DefaultBounds(),
	}
}

// System owns the particles, forces, constraints and scalar fields of one
// simulation and drives its derivative pipeline. Particle order is
// significant: it defines the state-vector layout.
type System struct {
	particles   []*Particle
	forces      []Force
	constraints []Constraint

	densityField  *DensityField
	pressureField *PressureField
	colorField    *ColorField

	kernel Kernel
	grid   *Grid
	solver Solver
	bounds Bounds

	stiffness float64
	time      float64
	dt        float64
}

func NewSystem(solver Solver, params Params) *System {
	if params.SmoothingRadius <= 0 {
		params.SmoothingRadius = DefaultSmoothingRadius
	}
	if params.Stiffness == 0 {
		params.Stiffness = DefaultStiffness
	}
	if params.Dt <= 0 {
		params.Dt = DefaultDt
	}
	if params.Bounds == (Bounds{}) {
		params.Bounds = DefaultBounds()
	}
	s := &System{
		solver:    solver,
		kernel:    NewKernel(params.SmoothingRadius),
		grid:      NewGrid(params.SmoothingRadius),
		bounds:    params.Bounds,
		stiffness: params.Stiffness,
		dt:        params.Dt,
	}
	s.densityField = &DensityField{sys: s}
	s.pressureField = &PressureField{sys: s}
	s.colorField = &ColorField{sys: s}
	return s
}

// AddParticle appends p to the system, assigns its state-vector slot, and
// adds it as a target of every registered force.
func (s *System) AddParticle(p *Particle) {
	p.Index = len(s.particles)
	s.particles = append(s.particles, p)
	for _, f := range s.forces {
		f.AddTarget(p)
	}
}

// AddForce registers f and retroactively targets it at every particle
// already in the system.
func (s *System) AddForce(f Force) {
	f.SetTarget(s.particles)
	s.forces = append(s.forces, f)
}

func (s *System) AddConstraint(c Constraint) {
	s.constraints = append(s.constraints, c)
}

// Free drops all particles and forces.
func (s *System) Free() {
	s.particles = nil
	s.forces = nil
}

// Reset restores every particle to its initial saved state.
func (s *System) Reset() {
	for _, p := range s.particles {
		p.Reset()
	}
}

// Read access for external renderers and consumers.

func (s *System) Particles() []*Particle { return s.particles }

func (s *System) Forces() []Force { return s.forces }

func (s *System) Constraints() []Constraint { return s.constraints }

func (s *System) DensityField() *DensityField { return s.densityField }

func (s *System) PressureField() *PressureField { return s.pressureField }

func (s *System) ColorField() *ColorField { return s.colorField }

func (s *System) Kernel() Kernel { return s.kernel }

func (s *System) Bounds() Bounds { return s.bounds }

func (s *System) Time() float64 { return s.time }

func (s *System) Dt() float64 { return s.dt }

// Dim returns the state-vector dimension: three position and three
// velocity components per particle.
func (s *System) Dim() int {
	return len(s.particles) * 6
}

// State packs the current particle positions and velocities into a flat
// snapshot.
func (s *System) State() State {
	st := make(State, s.Dim())
	for i, p := range s.particles {
		st[i*6+0] = p.Position.X
		st[i*6+1] = p.Position.Y
		st[i*6+2] = p.Position.Z
		st[i*6+3] = p.Velocity.X
		st[i*6+4] = p.Velocity.Y
		st[i*6+5] = p.Velocity.Z
	}
	return st
}

// SetState unpacks src into the particles, leaving the simulation time
// unchanged. Immovable particles keep their position and velocity.
func (s *System) SetState(src State) {
	s.SetStateAt(src, s.time)
}

// SetStateAt unpacks src into the particles and sets the simulation time.
func (s *System) SetStateAt(src State, t float64) {
	for i, p := range s.particles {
		if !p.Movable {
			continue
		}
		p.Position.X = src[i*6+0]
		p.Position.Y = src[i*6+1]
		p.Position.Z = src[i*6+2]
		p.Velocity.X = src[i*6+3]
		p.Velocity.Y = src[i*6+4]
		p.Velocity.Z = src[i*6+5]
	}
	s.time = t
}

// DerivEval runs the derivative pipeline: clear force accumulators,
// re-index the grid at current positions, recompute densities and
// pressures, apply every force in registration order, and assemble the
// state derivative. Velocity components copy directly; acceleration is
// accumulated force over density.
func (s *System) DerivEval() State {
	s.clearForces()
	s.grid.Rebuild(s.particles)

	rest := 0.0
	for _, p := range s.particles {
		p.Density = s.densityField.Eval(p)
		rest += p.Density
	}
	if n := len(s.particles); n > 0 {
		rest /= float64(n)
	}
	for _, p := range s.particles {
		p.Pressure = s.stiffness * (p.Density - rest)
	}

	for _, f := range s.forces {
		f.Apply(s)
	}

	deriv := make(State, s.Dim())
	for i, p := range s.particles {
		rho := math.Max(p.Density, densityFloor)
		deriv[i*6+0] = p.Velocity.X
		deriv[i*6+1] = p.Velocity.Y
		deriv[i*6+2] = p.Velocity.Z
		deriv[i*6+3] = p.Force.X / rho
		deriv[i*6+4] = p.Force.Y / rho
		deriv[i*6+5] = p.Force.Z / rho
	}
	return deriv
}

func (s *System) clearForces() {
	for _, p := range s.particles {
		p.ClearForce()
	}
}

// CheckCollisions clamps a candidate state against the collision box and
// returns the corrected copy. Each boundary is handled independently, in
// axis order x, z, y; a clamped particle's velocity component is reflected
// only when it still points into the violated wall.
func (s *System) CheckCollisions(state State) State {
	out := state.Clone()
	for i := range s.particles {
		b := i * 6
		if out[b] < s.bounds.XMin {
			out[b] = s.bounds.XMin
			if out[b+3] < 0 {
				out[b+3] = -out[b+3]
			}
		}
		if out[b] > s.bounds.XMax {
			out[b] = s.bounds.XMax
			if out[b+3] > 0 {
				out[b+3] = -out[b+3]
			}
		}
		if out[b+2] < s.bounds.ZMin {
			out[b+2] = s.bounds.ZMin
			if out[b+5] < 0 {
				out[b+5] = -out[b+5]
			}
		}
		if out[b+2] > s.bounds.ZMax {
			out[b+2] = s.bounds.ZMax
			if out[b+5] > 0 {
				out[b+5] = -out[b+5]
			}
		}
		if out[b+1] < s.bounds.Floor {
			out[b+1] = s.bounds.Floor
			if out[b+4] < 0 {
				out[b+4] = -out[b+4]
			}
		}
	}
	return out
}

// Step advances the system by one solver step of the current dt. With
// adaptive stepping, a step-doubling trial first compares one full step
// against two half steps from the same state; a nonzero difference rescales
// dt by sqrt(tolerance/err). The trial never rejects the step: the rescaled
// dt takes effect for the committed advance and everything after it.
func (s *System) Step(adaptive bool) {
	if adaptive {
		before := s.State()
		t0 := s.time

		s.solver.SimulateStep(s, s.dt)
		xa := s.State()
		s.SetStateAt(before, t0)

		s.solver.SimulateStep(s, s.dt/2)
		s.solver.SimulateStep(s, s.dt/2)
		xb := s.State()
		s.SetStateAt(before, t0)

		if err := xa.Sub(xb).Norm(); err > 0 {
			s.dt *= math.Sqrt(stepTolerance / err)
		}
	}
	s.solver.SimulateStep(s, s.dt)
}
