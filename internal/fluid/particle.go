package fluid

import "gonum.org/v1/gonum/spatial/r3"

// Particle is a point mass owned by a System. Position, velocity and the
// force accumulator are mutated every step; Density and Pressure are
// recomputed by the derivative pipeline. Immovable particles keep their
// position and velocity regardless of state updates.
type Particle struct {
	// Index is the particle's position in the system's particle slice and
	// defines its slot in the state vector. Assigned by AddParticle.
	Index int

	Position r3.Vec
	Velocity r3.Vec
	Force    r3.Vec

	Mass     float64
	Density  float64
	Pressure float64
	Movable  bool

	initPosition r3.Vec
	initVelocity r3.Vec
}

func NewParticle(position, velocity r3.Vec, mass float64, movable bool) *Particle {
	return &Particle{
		Position:     position,
		Velocity:     velocity,
		Mass:         mass,
		Movable:      movable,
		initPosition: position,
		initVelocity: velocity,
	}
}

// Reset restores the particle to the state it was constructed with.
func (p *Particle) Reset() {
	p.Position = p.initPosition
	p.Velocity = p.initVelocity
	p.Force = r3.Vec{}
	p.Density = 0
	p.Pressure = 0
}

func (p *Particle) ClearForce() {
	p.Force = r3.Vec{}
}

func (p *Particle) AddForce(f r3.Vec) {
	p.Force = r3.Add(p.Force, f)
}

func (p *Particle) Speed() float64 {
	return r3.Norm(p.Velocity)
}
