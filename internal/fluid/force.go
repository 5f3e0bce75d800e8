package fluid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Default force coefficients. Viscosity and surface tension match water
// against air at room temperature.
const (
	DefaultViscosity        = 100.0
	DefaultTensionCoeff     = 72.75
	DefaultTensionThreshold = 0.01
)

// Force adds a contribution to the force accumulator of each particle in
// its target set. Apply must only ever add, never overwrite: a particle may
// be targeted by several forces within one derivative evaluation. Forces
// hold references to their targets, not ownership.
type Force interface {
	Apply(s *System)
	SetTarget(particles []*Particle)
	AddTarget(p *Particle)
}

type targetSet struct {
	particles []*Particle
}

func (t *targetSet) SetTarget(particles []*Particle) {
	t.particles = append(t.particles[:0:0], particles...)
}

func (t *targetSet) AddTarget(p *Particle) {
	t.particles = append(t.particles, p)
}

// PressureForce applies the symmetric pressure-gradient term
//
//	F_i -= sum_j m_j (p_i/rho_i^2 + p_j/rho_j^2) gradW(x_i - x_j)
//
// using the Spiky gradient. The symmetric formulation keeps the pairwise
// exchange equal and opposite regardless of the pressure difference.
type PressureForce struct {
	targetSet
}

func NewPressureForce(particles []*Particle) *PressureForce {
	f := &PressureForce{}
	f.SetTarget(particles)
	return f
}

func (f *PressureForce) Apply(s *System) {
	for _, pi := range f.particles {
		var sum r3.Vec
		rhoI := math.Max(pi.Density, densityFloor)
		for _, pj := range s.grid.Query(pi.Position) {
			if pj == pi {
				continue
			}
			rhoJ := math.Max(pj.Density, densityFloor)
			coeff := -pj.Mass * (pi.Pressure/(rhoI*rhoI) + pj.Pressure/(rhoJ*rhoJ))
			sum = r3.Add(sum, r3.Scale(coeff, s.kernel.SpikyGrad(r3.Sub(pi.Position, pj.Position))))
		}
		pi.AddForce(sum)
	}
}

// ViscosityForce diffuses velocity differences between neighbors:
//
//	F_i += mu * sum_j m_j (v_j - v_i)/rho_j lapW(x_i - x_j)
//
// Every neighbor contributes to the running sum; the particle itself is
// skipped since its velocity difference is zero.
type ViscosityForce struct {
	targetSet
	Mu float64
}

func NewViscosityForce(particles []*Particle, mu float64) *ViscosityForce {
	if mu <= 0 {
		mu = DefaultViscosity
	}
	f := &ViscosityForce{Mu: mu}
	f.SetTarget(particles)
	return f
}

func (f *ViscosityForce) Apply(s *System) {
	for _, pi := range f.particles {
		var sum r3.Vec
		for _, pj := range s.grid.Query(pi.Position) {
			if pj == pi {
				continue
			}
			rhoJ := math.Max(pj.Density, densityFloor)
			w := s.kernel.ViscosityLaplacian(r3.Sub(pi.Position, pj.Position))
			sum = r3.Add(sum, r3.Scale(pj.Mass*w/rhoJ, r3.Sub(pj.Velocity, pi.Velocity)))
		}
		pi.AddForce(r3.Scale(f.Mu, sum))
	}
}

// SurfaceTensionForce pulls surface particles along the color-field
// normal, scaled by curvature:
//
//	F_i += -sigma * lapC(x_i) * n/|n|   where n = gradC(x_i)
//
// Particles whose color gradient is below Threshold are interior to the
// fluid; normalizing their near-zero normal would amplify noise, so they
// are skipped.
type SurfaceTensionForce struct {
	targetSet
	Sigma     float64
	Threshold float64
}

func NewSurfaceTensionForce(particles []*Particle, sigma, threshold float64) *SurfaceTensionForce {
	if sigma <= 0 {
		sigma = DefaultTensionCoeff
	}
	if threshold <= 0 {
		threshold = DefaultTensionThreshold
	}
	f := &SurfaceTensionForce{Sigma: sigma, Threshold: threshold}
	f.SetTarget(particles)
	return f
}

func (f *SurfaceTensionForce) Apply(s *System) {
	for _, pi := range f.particles {
		n := s.colorField.Gradient(pi.Position)
		if r3.Norm(n) > f.Threshold {
			pi.AddForce(r3.Scale(-f.Sigma*s.colorField.Laplacian(pi.Position), r3.Unit(n)))
		}
	}
}

// DirectionalForce applies a constant acceleration such as gravity. The
// contribution is scaled by local density because the derivative pipeline
// divides accumulated force by density, not mass.
type DirectionalForce struct {
	targetSet
	Accel r3.Vec
}

func NewDirectionalForce(particles []*Particle, accel r3.Vec) *DirectionalForce {
	f := &DirectionalForce{Accel: accel}
	f.SetTarget(particles)
	return f
}

func (f *DirectionalForce) Apply(s *System) {
	for _, pi := range f.particles {
		pi.AddForce(r3.Scale(math.Max(pi.Density, densityFloor), f.Accel))
	}
}
