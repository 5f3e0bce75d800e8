package fluid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Fields interpolate SPH-smoothed scalars at arbitrary points by summing
// kernel-weighted contributions from neighboring particles. They hold a
// non-owning reference to the system that created them to reach the
// neighbor index and particle data; an empty neighbor set yields zero.

// DensityField evaluates rho_i = sum_j m_j W(x_i - x_j) over the neighbors
// of a particle, the particle itself included (Poly6 is nonzero at zero
// separation).
type DensityField struct {
	sys *System
}

func (f *DensityField) Eval(p *Particle) float64 {
	rho := 0.0
	for _, q := range f.sys.grid.Query(p.Position) {
		rho += q.Mass * f.sys.kernel.Poly6(r3.Sub(p.Position, q.Position))
	}
	return rho
}

// PressureField exposes the per-particle pressure assigned by the equation
// of state. Pressure is not independently interpolated in this formulation;
// the field is kept for symmetry with density and color.
type PressureField struct {
	sys *System
}

func (f *PressureField) Eval(p *Particle) float64 {
	return p.Pressure
}

// ColorField is the indicator field used to locate the free surface. Its
// gradient is the inward surface normal and its Laplacian measures surface
// curvature; surface tension consumes both.
type ColorField struct {
	sys *System
}

func (f *ColorField) Eval(pos r3.Vec) float64 {
	c := 0.0
	for _, q := range f.sys.grid.Query(pos) {
		rho := math.Max(q.Density, densityFloor)
		c += q.Mass / rho * f.sys.kernel.Poly6(r3.Sub(pos, q.Position))
	}
	return c
}

func (f *ColorField) Gradient(pos r3.Vec) r3.Vec {
	var grad r3.Vec
	for _, q := range f.sys.grid.Query(pos) {
		rho := math.Max(q.Density, densityFloor)
		grad = r3.Add(grad, r3.Scale(q.Mass/rho, f.sys.kernel.Poly6Grad(r3.Sub(pos, q.Position))))
	}
	return grad
}

func (f *ColorField) Laplacian(pos r3.Vec) float64 {
	lap := 0.0
	for _, q := range f.sys.grid.Query(pos) {
		rho := math.Max(q.Density, densityFloor)
		lap += q.Mass / rho * f.sys.kernel.Poly6Laplacian(r3.Sub(pos, q.Position))
	}
	return lap
}
