package fluid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Kernel evaluates the smoothing kernels of an SPH formulation at a fixed
// smoothing radius h. All evaluations are pure functions of the relative
// displacement between two points and vanish at or beyond h.
//
// Three kernel families are used, following Mueller et al. (2003):
// Poly6 for density and color-field sums, Spiky for pressure gradients
// (its gradient does not vanish near contact), and the viscosity kernel
// whose Laplacian is positive everywhere inside the support.
type Kernel struct {
	h  float64
	h2 float64

	poly6C     float64
	poly6GradC float64
	spikyGradC float64
	viscLapC   float64
}

// spikyEps guards the direction normalization of the Spiky gradient;
// below this separation the gradient is defined as zero.
const spikyEps = 1e-6

func NewKernel(h float64) Kernel {
	h2 := h * h
	h3 := h2 * h
	h6 := h3 * h3
	h9 := h6 * h3
	return Kernel{
		h:          h,
		h2:         h2,
		poly6C:     315.0 / (64.0 * math.Pi * h9),
		poly6GradC: -945.0 / (32.0 * math.Pi * h9),
		spikyGradC: -45.0 / (math.Pi * h6),
		viscLapC:   45.0 / (math.Pi * h6),
	}
}

// Radius returns the smoothing radius h.
func (k Kernel) Radius() float64 { return k.h }

// Poly6 returns W(r) = 315/(64 pi h^9) (h^2 - |r|^2)^3 for |r| <= h.
// Nonzero at zero separation, so density sums include the particle itself.
func (k Kernel) Poly6(r r3.Vec) float64 {
	r2 := r3.Norm2(r)
	if r2 > k.h2 {
		return 0
	}
	d := k.h2 - r2
	return k.poly6C * d * d * d
}

// Poly6Grad returns the gradient of the Poly6 kernel.
func (k Kernel) Poly6Grad(r r3.Vec) r3.Vec {
	r2 := r3.Norm2(r)
	if r2 > k.h2 {
		return r3.Vec{}
	}
	d := k.h2 - r2
	return r3.Scale(k.poly6GradC*d*d, r)
}

// Poly6Laplacian returns the Laplacian of the Poly6 kernel.
func (k Kernel) Poly6Laplacian(r r3.Vec) float64 {
	r2 := r3.Norm2(r)
	if r2 > k.h2 {
		return 0
	}
	return k.poly6GradC * (k.h2 - r2) * (3*k.h2 - 7*r2)
}

// SpikyGrad returns the gradient of the Spiky kernel,
// -45/(pi h^6) (h - |r|)^2 r^. Zero at near-zero separation, so pressure
// sums contribute nothing between coincident particles.
func (k Kernel) SpikyGrad(r r3.Vec) r3.Vec {
	d := r3.Norm(r)
	if d > k.h || d < spikyEps {
		return r3.Vec{}
	}
	x := k.h - d
	return r3.Scale(k.spikyGradC*x*x/d, r)
}

// ViscosityLaplacian returns the Laplacian of the viscosity kernel,
// 45/(pi h^6) (h - |r|).
func (k Kernel) ViscosityLaplacian(r r3.Vec) float64 {
	d := r3.Norm(r)
	if d > k.h {
		return 0
	}
	return k.viscLapC * (k.h - d)
}
