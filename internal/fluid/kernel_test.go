package fluid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestKernelVanishesOutsideRadius(t *testing.T) {
	k := NewKernel(0.05)
	far := r3.Vec{X: 0.075}

	if got := k.Poly6(far); got != 0 {
		t.Errorf("Poly6 outside radius = %v, want 0", got)
	}
	if got := k.Poly6Grad(far); got != (r3.Vec{}) {
		t.Errorf("Poly6Grad outside radius = %v, want zero", got)
	}
	if got := k.Poly6Laplacian(far); got != 0 {
		t.Errorf("Poly6Laplacian outside radius = %v, want 0", got)
	}
	if got := k.SpikyGrad(far); got != (r3.Vec{}) {
		t.Errorf("SpikyGrad outside radius = %v, want zero", got)
	}
	if got := k.ViscosityLaplacian(far); got != 0 {
		t.Errorf("ViscosityLaplacian outside radius = %v, want 0", got)
	}
}

func TestPoly6Normalization(t *testing.T) {
	// The Poly6 kernel integrates to 1 over its support. Radial
	// integration of 4 pi r^2 W(r) with the trapezoid rule.
	for _, h := range []float64{0.05, 1.0} {
		k := NewKernel(h)
		const n = 2000
		dr := h / n
		integral := 0.0
		for i := 0; i <= n; i++ {
			r := float64(i) * dr
			w := 4 * math.Pi * r * r * k.Poly6(r3.Vec{X: r})
			if i == 0 || i == n {
				w /= 2
			}
			integral += w * dr
		}
		assert.InDelta(t, 1.0, integral, 1e-4, "h=%v", h)
	}
}

func TestPoly6Symmetric(t *testing.T) {
	k := NewKernel(0.05)
	r := r3.Vec{X: 0.01, Y: 0.02, Z: -0.015}
	assert.Equal(t, k.Poly6(r), k.Poly6(r3.Scale(-1, r)))
}

func TestPoly6PositiveAtZero(t *testing.T) {
	k := NewKernel(0.05)
	if w := k.Poly6(r3.Vec{}); w <= 0 {
		t.Errorf("Poly6 at zero separation = %v, want > 0", w)
	}
}

func TestSpikyGradZeroAtContact(t *testing.T) {
	k := NewKernel(0.05)
	if got := k.SpikyGrad(r3.Vec{}); got != (r3.Vec{}) {
		t.Errorf("SpikyGrad at zero separation = %v, want zero", got)
	}
}

func TestSpikyGradPointsTowardNeighbor(t *testing.T) {
	// For displacement x_i - x_j along +x the gradient points in -x; the
	// negative coefficient in the pressure sum then pushes particles
	// apart.
	k := NewKernel(0.05)
	g := k.SpikyGrad(r3.Vec{X: 0.02})
	if g.X >= 0 {
		t.Errorf("SpikyGrad.X = %v, want < 0", g.X)
	}
	if g.Y != 0 || g.Z != 0 {
		t.Errorf("SpikyGrad off-axis components = %v, want 0", g)
	}
}

func TestViscosityLaplacianShape(t *testing.T) {
	k := NewKernel(0.05)
	near := k.ViscosityLaplacian(r3.Vec{X: 0.01})
	mid := k.ViscosityLaplacian(r3.Vec{X: 0.03})
	if near <= 0 || mid <= 0 {
		t.Fatalf("viscosity Laplacian not positive inside support: near=%v mid=%v", near, mid)
	}
	if near <= mid {
		t.Errorf("viscosity Laplacian should decrease with distance: near=%v mid=%v", near, mid)
	}
}

func TestPoly6LaplacianSignFlips(t *testing.T) {
	// Negative near the center, positive toward the edge of the support
	// where 7r^2 > 3h^2.
	k := NewKernel(1.0)
	if lap := k.Poly6Laplacian(r3.Vec{X: 0.1}); lap >= 0 {
		t.Errorf("Laplacian near center = %v, want < 0", lap)
	}
	if lap := k.Poly6Laplacian(r3.Vec{X: 0.9}); lap <= 0 {
		t.Errorf("Laplacian near edge = %v, want > 0", lap)
	}
}
