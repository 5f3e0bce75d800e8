package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pongo192/sphlab/internal/fluid"
	"github.com/pongo192/sphlab/internal/solver"
)

func observedSystem(t *testing.T) *fluid.System {
	t.Helper()
	sys := fluid.NewSystem(solver.NewEuler(), fluid.DefaultParams())
	sys.AddParticle(fluid.NewParticle(r3.Vec{}, r3.Vec{X: 2.0}, 0.02, true))
	sys.AddParticle(fluid.NewParticle(r3.Vec{X: 0.1}, r3.Vec{}, 0.02, true))
	sys.DerivEval()
	return sys
}

func TestKineticEnergy(t *testing.T) {
	sys := observedSystem(t)
	m := NewKineticEnergy()
	m.Observe(sys)

	// 0.5 * 0.02 * 2^2 for the moving particle, zero for the resting one.
	assert.InDelta(t, 0.04, m.Value(), 1e-12)

	m.Reset()
	assert.Equal(t, 0.0, m.Value())
}

func TestKineticEnergyReportsLatest(t *testing.T) {
	sys := observedSystem(t)
	m := NewKineticEnergy()
	m.Observe(sys)
	first := m.Value()
	m.Observe(sys)
	assert.Equal(t, first, m.Value(), "latest observation, not a running sum")
}

func TestMeanDensityAveragesObservations(t *testing.T) {
	sys := observedSystem(t)
	m := NewMeanDensity()

	m.Observe(sys)
	perStep := m.Value()
	if perStep <= 0 {
		t.Fatalf("mean density = %v, want > 0", perStep)
	}

	m.Observe(sys)
	assert.InDelta(t, perStep, m.Value(), 1e-12, "identical observations keep the mean")

	m.Reset()
	assert.Equal(t, 0.0, m.Value())
}

func TestMeanDensityEmptySystem(t *testing.T) {
	sys := fluid.NewSystem(solver.NewEuler(), fluid.DefaultParams())
	m := NewMeanDensity()
	m.Observe(sys)
	assert.Equal(t, 0.0, m.Value())
}

func TestMaxSpeedTracksPeak(t *testing.T) {
	sys := fluid.NewSystem(solver.NewEuler(), fluid.DefaultParams())
	p := fluid.NewParticle(r3.Vec{}, r3.Vec{X: 3.0, Y: 4.0}, 0.02, true)
	sys.AddParticle(p)

	m := NewMaxSpeed()
	m.Observe(sys)
	assert.InDelta(t, 5.0, m.Value(), 1e-12)

	// A slower later observation must not lower the peak.
	p.Velocity = r3.Vec{X: 1.0}
	m.Observe(sys)
	assert.InDelta(t, 5.0, m.Value(), 1e-12)

	m.Reset()
	assert.Equal(t, 0.0, m.Value())
}

func TestDefaultSet(t *testing.T) {
	set := Default()
	if len(set) != 3 {
		t.Fatalf("default set has %d metrics, want 3", len(set))
	}
	seen := map[string]bool{}
	for _, m := range set {
		seen[m.Name()] = true
	}
	for _, name := range []string{"kinetic_energy", "mean_density", "max_speed"} {
		if !seen[name] {
			t.Errorf("default set missing %q", name)
		}
	}
}
