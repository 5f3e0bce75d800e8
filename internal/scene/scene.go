// Package scene constructs ready-to-step fluid systems from
// configuration: it places the initial particle lattice, selects the
// solver, and registers the force set.
package scene

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pongo192/sphlab/internal/config"
	"github.com/pongo192/sphlab/internal/fluid"
	"github.com/pongo192/sphlab/internal/solver"
)

// Build assembles a system from cfg. Particles are placed before forces
// are registered, so every force picks up the full particle set as its
// target.
func Build(cfg *config.Config) (*fluid.System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	slv, err := solver.ByName(cfg.Solver)
	if err != nil {
		return nil, err
	}

	sys := fluid.NewSystem(slv, fluid.Params{
		SmoothingRadius: cfg.Fluid.SmoothingRadius,
		Stiffness:       cfg.Fluid.Stiffness,
		Dt:              cfg.Dt,
		Bounds: fluid.Bounds{
			XMin:  cfg.Bounds.XMin,
			XMax:  cfg.Bounds.XMax,
			ZMin:  cfg.Bounds.ZMin,
			ZMax:  cfg.Bounds.ZMax,
			Floor: cfg.Bounds.Floor,
		},
	})

	layout := cfg.Layout
	origin := r3.Vec{X: layout.Origin[0], Y: layout.Origin[1], Z: layout.Origin[2]}
	for i := 0; i < layout.Nx; i++ {
		for j := 0; j < layout.Ny; j++ {
			for k := 0; k < layout.Nz; k++ {
				pos := r3.Add(origin, r3.Vec{
					X: float64(i) * layout.Spacing,
					Y: float64(j) * layout.Spacing,
					Z: float64(k) * layout.Spacing,
				})
				sys.AddParticle(fluid.NewParticle(pos, r3.Vec{}, cfg.Fluid.ParticleMass, true))
			}
		}
	}

	if layout.Bed {
		bedY := origin.Y - layout.Spacing
		for i := 0; i < layout.Nx; i++ {
			for k := 0; k < layout.Nz; k++ {
				pos := r3.Vec{
					X: origin.X + float64(i)*layout.Spacing,
					Y: bedY,
					Z: origin.Z + float64(k)*layout.Spacing,
				}
				sys.AddParticle(fluid.NewParticle(pos, r3.Vec{}, cfg.Fluid.ParticleMass, false))
			}
		}
	}

	sys.AddForce(fluid.NewPressureForce(nil))
	sys.AddForce(fluid.NewViscosityForce(nil, cfg.Fluid.Viscosity))
	sys.AddForce(fluid.NewSurfaceTensionForce(nil, cfg.Fluid.SurfaceTension, cfg.Fluid.TensionThreshold))
	if cfg.Fluid.Gravity != 0 {
		sys.AddForce(fluid.NewDirectionalForce(nil, r3.Vec{Y: -cfg.Fluid.Gravity}))
	}

	return sys, nil
}
