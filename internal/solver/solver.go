// Package solver provides explicit integration schemes for the fluid
// system. Each solver requests one or more derivative evaluations, runs
// the candidate state through collision handling, and commits state and
// time in a single SimulateStep call.
package solver

import (
	"fmt"

	"github.com/pongo192/sphlab/internal/fluid"
)

// ByName returns the solver registered under the given name.
func ByName(name string) (fluid.Solver, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "midpoint":
		return NewMidpoint(), nil
	case "rk4":
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown solver: %s (available: euler, midpoint, rk4)", name)
	}
}
