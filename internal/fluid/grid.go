package fluid

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

type cell struct {
	x, y, z int
}

// Grid is a uniform spatial hash over particle positions with cell size
// equal to the interaction radius, so a query only has to visit the cell
// containing the query point and its 26 neighbors.
//
// The grid holds no state of its own between steps: Rebuild must be called
// whenever particle positions may have changed, which the derivative
// pipeline does before every evaluation.
type Grid struct {
	radius  float64
	radius2 float64
	cells   map[cell][]*Particle
}

func NewGrid(radius float64) *Grid {
	return &Grid{
		radius:  radius,
		radius2: radius * radius,
		cells:   make(map[cell][]*Particle),
	}
}

func (g *Grid) cellOf(pos r3.Vec) cell {
	return cell{
		x: int(math.Floor(pos.X / g.radius)),
		y: int(math.Floor(pos.Y / g.radius)),
		z: int(math.Floor(pos.Z / g.radius)),
	}
}

// Rebuild re-indexes the given particles at their current positions,
// discarding any previous contents.
func (g *Grid) Rebuild(particles []*Particle) {
	clear(g.cells)
	for _, p := range particles {
		c := g.cellOf(p.Position)
		g.cells[c] = append(g.cells[c], p)
	}
}

// Query returns every indexed particle within the interaction radius of
// pos, in ascending particle-index order so repeated runs over identical
// positions sum contributions in the same order. A particle at pos itself
// is included; callers that must exclude it do so explicitly.
func (g *Grid) Query(pos r3.Vec) []*Particle {
	c := g.cellOf(pos)
	var found []*Particle
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				bucket := g.cells[cell{c.x + dx, c.y + dy, c.z + dz}]
				for _, p := range bucket {
					if r3.Norm2(r3.Sub(pos, p.Position)) <= g.radius2 {
						found = append(found, p)
					}
				}
			}
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Index < found[j].Index })
	return found
}
