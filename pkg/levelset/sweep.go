package levelset

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tobiaspfaff/SDFGen/pkg/field"
	"github.com/tobiaspfaff/SDFGen/pkg/geom"
	"github.com/tobiaspfaff/SDFGen/pkg/mesh"
)

// octants enumerates the eight axis-direction orderings of one sweep round,
// paired so each ordering is followed by its mirror.
var octants = [8][3]int{
	{+1, +1, +1}, {-1, -1, -1},
	{+1, +1, -1}, {-1, -1, +1},
	{+1, -1, +1}, {-1, +1, -1},
	{-1, +1, +1}, {+1, -1, -1},
}

// sweepDistances propagates seeded distances across the grid. Each octant
// ordering visits nodes in its axis directions and offers every node the
// closest triangles of its seven trailing neighbors; across a round the full
// 26-neighborhood is covered. A neighbor is considered only when its value
// plus the offset length can still improve the node, and an adopted triangle
// is stored at its exact distance, so values only decrease and never drop
// below the true distance. Runs capped by cfg.sweepPasses with an early stop
// after a round without changes; returns the rounds used. Updates within a
// pass are applied in place in a fixed order, so later nodes in the same
// pass see earlier results deterministically.
func sweepDistances(m *mesh.Mesh, dist *field.Scalar, closest *field.Int32, cfg config) int {
	for pass := 1; pass <= cfg.sweepPasses; pass++ {
		changed := false
		for _, o := range octants {
			if sweepOctant(m, dist, closest, o) {
				changed = true
			}
		}
		if !changed {
			return pass
		}
	}
	return cfg.sweepPasses
}

func sweepOctant(m *mesh.Mesh, dist *field.Scalar, closest *field.Int32, dir [3]int) bool {
	g := dist.Grid
	di, dj, dk := dir[0], dir[1], dir[2]
	i0, i1 := sweepRange(g.Ni, di)
	j0, j1 := sweepRange(g.Nj, dj)
	k0, k1 := sweepRange(g.Nk, dk)

	s1 := g.Spacing
	s2 := g.Spacing * math.Sqrt2
	s3 := g.Spacing * math.Sqrt(3)

	changed := false
	for k := k0; k != k1; k += dk {
		for j := j0; j != j1; j += dj {
			for i := i0; i != i1; i += di {
				n := g.Index(i, j, k)
				p := g.Pos(i, j, k)
				if relaxFrom(m, dist, closest, p, n, i-di, j, k, s1) {
					changed = true
				}
				if relaxFrom(m, dist, closest, p, n, i, j-dj, k, s1) {
					changed = true
				}
				if relaxFrom(m, dist, closest, p, n, i-di, j-dj, k, s2) {
					changed = true
				}
				if relaxFrom(m, dist, closest, p, n, i, j, k-dk, s1) {
					changed = true
				}
				if relaxFrom(m, dist, closest, p, n, i-di, j, k-dk, s2) {
					changed = true
				}
				if relaxFrom(m, dist, closest, p, n, i, j-dj, k-dk, s2) {
					changed = true
				}
				if relaxFrom(m, dist, closest, p, n, i-di, j-dj, k-dk, s3) {
					changed = true
				}
			}
		}
	}
	return changed
}

// sweepRange returns the start (inclusive) and stop (exclusive) node index
// for one axis of an octant. Every plane is visited, including the first in
// the travel direction: its trailing neighbors fall off the grid and are
// dropped in relaxFrom, which keeps one-node-thick axes sweeping along the
// others.
func sweepRange(n, d int) (int, int) {
	if d > 0 {
		return 0, n
	}
	return n - 1, -1
}

// relaxFrom offers node n, at position p, the closest triangle of the
// neighbor at (in, jn, kn), step away. The neighbor is skipped when it lies
// outside the grid, when no triangle has reached it yet, or when its value
// plus the step cannot beat the node's current value; otherwise the node
// adopts the neighbor's triangle if the exact distance improves on what it
// has.
func relaxFrom(m *mesh.Mesh, dist *field.Scalar, closest *field.Int32, p r3.Vec, n, in, jn, kn int, step float64) bool {
	g := dist.Grid
	if in < 0 || in >= g.Ni || jn < 0 || jn >= g.Nj || kn < 0 || kn >= g.Nk {
		return false
	}
	nb := g.Index(in, jn, kn)
	t := closest.Data[nb]
	if t < 0 {
		return false
	}
	if dist.Data[nb]+step >= dist.Data[n] {
		return false
	}
	a, b, c := m.Triangle(int(t))
	d, _ := geom.PointTriangleDistance(p, a, b, c)
	if d < dist.Data[n] {
		dist.Data[n] = d
		closest.Data[n] = t
		return true
	}
	return false
}
