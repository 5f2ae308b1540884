package levelset

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tobiaspfaff/SDFGen/pkg/field"
	"github.com/tobiaspfaff/SDFGen/pkg/geom"
	"github.com/tobiaspfaff/SDFGen/pkg/mesh"
)

// seedDistances fills every node with a sentinel above any distance the grid
// can attain, then overwrites the nodes within the exact band of each
// triangle with exact point-triangle distances, recording the winning
// triangle per node. Workers own disjoint k-slabs and each scans the full
// triangle list in index order, so a tie always goes to the lowest triangle
// index regardless of worker count.
func seedDistances(m *mesh.Mesh, g field.Grid, cfg config) (*field.Scalar, *field.Int32) {
	sentinel := float64(g.Ni+g.Nj+g.Nk) * g.Spacing
	dist := field.NewScalar(g, sentinel)
	closest := field.NewInt32(g, -1)

	workers := slabWorkers(cfg.workers, g.Nk)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		k0, k1 := slab(w, workers, g.Nk)
		wg.Add(1)
		go func() {
			defer wg.Done()
			seedSlab(m, dist, closest, cfg.exactBand, k0, k1)
		}()
	}
	wg.Wait()
	return dist, closest
}

// seedSlab seeds the nodes with k0 <= k < k1.
func seedSlab(m *mesh.Mesh, dist *field.Scalar, closest *field.Int32, band, k0, k1 int) {
	g := dist.Grid
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		fa := gridCoords(g, a)
		fb := gridCoords(g, b)
		fc := gridCoords(g, c)

		i0, i1, ok := seedRange(fa.X, fb.X, fc.X, band, 0, g.Ni-1)
		if !ok {
			continue
		}
		j0, j1, ok := seedRange(fa.Y, fb.Y, fc.Y, band, 0, g.Nj-1)
		if !ok {
			continue
		}
		kLo, kHi, ok := seedRange(fa.Z, fb.Z, fc.Z, band, k0, k1-1)
		if !ok {
			continue
		}

		for k := kLo; k <= kHi; k++ {
			for j := j0; j <= j1; j++ {
				for i := i0; i <= i1; i++ {
					d, _ := geom.PointTriangleDistance(g.Pos(i, j, k), a, b, c)
					n := g.Index(i, j, k)
					if d < dist.Data[n] {
						dist.Data[n] = d
						closest.Data[n] = int32(t)
					}
				}
			}
		}
	}
}

// seedRange widens the fractional extent [min, max] by band cells on each
// side and intersects it with the node range [lo, hi]. ok is false when the
// intersection is empty.
func seedRange(f0, f1, f2 float64, band int, lo, hi int) (int, int, bool) {
	a := floorInt(min3(f0, f1, f2)) - band
	b := floorInt(max3(f0, f1, f2)) + band + 1
	if a < lo {
		a = lo
	}
	if b > hi {
		b = hi
	}
	return a, b, a <= b
}

// gridCoords converts a point to fractional grid coordinates: node (i,j,k)
// sits at coordinate (i,j,k).
func gridCoords(g field.Grid, p r3.Vec) r3.Vec {
	return r3.Scale(1/g.Spacing, r3.Sub(p, g.Origin))
}

// slabWorkers caps the worker count by the number of k-slabs available.
func slabWorkers(workers, nk int) int {
	if workers < 1 {
		workers = 1
	}
	if workers > nk {
		workers = nk
	}
	return workers
}

// slab returns the half-open k range owned by worker w of n.
func slab(w, n, nk int) (int, int) {
	return w * nk / n, (w + 1) * nk / n
}

func floorInt(f float64) int { return int(math.Floor(f)) }
func ceilInt(f float64) int  { return int(math.Ceil(f)) }

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
