package levelset

import (
	"sync"

	"github.com/tobiaspfaff/SDFGen/pkg/field"
	"github.com/tobiaspfaff/SDFGen/pkg/geom"
	"github.com/tobiaspfaff/SDFGen/pkg/mesh"
)

// classifySigns marks every node inside or outside by casting the grid lines
// along +i through the mesh. Each triangle contributes one signed crossing
// to every (j,k) line it covers in projection: the projected orientation
// tells whether the surface faces toward -i or +i at that line, and the
// symbolic perturbation in geom.PointInTriangle2 gives shared edges to
// exactly one triangle, so a watertight mesh contributes matched crossing
// pairs. Walking each line and accumulating crossings yields a winding
// count; a node is inside while the count is non-zero, which survives a
// globally reversed mesh. A crossing exactly on a node takes effect strictly
// after it, leaving that node outside.
//
// Workers own disjoint k-slabs for both accumulation and the line walks, so
// the classification is identical for any worker count.
func classifySigns(m *mesh.Mesh, g field.Grid, cfg config) []bool {
	crossings := make([]int32, g.Len())
	inside := make([]bool, g.Len())

	workers := slabWorkers(cfg.workers, g.Nk)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		k0, k1 := slab(w, workers, g.Nk)
		wg.Add(1)
		go func() {
			defer wg.Done()
			accumulateCrossings(m, g, crossings, k0, k1)
			foldCrossings(g, crossings, inside, k0, k1)
		}()
	}
	wg.Wait()
	return inside
}

// accumulateCrossings records, for each grid line with k0 <= k < k1, the
// signed surface crossings of every triangle. A crossing at fractional
// coordinate fi is booked on the first node strictly past it; crossings
// past the last node are dropped, crossings before the grid apply from node
// zero.
func accumulateCrossings(m *mesh.Mesh, g field.Grid, crossings []int32, k0, k1 int) {
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		fa := gridCoords(g, a)
		fb := gridCoords(g, b)
		fc := gridCoords(g, c)

		if ceilInt(min3(fa.Z, fb.Z, fc.Z)) > k1-1 || floorInt(max3(fa.Z, fb.Z, fc.Z)) < k0 {
			continue
		}
		jLo := clampInt(ceilInt(min3(fa.Y, fb.Y, fc.Y)), 0, g.Nj-1)
		jHi := clampInt(floorInt(max3(fa.Y, fb.Y, fc.Y)), 0, g.Nj-1)
		kLo := clampInt(ceilInt(min3(fa.Z, fb.Z, fc.Z)), k0, k1-1)
		kHi := clampInt(floorInt(max3(fa.Z, fb.Z, fc.Z)), k0, k1-1)

		for k := kLo; k <= kHi; k++ {
			for j := jLo; j <= jHi; j++ {
				wa, wb, wc, dir, ok := geom.PointInTriangle2(float64(j), float64(k),
					fa.Y, fa.Z, fb.Y, fb.Z, fc.Y, fc.Z)
				if !ok {
					continue
				}
				fi := wa*fa.X + wb*fb.X + wc*fc.X
				n := floorInt(fi) + 1
				if n >= g.Ni {
					continue
				}
				if n < 0 {
					n = 0
				}
				crossings[g.Index(n, j, k)] += int32(dir)
			}
		}
	}
}

// foldCrossings walks each +i line, keeping a running crossing sum, and
// marks the nodes where the sum is non-zero.
func foldCrossings(g field.Grid, crossings []int32, inside []bool, k0, k1 int) {
	for k := k0; k < k1; k++ {
		for j := 0; j < g.Nj; j++ {
			base := g.Index(0, j, k)
			var sum int32
			for i := 0; i < g.Ni; i++ {
				sum += crossings[base+i]
				if sum != 0 {
					inside[base+i] = true
				}
			}
		}
	}
}
