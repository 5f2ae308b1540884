package field

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Compile-time interface check.
var _ sdf.SDF3 = (*fieldSDF)(nil)

// AsSDF3 exposes a scalar field as a deadsy/sdfx solid so a computed level
// set can feed sdfx rendering and CSG. Evaluation trilinearly interpolates
// the eight nodes around the query point. Points outside the grid are clamped
// to the boundary and the distance to the clamped point is added, which keeps
// the result an upper bound of the true distance out there.
func AsSDF3(s *Scalar) sdf.SDF3 {
	return &fieldSDF{s: s}
}

type fieldSDF struct {
	s *Scalar
}

func (f *fieldSDF) BoundingBox() sdf.Box3 {
	b := f.s.Bounds()
	return sdf.Box3{
		Min: v3.Vec{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		Max: v3.Vec{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

func (f *fieldSDF) Evaluate(p v3.Vec) float64 {
	g := f.s.Grid
	b := g.Bounds()
	q := r3.Vec{
		X: clamp(p.X, b.Min.X, b.Max.X),
		Y: clamp(p.Y, b.Min.Y, b.Max.Y),
		Z: clamp(p.Z, b.Min.Z, b.Max.Z),
	}
	exterior := math.Sqrt((p.X-q.X)*(p.X-q.X) + (p.Y-q.Y)*(p.Y-q.Y) + (p.Z-q.Z)*(p.Z-q.Z))

	i0, ti := cellCoord((q.X-g.Origin.X)/g.Spacing, g.Ni)
	j0, tj := cellCoord((q.Y-g.Origin.Y)/g.Spacing, g.Nj)
	k0, tk := cellCoord((q.Z-g.Origin.Z)/g.Spacing, g.Nk)
	i1 := next(i0, g.Ni)
	j1 := next(j0, g.Nj)
	k1 := next(k0, g.Nk)

	v00 := lerp(f.s.At(i0, j0, k0), f.s.At(i1, j0, k0), ti)
	v10 := lerp(f.s.At(i0, j1, k0), f.s.At(i1, j1, k0), ti)
	v01 := lerp(f.s.At(i0, j0, k1), f.s.At(i1, j0, k1), ti)
	v11 := lerp(f.s.At(i0, j1, k1), f.s.At(i1, j1, k1), ti)
	v0 := lerp(v00, v10, tj)
	v1 := lerp(v01, v11, tj)
	return lerp(v0, v1, tk) + exterior
}

// cellCoord maps a fractional node coordinate to the lower node of its cell
// and the interpolation weight within it.
func cellCoord(f float64, n int) (int, float64) {
	if n < 2 {
		return 0, 0
	}
	i := int(f)
	if i > n-2 {
		i = n - 2
	}
	if i < 0 {
		i = 0
	}
	return i, f - float64(i)
}

func next(i, n int) int {
	if i+1 < n {
		return i + 1
	}
	return i
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
