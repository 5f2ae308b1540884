// Package geom provides the exact geometric primitives used during level-set
// construction: closed-form point/triangle and point/segment distance, and
// robust 2D orientation predicates with consistent tie-breaking.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// PointTriangleDistance returns the minimum Euclidean distance from p to the
// triangle (a, b, c) and the closest point attaining it. The closest point is
// found by walking the seven Voronoi regions of the triangle (three vertex
// regions, three edge regions, face interior), so the result is exact with no
// iteration. A triangle with zero area falls back to the nearest of its edges.
func PointTriangleDistance(p, a, b, c r3.Vec) (float64, r3.Vec) {
	ab := r3.Sub(b, a)
	ac := r3.Sub(c, a)
	ap := r3.Sub(p, a)

	if r3.Norm2(r3.Cross(ab, ac)) == 0 {
		return degenerateTriangleDistance(p, a, b, c)
	}

	// Vertex region a.
	d1 := r3.Dot(ab, ap)
	d2 := r3.Dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return r3.Norm(ap), a
	}

	// Vertex region b.
	bp := r3.Sub(p, b)
	d3 := r3.Dot(ab, bp)
	d4 := r3.Dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return r3.Norm(bp), b
	}

	// Edge region ab.
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		q := r3.Add(a, r3.Scale(v, ab))
		return r3.Norm(r3.Sub(p, q)), q
	}

	// Vertex region c.
	cp := r3.Sub(p, c)
	d5 := r3.Dot(ab, cp)
	d6 := r3.Dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return r3.Norm(cp), c
	}

	// Edge region ac.
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		q := r3.Add(a, r3.Scale(w, ac))
		return r3.Norm(r3.Sub(p, q)), q
	}

	// Edge region bc.
	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		q := r3.Add(b, r3.Scale(w, r3.Sub(c, b)))
		return r3.Norm(r3.Sub(p, q)), q
	}

	// Face interior.
	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	q := r3.Add(a, r3.Add(r3.Scale(v, ab), r3.Scale(w, ac)))
	return r3.Norm(r3.Sub(p, q)), q
}

// PointSegmentDistance returns the minimum Euclidean distance from p to the
// segment (a, b) and the closest point on it. A zero-length segment is
// treated as the point a.
func PointSegmentDistance(p, a, b r3.Vec) (float64, r3.Vec) {
	ab := r3.Sub(b, a)
	denom := r3.Norm2(ab)
	if denom == 0 {
		return r3.Norm(r3.Sub(p, a)), a
	}
	t := r3.Dot(r3.Sub(p, a), ab) / denom
	t = math.Max(0, math.Min(1, t))
	q := r3.Add(a, r3.Scale(t, ab))
	return r3.Norm(r3.Sub(p, q)), q
}

// degenerateTriangleDistance handles zero-area triangles (collinear or
// repeated vertices) as the nearest of the three edges.
func degenerateTriangleDistance(p, a, b, c r3.Vec) (float64, r3.Vec) {
	best, q := PointSegmentDistance(p, a, b)
	if d, s := PointSegmentDistance(p, b, c); d < best {
		best, q = d, s
	}
	if d, s := PointSegmentDistance(p, c, a); d < best {
		best, q = d, s
	}
	return best, q
}
