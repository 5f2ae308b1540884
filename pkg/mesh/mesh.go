// Package mesh provides an indexed triangle mesh, a Wavefront OBJ decoder,
// structural validation, a nearest-triangle index, and conversion from sdfx
// solids via marching cubes.
package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh. Each triangle is an ordered triple of
// vertex indices; the winding order defines the outward surface orientation
// used for inside/outside classification.
type Mesh struct {
	Vertices  []r3.Vec
	Triangles [][3]int32
}

// New builds a mesh from shared vertices and index triples.
func New(vertices []r3.Vec, triangles [][3]int32) *Mesh {
	return &Mesh{Vertices: vertices, Triangles: triangles}
}

// FromTriangles welds a triangle soup into an indexed mesh. Corners closer
// than 1/256 of the shortest edge share a vertex, which closes surfaces whose
// shared corners differ by rounding (marching cubes, STL-style exports)
// without merging anything a well-formed mesh keeps apart.
func FromTriangles(soup [][3]r3.Vec) *Mesh {
	m := &Mesh{Triangles: make([][3]int32, 0, len(soup))}
	tol := weldTolerance(soup)
	if tol == 0 {
		// No positive-length edge anywhere; weld on exact coordinates.
		lookup := make(map[r3.Vec]int32)
		for _, tri := range soup {
			var idx [3]int32
			for j, v := range tri {
				id, ok := lookup[v]
				if !ok {
					id = int32(len(m.Vertices))
					lookup[v] = id
					m.Vertices = append(m.Vertices, v)
				}
				idx[j] = id
			}
			m.Triangles = append(m.Triangles, idx)
		}
		return m
	}

	ri := 1 / tol
	lookup := make(map[[3]int64]int32)
	for _, tri := range soup {
		var idx [3]int32
		for j, v := range tri {
			// Round, don't truncate: corners within tolerance must not
			// split across a bucket boundary.
			key := [3]int64{
				int64(math.Round(v.X * ri)),
				int64(math.Round(v.Y * ri)),
				int64(math.Round(v.Z * ri)),
			}
			id, ok := lookup[key]
			if !ok {
				id = int32(len(m.Vertices))
				lookup[key] = id
				m.Vertices = append(m.Vertices, v)
			}
			idx[j] = id
		}
		m.Triangles = append(m.Triangles, idx)
	}
	return m
}

// weldTolerance infers the vertex sharing tolerance for a soup: 1/256 of the
// shortest positive edge, floored so quantized keys stay within int64.
func weldTolerance(soup [][3]r3.Vec) float64 {
	minEdge2 := math.Inf(1)
	maxAbs := 0.0
	for _, tri := range soup {
		for j, v := range tri {
			maxAbs = math.Max(maxAbs, math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z))))
			if d2 := r3.Norm2(r3.Sub(tri[(j+1)%3], v)); d2 > 0 && d2 < minEdge2 {
				minEdge2 = d2
			}
		}
	}
	if math.IsInf(minEdge2, 1) {
		return 0
	}
	tol := math.Sqrt(minEdge2) / 256
	if floor := maxAbs / 1e12; tol < floor {
		tol = floor
	}
	return tol
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty returns true if the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// Triangle returns the corner positions of triangle t.
func (m *Mesh) Triangle(t int) (a, b, c r3.Vec) {
	tri := m.Triangles[t]
	return m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
}

// Centroid returns the centroid of triangle t.
func (m *Mesh) Centroid(t int) r3.Vec {
	a, b, c := m.Triangle(t)
	return r3.Scale(1.0/3.0, r3.Add(a, r3.Add(b, c)))
}

// Bounds returns the axis-aligned bounding box of all vertices. The zero box
// is returned for a mesh with no vertices.
func (m *Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	min := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range m.Vertices {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}
	return r3.Box{Min: min, Max: max}
}
