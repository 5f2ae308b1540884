package mesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// cubeMesh returns a closed, consistently outward-wound unit cube centered at
// the origin.
func cubeMesh() *Mesh {
	h := 0.5
	verts := []r3.Vec{
		{X: -h, Y: -h, Z: -h},
		{X: h, Y: -h, Z: -h},
		{X: h, Y: h, Z: -h},
		{X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h},
		{X: h, Y: -h, Z: h},
		{X: h, Y: h, Z: h},
		{X: -h, Y: h, Z: h},
	}
	tris := [][3]int32{
		{0, 3, 2}, {2, 1, 0}, // bottom, normal -z
		{4, 5, 6}, {6, 7, 4}, // top, normal +z
		{0, 1, 5}, {5, 4, 0}, // front, normal -y
		{2, 3, 7}, {7, 6, 2}, // back, normal +y
		{0, 4, 7}, {7, 3, 0}, // left, normal -x
		{1, 2, 6}, {6, 5, 1}, // right, normal +x
	}
	return New(verts, tris)
}

func TestMeshAccessors(t *testing.T) {
	m := cubeMesh()

	if m.VertexCount() != 8 || m.TriangleCount() != 12 || m.IsEmpty() {
		t.Fatalf("cube: %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	}

	a, b, c := m.Triangle(0)
	if a.Z != -0.5 || b.Z != -0.5 || c.Z != -0.5 {
		t.Errorf("bottom triangle corners not at z=-0.5: %+v %+v %+v", a, b, c)
	}

	ctr := m.Centroid(2) // top face triangle (4,5,6)
	if math.Abs(ctr.Z-0.5) > 1e-12 {
		t.Errorf("top triangle centroid z = %v, want 0.5", ctr.Z)
	}

	bb := m.Bounds()
	if bb.Min.X != -0.5 || bb.Max.Z != 0.5 {
		t.Errorf("bounds = %+v, want [-0.5, 0.5]^3", bb)
	}

	if !(&Mesh{}).IsEmpty() {
		t.Error("zero mesh should be empty")
	}
	zb := (&Mesh{}).Bounds()
	if zb.Min != (r3.Vec{}) || zb.Max != (r3.Vec{}) {
		t.Errorf("empty mesh bounds = %+v, want zero box", zb)
	}
}

func TestFromTrianglesWelds(t *testing.T) {
	a := r3.Vec{X: 0, Y: 0, Z: 0}
	b := r3.Vec{X: 1, Y: 0, Z: 0}
	c := r3.Vec{X: 0, Y: 1, Z: 0}
	d := r3.Vec{X: 1, Y: 1, Z: 0}

	m := FromTriangles([][3]r3.Vec{{a, b, c}, {b, d, c}})
	if m.VertexCount() != 4 {
		t.Fatalf("welded vertex count = %d, want 4", m.VertexCount())
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("triangle count = %d, want 2", m.TriangleCount())
	}
	// The shared edge b-c must reference the same vertex ids in both.
	if m.Triangles[0][1] != m.Triangles[1][0] {
		t.Errorf("b not shared: %v vs %v", m.Triangles[0], m.Triangles[1])
	}
	if m.Triangles[0][2] != m.Triangles[1][2] {
		t.Errorf("c not shared: %v vs %v", m.Triangles[0], m.Triangles[1])
	}

	// Corners differing by far less than the weld tolerance still share.
	bJitter := r3.Vec{X: 1 + 1e-13, Y: 0, Z: 0}
	m = FromTriangles([][3]r3.Vec{{a, b, c}, {bJitter, d, c}})
	if m.VertexCount() != 4 {
		t.Errorf("jittered corner not welded: %d vertices", m.VertexCount())
	}

	// Distinct corners a full edge apart never merge.
	m = FromTriangles([][3]r3.Vec{{a, b, c}})
	if m.VertexCount() != 3 {
		t.Errorf("distinct corners merged: %d vertices", m.VertexCount())
	}
}

// TestFromTrianglesWeldBoundary welds a shared corner whose coordinates sit
// just either side of a quantization bucket boundary. Truncating the weld
// key split such pairs into separate vertices even though they are a tiny
// fraction of the tolerance apart.
func TestFromTrianglesWeldBoundary(t *testing.T) {
	// Unit legs put the weld tolerance a hair above 1/256. The shared corner
	// appears once at z = 2/256, fractionally below the bucket boundary at
	// twice the tolerance, and once 1e-7 above it.
	za := r3.Vec{Z: 0.0078125}
	zb := r3.Vec{Z: 0.0078126}
	px := r3.Vec{X: 1}
	py := r3.Vec{Y: 1}
	nx := r3.Vec{X: -1}

	m := FromTriangles([][3]r3.Vec{{za, px, py}, {zb, py, nx}})
	if m.VertexCount() != 4 {
		t.Fatalf("vertex count = %d, want 4", m.VertexCount())
	}
	if m.Triangles[0][0] != m.Triangles[1][0] {
		t.Errorf("near-coincident corner not shared: %v vs %v", m.Triangles[0], m.Triangles[1])
	}
}
