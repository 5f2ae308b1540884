package field

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestGridIndexLayout(t *testing.T) {
	g := Grid{Spacing: 1, Ni: 3, Nj: 4, Nk: 5}

	if g.Len() != 60 {
		t.Fatalf("Len = %d, want 60", g.Len())
	}
	// i varies fastest.
	if g.Index(1, 0, 0) != 1 {
		t.Errorf("Index(1,0,0) = %d, want 1", g.Index(1, 0, 0))
	}
	if g.Index(0, 1, 0) != 3 {
		t.Errorf("Index(0,1,0) = %d, want 3", g.Index(0, 1, 0))
	}
	if g.Index(0, 0, 1) != 12 {
		t.Errorf("Index(0,0,1) = %d, want 12", g.Index(0, 0, 1))
	}

	// Bijection over the full lattice.
	seen := make([]bool, g.Len())
	for k := 0; k < g.Nk; k++ {
		for j := 0; j < g.Nj; j++ {
			for i := 0; i < g.Ni; i++ {
				n := g.Index(i, j, k)
				if n < 0 || n >= g.Len() || seen[n] {
					t.Fatalf("Index(%d,%d,%d) = %d invalid or repeated", i, j, k, n)
				}
				seen[n] = true
			}
		}
	}
}

func TestGridPos(t *testing.T) {
	g := Grid{Origin: r3.Vec{X: -1, Y: 2, Z: 0.5}, Spacing: 0.25, Ni: 5, Nj: 5, Nk: 5}
	p := g.Pos(2, 0, 4)
	want := r3.Vec{X: -0.5, Y: 2, Z: 1.5}
	if r3.Norm(r3.Sub(p, want)) > 1e-12 {
		t.Errorf("Pos(2,0,4) = %+v, want %+v", p, want)
	}
}

func TestFit(t *testing.T) {
	unit := r3.Box{Min: r3.Vec{}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}

	g := Fit(unit, 0.25, 2)
	if g.Ni != 9 || g.Nj != 9 || g.Nk != 9 {
		t.Errorf("extents = (%d,%d,%d), want (9,9,9)", g.Ni, g.Nj, g.Nk)
	}
	if g.Origin.X != -0.5 || g.Origin.Y != -0.5 || g.Origin.Z != -0.5 {
		t.Errorf("origin = %+v, want (-0.5,-0.5,-0.5)", g.Origin)
	}
	// Far corner node covers the padded box.
	far := g.Pos(g.Ni-1, g.Nj-1, g.Nk-1)
	if far.X < 1.5 || far.Y < 1.5 || far.Z < 1.5 {
		t.Errorf("far corner %+v does not cover padded box", far)
	}

	// Padding below 1 is raised to 1.
	g = Fit(unit, 0.25, 0)
	if g.Ni != 7 {
		t.Errorf("clamped padding: Ni = %d, want 7", g.Ni)
	}
	if g.Origin.X != -0.25 {
		t.Errorf("clamped padding: origin.X = %v, want -0.25", g.Origin.X)
	}

	if !(Grid{}).Empty() {
		t.Error("zero grid should be empty")
	}
	if g.Empty() {
		t.Error("fitted grid should not be empty")
	}
}

func TestScalar(t *testing.T) {
	g := Grid{Spacing: 1, Ni: 2, Nj: 2, Nk: 2}
	s := NewScalar(g, 7)
	for _, v := range s.Data {
		if v != 7 {
			t.Fatalf("init value = %v, want 7", v)
		}
	}
	s.Set(1, 0, 1, -3)
	if s.At(1, 0, 1) != -3 {
		t.Errorf("At(1,0,1) = %v, want -3", s.At(1, 0, 1))
	}
	min, max := s.MinMax()
	if min != -3 || max != 7 {
		t.Errorf("MinMax = (%v, %v), want (-3, 7)", min, max)
	}

	f := NewInt32(g, -1)
	if f.At(0, 1, 0) != -1 {
		t.Errorf("Int32 init = %d, want -1", f.At(0, 1, 0))
	}
	f.Set(0, 1, 0, 42)
	if f.At(0, 1, 0) != 42 {
		t.Errorf("Int32 At = %d, want 42", f.At(0, 1, 0))
	}
}

// TestAsSDF3 samples a linear field; trilinear interpolation must reproduce
// it exactly, inside the grid and (via the clamp offset) above it.
func TestAsSDF3(t *testing.T) {
	g := Grid{Origin: r3.Vec{X: -1, Y: -1, Z: -1}, Spacing: 0.5, Ni: 5, Nj: 5, Nk: 5}
	s := NewScalar(g, 0)
	for k := 0; k < g.Nk; k++ {
		for j := 0; j < g.Nj; j++ {
			for i := 0; i < g.Ni; i++ {
				s.Set(i, j, k, g.Pos(i, j, k).Z) // phi = z: the z=0 plane
			}
		}
	}
	f := AsSDF3(s)

	bb := f.BoundingBox()
	if bb.Min.X != -1 || bb.Max.X != 1 {
		t.Errorf("bounding box = %+v, want [-1,1]^3", bb)
	}

	probes := []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 0.3, Y: -0.2, Z: 0.7},
		{X: -0.9, Y: 0.9, Z: -0.45},
		{X: 0.25, Y: 0.25, Z: 0.25},
	}
	for _, p := range probes {
		if got := f.Evaluate(p); math.Abs(got-p.Z) > 1e-12 {
			t.Errorf("Evaluate(%+v) = %v, want %v", p, got, p.Z)
		}
	}

	// Directly above the box: clamped value plus vertical offset keeps the
	// plane field exact.
	p := v3.Vec{X: 0, Y: 0, Z: 2.5}
	if got := f.Evaluate(p); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("Evaluate above box = %v, want 2.5", got)
	}
}
