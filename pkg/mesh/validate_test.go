package mesh

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func issuesContain(issues []Issue, substr string) bool {
	for _, is := range issues {
		if strings.Contains(is.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidateClosedCube(t *testing.T) {
	issues := Validate(cubeMesh())
	if len(issues) != 0 {
		for _, is := range issues {
			t.Errorf("unexpected issue: %s", is)
		}
	}
}

func TestValidateOutOfRangeIndex(t *testing.T) {
	m := cubeMesh()
	m.Triangles[3][1] = 99
	issues := Validate(m)
	if !HasErrors(issues) {
		t.Fatal("out-of-range index not reported as error")
	}
	if !issuesContain(issues, "out of range") {
		t.Errorf("issues = %v", issues)
	}
}

func TestValidateOpenMesh(t *testing.T) {
	m := cubeMesh()
	m.Triangles = m.Triangles[:10] // drop the +x face

	issues := Validate(m)
	if HasErrors(issues) {
		t.Fatalf("open mesh must not be an error: %v", issues)
	}
	if !issuesContain(issues, "boundary edges") {
		t.Errorf("missing boundary-edge warning: %v", issues)
	}
}

func TestValidateNonManifold(t *testing.T) {
	m := cubeMesh()
	m.Triangles = append(m.Triangles, m.Triangles[0]) // duplicate a face

	issues := Validate(m)
	if HasErrors(issues) {
		t.Fatalf("non-manifold mesh must not be an error: %v", issues)
	}
	if !issuesContain(issues, "non-manifold") {
		t.Errorf("missing non-manifold warning: %v", issues)
	}
}

func TestValidateInconsistentWinding(t *testing.T) {
	m := cubeMesh()
	tri := &m.Triangles[6]
	tri[0], tri[1] = tri[1], tri[0] // flip one back-face triangle

	issues := Validate(m)
	if HasErrors(issues) {
		t.Fatalf("flipped winding must not be an error: %v", issues)
	}
	if !issuesContain(issues, "inconsistent winding") {
		t.Errorf("missing winding warning: %v", issues)
	}
}

func TestValidateZeroArea(t *testing.T) {
	m := New(
		[]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}},
		[][3]int32{{0, 0, 1}},
	)
	issues := Validate(m)
	if HasErrors(issues) {
		t.Fatalf("zero-area triangle must not be an error: %v", issues)
	}
	if !issuesContain(issues, "zero-area") {
		t.Errorf("missing zero-area warning: %v", issues)
	}

	// Collinear but distinct vertices.
	m = New(
		[]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}},
		[][3]int32{{0, 1, 2}},
	)
	if !issuesContain(Validate(m), "zero-area") {
		t.Error("collinear triangle not flagged")
	}
}
