package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// ---------------------------------------------------------------------------
// Structural validation (errors) and accuracy advisories (warnings)
// ---------------------------------------------------------------------------

// Severity indicates whether a validation finding blocks field construction
// or is merely advisory.
type Severity int

const (
	SeverityError   Severity = iota // blocks field construction
	SeverityWarning                 // accuracy advisory
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Issue describes a single validation finding. Tri is the offending triangle
// index, or -1 for mesh-level findings.
type Issue struct {
	Severity Severity
	Tri      int
	Message  string
}

func (i Issue) String() string {
	if i.Tri < 0 {
		return fmt.Sprintf("[%s] %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("[%s] triangle %d: %s", i.Severity, i.Tri, i.Message)
}

// Validate checks mesh structure. Out-of-range vertex references are errors:
// a field built over them would index out of bounds. Everything else is a
// warning describing why the sign of a resulting field may be unreliable:
// zero-area triangles, boundary edges (the mesh is not closed), non-manifold
// edges, and inconsistently wound neighbors. The function is read-only.
func Validate(m *Mesh) []Issue {
	issues := validateIndices(m)
	if HasErrors(issues) {
		// Edge and area checks would index out of range.
		return issues
	}
	issues = append(issues, validateAreas(m)...)
	issues = append(issues, validateEdges(m)...)
	return issues
}

// HasErrors reports whether any issue is of error severity.
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}

// validateIndices checks that every triangle references existing vertices.
func validateIndices(m *Mesh) []Issue {
	var issues []Issue
	n := int32(len(m.Vertices))
	for t, tri := range m.Triangles {
		for _, v := range tri {
			if v < 0 || v >= n {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Tri:      t,
					Message:  fmt.Sprintf("vertex index %d out of range [0, %d)", v, n),
				})
			}
		}
	}
	return issues
}

// validateAreas flags zero-area triangles, including those with a repeated
// vertex index. They contribute correct distances but no sign crossings.
func validateAreas(m *Mesh) []Issue {
	var issues []Issue
	for t := range m.Triangles {
		a, b, c := m.Triangle(t)
		if r3.Norm2(r3.Cross(r3.Sub(b, a), r3.Sub(c, a))) == 0 {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Tri:      t,
				Message:  "zero-area triangle",
			})
		}
	}
	return issues
}

// edgeUse tracks how often an undirected edge occurs and the winding balance
// of its directed uses. A closed, consistently oriented surface has every
// edge used exactly twice, once in each direction.
type edgeUse struct {
	count   int
	balance int // +1 per lo->hi use, -1 per hi->lo use
}

func validateEdges(m *Mesh) []Issue {
	uses := make(map[[2]int32]edgeUse)
	for _, tri := range m.Triangles {
		for e := 0; e < 3; e++ {
			a, b := tri[e], tri[(e+1)%3]
			if a == b {
				continue // collapsed edge, already reported as zero-area
			}
			key := [2]int32{a, b}
			dir := 1
			if a > b {
				key[0], key[1] = b, a
				dir = -1
			}
			u := uses[key]
			u.count++
			u.balance += dir
			uses[key] = u
		}
	}

	var boundary, nonManifold, miswound int
	for _, u := range uses {
		switch {
		case u.count == 1:
			boundary++
		case u.count > 2:
			nonManifold++
		case u.balance != 0:
			miswound++
		}
	}

	var issues []Issue
	if boundary > 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Tri:      -1,
			Message:  fmt.Sprintf("%d boundary edges: mesh is not closed, inside/outside is best-effort", boundary),
		})
	}
	if nonManifold > 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Tri:      -1,
			Message:  fmt.Sprintf("%d non-manifold edges", nonManifold),
		})
	}
	if miswound > 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Tri:      -1,
			Message:  fmt.Sprintf("%d edges with inconsistent winding", miswound),
		})
	}
	return issues
}
