package mesh

import (
	"math"

	"github.com/tobiaspfaff/SDFGen/pkg/geom"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// candidates is how many nearest centroids Distance refines with the exact
// point-triangle primitive.
const candidates = 12

// NearestIndex answers nearest-triangle queries through a k-d tree over
// triangle centroids. Nearest is a pure centroid query; Distance refines the
// closest candidate centroids with exact point-triangle distance, which is
// exact whenever the true nearest triangle is among the candidates. Very
// elongated triangles can in principle evade the candidate set, so treat the
// result as a tight estimate rather than a guarantee.
type NearestIndex struct {
	m    *Mesh
	tree *kdtree.Tree
}

// NewNearestIndex builds the index. Construction is O(n log n) in the
// triangle count.
func NewNearestIndex(m *Mesh) *NearestIndex {
	x := &NearestIndex{m: m}
	if m.TriangleCount() == 0 {
		return x
	}
	set := make(centroidSet, m.TriangleCount())
	for t := range m.Triangles {
		set[t] = centroid{p: m.Centroid(t), tri: int32(t)}
	}
	x.tree = kdtree.New(&set, true)
	return x
}

// Nearest returns the triangle whose centroid is closest to p, or -1 for an
// empty mesh.
func (x *NearestIndex) Nearest(p r3.Vec) int {
	if x.tree == nil {
		return -1
	}
	got, _ := x.tree.Nearest(&centroid{p: p, tri: -1})
	return int(got.(*centroid).tri)
}

// Distance returns the distance from p to the triangle set, refined from the
// nearest candidate centroids. It is +Inf for an empty mesh.
func (x *NearestIndex) Distance(p r3.Vec) float64 {
	if x.tree == nil {
		return math.Inf(1)
	}
	keep := kdtree.NewNKeeper(candidates)
	x.tree.NearestSet(keep, &centroid{p: p, tri: -1})

	best := math.Inf(1)
	for _, cd := range keep.Heap {
		if cd.Comparable == nil {
			continue
		}
		t := int(cd.Comparable.(*centroid).tri)
		a, b, c := x.m.Triangle(t)
		if d, _ := geom.PointTriangleDistance(p, a, b, c); d < best {
			best = d
		}
	}
	return best
}

// ---------------------------------------------------------------------------
// kdtree plumbing
// ---------------------------------------------------------------------------

// centroid is one triangle centroid in the k-d tree.
type centroid struct {
	p   r3.Vec
	tri int32
}

var _ kdtree.Comparable = (*centroid)(nil)

func (c *centroid) Compare(other kdtree.Comparable, d kdtree.Dim) float64 {
	q := other.(*centroid)
	switch d {
	case 0:
		return c.p.X - q.p.X
	case 1:
		return c.p.Y - q.p.Y
	case 2:
		return c.p.Z - q.p.Z
	}
	panic("unreachable")
}

func (c *centroid) Dims() int { return 3 }

func (c *centroid) Distance(other kdtree.Comparable) float64 {
	q := other.(*centroid)
	return r3.Norm2(r3.Sub(c.p, q.p))
}

// centroidSet adapts a centroid slice to kdtree.Interface.
type centroidSet []centroid

func (s *centroidSet) Index(i int) kdtree.Comparable { return &(*s)[i] }

func (s *centroidSet) Len() int { return len(*s) }

func (s *centroidSet) Pivot(d kdtree.Dim) int {
	p := centroidPlane{dim: d, set: *s}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (s *centroidSet) Slice(start, end int) kdtree.Interface {
	sub := (*s)[start:end]
	return &sub
}

// Bounds implements kdtree.Bounder over the current centroids.
func (s *centroidSet) Bounds() *kdtree.Bounding {
	min := centroid{p: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}}
	max := centroid{p: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}}
	for _, c := range *s {
		min.p.X = math.Min(min.p.X, c.p.X)
		min.p.Y = math.Min(min.p.Y, c.p.Y)
		min.p.Z = math.Min(min.p.Z, c.p.Z)
		max.p.X = math.Max(max.p.X, c.p.X)
		max.p.Y = math.Max(max.p.Y, c.p.Y)
		max.p.Z = math.Max(max.p.Z, c.p.Z)
	}
	return &kdtree.Bounding{Min: &min, Max: &max}
}

// centroidPlane sorts a centroid set along one dimension for pivoting.
type centroidPlane struct {
	dim kdtree.Dim
	set []centroid
}

func (p centroidPlane) Less(i, j int) bool {
	return p.set[i].Compare(&p.set[j], p.dim) < 0
}

func (p centroidPlane) Swap(i, j int) {
	p.set[i], p.set[j] = p.set[j], p.set[i]
}

func (p centroidPlane) Len() int { return len(p.set) }

func (p centroidPlane) Slice(start, end int) kdtree.SortSlicer {
	p.set = p.set[start:end]
	return p
}
