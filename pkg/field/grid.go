// Package field provides the regular grid geometry and dense per-node arrays
// that level-set construction reads and writes, plus an adapter exposing a
// computed field as a deadsy/sdfx solid.
package field

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Grid describes a regular node lattice. Node (i, j, k) with 0 <= i < Ni,
// 0 <= j < Nj, 0 <= k < Nk sits at Origin + Spacing*(i, j, k).
type Grid struct {
	Origin  r3.Vec
	Spacing float64
	Ni      int
	Nj      int
	Nk      int
}

// Fit returns a grid covering bounds expanded by padding cells of spacing dx
// on every side. A padding below 1 is raised to 1 so that no mesh point lies
// on the grid boundary. Each axis gets ceil(width/dx) cells and one more node
// than cells, so both padded corners are on the lattice.
func Fit(bounds r3.Box, dx float64, padding int) Grid {
	if padding < 1 {
		padding = 1
	}
	pad := float64(padding) * dx
	min := r3.Vec{X: bounds.Min.X - pad, Y: bounds.Min.Y - pad, Z: bounds.Min.Z - pad}
	max := r3.Vec{X: bounds.Max.X + pad, Y: bounds.Max.Y + pad, Z: bounds.Max.Z + pad}
	return Grid{
		Origin:  min,
		Spacing: dx,
		Ni:      cells(max.X-min.X, dx) + 1,
		Nj:      cells(max.Y-min.Y, dx) + 1,
		Nk:      cells(max.Z-min.Z, dx) + 1,
	}
}

func cells(width, dx float64) int {
	if width <= 0 || dx <= 0 {
		return 0
	}
	return int(math.Ceil(width / dx))
}

// Pos returns the world position of node (i, j, k).
func (g Grid) Pos(i, j, k int) r3.Vec {
	return r3.Vec{
		X: g.Origin.X + g.Spacing*float64(i),
		Y: g.Origin.Y + g.Spacing*float64(j),
		Z: g.Origin.Z + g.Spacing*float64(k),
	}
}

// Index returns the linear index of node (i, j, k); i varies fastest,
// then j, then k.
func (g Grid) Index(i, j, k int) int {
	return i + g.Ni*(j+g.Nj*k)
}

// Len returns the number of nodes.
func (g Grid) Len() int {
	return g.Ni * g.Nj * g.Nk
}

// Empty reports whether the grid has no usable volume: a non-positive extent
// or a non-positive spacing.
func (g Grid) Empty() bool {
	return g.Ni < 1 || g.Nj < 1 || g.Nk < 1 || g.Spacing <= 0
}

// Bounds returns the axis-aligned box spanned by the corner nodes.
func (g Grid) Bounds() r3.Box {
	return r3.Box{
		Min: g.Origin,
		Max: g.Pos(g.Ni-1, g.Nj-1, g.Nk-1),
	}
}

// Diagonal returns the length of the grid box diagonal.
func (g Grid) Diagonal() float64 {
	b := g.Bounds()
	return r3.Norm(r3.Sub(b.Max, b.Min))
}
