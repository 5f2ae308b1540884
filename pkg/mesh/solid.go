package mesh

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// FromSolid meshes an sdfx solid with uniform marching cubes at the given
// cell resolution and welds the triangle soup into an indexed mesh. Welding
// closes the seams between neighboring cubes, so the result of a well-formed
// solid is a closed, consistently oriented surface.
func FromSolid(s sdf.SDF3, cells int) *Mesh {
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	soup := make([][3]r3.Vec, len(triangles))
	for i, tri := range triangles {
		for j := 0; j < 3; j++ {
			soup[i][j] = r3.Vec{X: tri[j].X, Y: tri[j].Y, Z: tri[j].Z}
		}
	}
	return FromTriangles(soup)
}
