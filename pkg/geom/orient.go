package geom

// Orientation returns the sign of the twice-signed area of the 2D triangle
// ((0,0), (x1,y1), (x2,y2)), computed as y1*x2 - x1*y2, together with the raw
// area value. Exact zero areas are resolved by a lexicographic tie-break on
// the operands so the sign is never 0 for distinct points; 0 is returned only
// when (x1,y1) and (x2,y2) coincide.
func Orientation(x1, y1, x2, y2 float64) (int, float64) {
	area := y1*x2 - x1*y2
	switch {
	case area > 0:
		return 1, area
	case area < 0:
		return -1, area
	case y2 > y1:
		return 1, area
	case y2 < y1:
		return -1, area
	case x1 > x2:
		return 1, area
	case x1 < x2:
		return -1, area
	default:
		return 0, area
	}
}

// PointInTriangle2 reports whether the 2D point (x0,y0) lies inside the
// triangle ((x1,y1), (x2,y2), (x3,y3)). On success it returns the barycentric
// coordinates of the point (summing to 1) and the orientation sign shared by
// the three sub-triangles, which is the winding sign of the whole triangle.
//
// The tie-break in Orientation makes the test exclusive across shared edges:
// a point exactly on an edge between two triangles is reported inside exactly
// one of them. A triangle whose projection has zero area contains nothing.
func PointInTriangle2(x0, y0, x1, y1, x2, y2, x3, y3 float64) (a, b, c float64, sign int, ok bool) {
	x1 -= x0
	x2 -= x0
	x3 -= x0
	y1 -= y0
	y2 -= y0
	y3 -= y0

	signA, a := Orientation(x2, y2, x3, y3)
	if signA == 0 {
		return 0, 0, 0, 0, false
	}
	signB, b := Orientation(x3, y3, x1, y1)
	if signB != signA {
		return 0, 0, 0, 0, false
	}
	signC, c := Orientation(x1, y1, x2, y2)
	if signC != signA {
		return 0, 0, 0, 0, false
	}

	sum := a + b + c
	if sum == 0 {
		return 0, 0, 0, 0, false
	}
	return a / sum, b / sum, c / sum, signA, true
}
