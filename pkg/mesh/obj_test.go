package mesh

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleOBJ = `# a single quad and a triangle on top
mtllib ignored.mtl
o sample
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0.5 0.5 1
vn 0 0 1
vt 0.5 0.5
g base
f 1/1/1 2/2/1 3/3/1 4/4/1
g roof
f 1//1 2//1 5//1
`

func TestDecodeOBJ(t *testing.T) {
	m, stats, err := DecodeOBJ(strings.NewReader(sampleOBJ))
	require.NoError(t, err)

	require.Equal(t, 5, m.VertexCount())
	require.Equal(t, 3, m.TriangleCount(), "quad splits into two triangles")

	// Quad split along the (0, 2) diagonal.
	require.Equal(t, [3]int32{0, 1, 2}, m.Triangles[0])
	require.Equal(t, [3]int32{2, 3, 0}, m.Triangles[1])
	require.Equal(t, [3]int32{0, 1, 4}, m.Triangles[2])

	require.Equal(t, 1.0, m.Vertices[2].X)
	require.Equal(t, 1.0, m.Vertices[4].Z)

	// comment, mtllib, o, vn, vt, two g lines.
	require.Equal(t, 7, stats.IgnoredLines)
}

func TestDecodeOBJNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	m, _, err := DecodeOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, [3]int32{0, 1, 2}, m.Triangles[0])
}

func TestDecodeOBJErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		line int
	}{
		{"five corners", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3 1 2\n", 4},
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n", 3},
		{"dangling index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n", 4},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", 4},
		{"bad coordinate", "v 0 zero 0\n", 1},
		{"bad face token", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 x\n", 4},
		{"short vertex", "v 1 2\n", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _, err := DecodeOBJ(strings.NewReader(tc.src))
			require.Error(t, err)
			require.Nil(t, m, "no partial mesh on error")

			var pe ParseError
			require.True(t, errors.As(err, &pe), "error should be a ParseError")
			require.Equal(t, tc.line, pe.Line)
		})
	}
}

func TestReadOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.obj")
	require.NoError(t, os.WriteFile(path, []byte(sampleOBJ), 0o644))

	m, stats, err := ReadOBJFile(path)
	require.NoError(t, err)
	require.Equal(t, 5, m.VertexCount())
	require.Equal(t, 3, m.TriangleCount())
	require.Equal(t, 7, stats.IgnoredLines)

	_, _, err = ReadOBJFile(filepath.Join(t.TempDir(), "missing.obj"))
	require.Error(t, err)
}
