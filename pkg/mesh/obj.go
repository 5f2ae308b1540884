package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// DecodeStats reports what the decoder saw beyond the geometry it kept.
type DecodeStats struct {
	IgnoredLines int // records other than v/f: normals, texcoords, groups, comments
}

// ParseError describes a malformed OBJ record.
type ParseError struct {
	Line int // 1-based line number
	Msg  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("obj line %d: %s", e.Line, e.Msg)
}

// DecodeOBJ reads a Wavefront OBJ stream into a mesh. Only v and f records
// contribute geometry; everything else is skipped and tallied. Face corners
// may use the v/vt/vn slash syntax, of which only the vertex index is kept.
// Indices are 1-based; negative indices count back from the most recent
// vertex. Quads are split into two triangles along the first diagonal. A face
// with fewer than 3 or more than 4 corners, or one referencing a vertex that
// does not exist, is a hard error: no partial mesh is returned.
func DecodeOBJ(r io.Reader) (*Mesh, *DecodeStats, error) {
	m := &Mesh{}
	stats := &DecodeStats{}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			stats.IgnoredLines++
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields, line)
			if err != nil {
				return nil, nil, err
			}
			m.Vertices = append(m.Vertices, v)
		case "f":
			if err := appendFace(m, fields, line); err != nil {
				return nil, nil, err
			}
		default:
			stats.IgnoredLines++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("obj: %w", err)
	}
	return m, stats, nil
}

// ReadOBJFile decodes the OBJ file at path.
func ReadOBJFile(path string) (*Mesh, *DecodeStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("obj: %w", err)
	}
	defer f.Close()
	return DecodeOBJ(f)
}

func parseVertex(fields []string, line int) (r3.Vec, error) {
	if len(fields) < 4 {
		return r3.Vec{}, ParseError{Line: line, Msg: "vertex needs 3 coordinates"}
	}
	var coords [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return r3.Vec{}, ParseError{Line: line, Msg: fmt.Sprintf("bad vertex coordinate %q", fields[i+1])}
		}
		coords[i] = v
	}
	return r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func appendFace(m *Mesh, fields []string, line int) error {
	corners := fields[1:]
	if len(corners) < 3 || len(corners) > 4 {
		return ParseError{Line: line, Msg: fmt.Sprintf("face has %d corners, only triangles and quads are supported", len(corners))}
	}
	var idx [4]int32
	for i, tok := range corners {
		n, err := resolveIndex(tok, len(m.Vertices))
		if err != nil {
			return ParseError{Line: line, Msg: err.Error()}
		}
		idx[i] = n
	}
	m.Triangles = append(m.Triangles, [3]int32{idx[0], idx[1], idx[2]})
	if len(corners) == 4 {
		// Quad: split along the (0, 2) diagonal.
		m.Triangles = append(m.Triangles, [3]int32{idx[2], idx[3], idx[0]})
	}
	return nil
}

// resolveIndex converts a face corner token into a 0-based vertex index.
func resolveIndex(tok string, nverts int) (int32, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", tok)
	}
	switch {
	case n > 0:
		n--
	case n < 0:
		n += nverts
	default:
		return 0, fmt.Errorf("face index 0 is not valid")
	}
	if n < 0 || n >= nverts {
		return 0, fmt.Errorf("face references vertex %s of %d", tok, nverts)
	}
	return int32(n), nil
}
