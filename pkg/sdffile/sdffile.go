// Package sdffile reads and writes sampled signed distance fields as
// gzip-compressed binary containers.
package sdffile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/gzip"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tobiaspfaff/SDFGen/pkg/field"
)

// FormatVersion is the container version this package reads and writes.
const FormatVersion = 1

// compressionLevel trades a little write speed for good ratios on smooth
// fields.
const compressionLevel = 7

var (
	// ErrVersion is returned when a container carries a version this
	// package does not understand.
	ErrVersion = errors.New("sdffile: unsupported format version")

	// ErrHeader is returned when a container header describes an
	// impossible grid.
	ErrHeader = errors.New("sdffile: invalid header")
)

// header mirrors the on-disk layout up to the sample data.
type header struct {
	Version    int32
	Ni, Nj, Nk int32
	Origin     [3]float32
	Spacing    float32
}

// Write encodes s into the container format. The decompressed stream is, in
// little-endian order: the format version as int32, the grid extents ni nj
// nk as int32, the grid origin as three float32, the cell spacing as
// float32, then ni*nj*nk float32 samples with i fastest, then j, then k.
func Write(w io.Writer, s *field.Scalar) error {
	if s == nil || s.Empty() {
		return fmt.Errorf("sdffile: empty field")
	}

	gz, err := gzip.NewWriterLevel(w, compressionLevel)
	if err != nil {
		return fmt.Errorf("sdffile: %w", err)
	}
	h := header{
		Version: FormatVersion,
		Ni:      int32(s.Ni),
		Nj:      int32(s.Nj),
		Nk:      int32(s.Nk),
		Origin:  [3]float32{float32(s.Origin.X), float32(s.Origin.Y), float32(s.Origin.Z)},
		Spacing: float32(s.Spacing),
	}
	if err := binary.Write(gz, binary.LittleEndian, &h); err != nil {
		gz.Close()
		return fmt.Errorf("sdffile: write header: %w", err)
	}
	samples := make([]float32, len(s.Data))
	for n, v := range s.Data {
		samples[n] = float32(v)
	}
	if err := binary.Write(gz, binary.LittleEndian, samples); err != nil {
		gz.Close()
		return fmt.Errorf("sdffile: write samples: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("sdffile: close: %w", err)
	}
	return nil
}

// WriteFile writes s to path in the container format.
func WriteFile(path string, s *field.Scalar) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a container written by Write.
func Read(r io.Reader) (*field.Scalar, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("sdffile: %w", err)
	}
	defer gz.Close()

	var h header
	if err := binary.Read(gz, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("sdffile: read header: %w", err)
	}
	if h.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	if h.Ni <= 0 || h.Nj <= 0 || h.Nk <= 0 || !(h.Spacing > 0) {
		return nil, fmt.Errorf("%w: %dx%dx%d nodes, spacing %g", ErrHeader, h.Ni, h.Nj, h.Nk, h.Spacing)
	}
	total := int64(h.Ni) * int64(h.Nj) * int64(h.Nk)
	if total > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d nodes", ErrHeader, total)
	}

	samples := make([]float32, total)
	if err := binary.Read(gz, binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("sdffile: read samples: %w", err)
	}

	g := field.Grid{
		Origin:  r3.Vec{X: float64(h.Origin[0]), Y: float64(h.Origin[1]), Z: float64(h.Origin[2])},
		Spacing: float64(h.Spacing),
		Ni:      int(h.Ni),
		Nj:      int(h.Nj),
		Nk:      int(h.Nk),
	}
	s := field.NewScalar(g, 0)
	for n, v := range samples {
		s.Data[n] = float64(v)
	}
	return s, nil
}

// ReadFile reads the container at path.
func ReadFile(path string) (*field.Scalar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
