package grid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// File format: "PXTG" magic, one version byte pair, point dimensions,
// then the flat arrays in declaration order (heights as float32,
// colors quantized to RGBA8). Little-endian throughout.
const (
	fileMagic = "PXTG"

	// VersionMajor is bumped on layout breaks, VersionMinor on
	// backward-compatible additions.
	VersionMajor = 1
	VersionMinor = 0

	// MaxDimension bounds accepted point dimensions so a corrupt
	// header cannot trigger a huge allocation.
	MaxDimension = 16384
)

var (
	// ErrInvalidMagic indicates the file is not a grid file.
	ErrInvalidMagic = errors.New("grid: invalid magic")
	// ErrUnsupportedVersion indicates a version this codec cannot read.
	ErrUnsupportedVersion = errors.New("grid: unsupported version")
	// ErrInvalidDimensions indicates a header with unusable dimensions.
	ErrInvalidDimensions = errors.New("grid: invalid dimensions")
)

// Parse reads a grid file from r.
func Parse(r io.Reader) (*Grid, error) {
	var magic [4]byte
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic[:]) != fileMagic {
		return nil, ErrInvalidMagic
	}

	var version [2]uint8
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version[0] != VersionMajor {
		return nil, fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, version[0], version[1])
	}

	var dims [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("reading dimensions: %w", err)
	}
	w, h := int(dims[0]), int(dims[1])
	if w < 2 || h < 2 || w > MaxDimension || h > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}

	g := New(w, h)

	if err := binary.Read(r, binary.LittleEndian, g.Heights); err != nil {
		return nil, fmt.Errorf("reading heights: %w", err)
	}
	for _, arr := range []struct {
		name string
		dst  []Color
	}{
		{"ground a", g.GroundA},
		{"ground b", g.GroundB},
		{"wall a", g.WallA},
		{"wall b", g.WallB},
		{"mask", g.Mask},
	} {
		if err := readColors(r, arr.dst); err != nil {
			return nil, fmt.Errorf("reading %s colors: %w", arr.name, err)
		}
	}

	return g, nil
}

// Write writes the grid to w in the current file version.
func (g *Grid) Write(w io.Writer) error {
	if _, err := w.Write([]byte(fileMagic)); err != nil {
		return fmt.Errorf("writing magic: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, [2]uint8{VersionMajor, VersionMinor}); err != nil {
		return fmt.Errorf("writing version: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, [2]uint32{uint32(g.PointsW), uint32(g.PointsH)}); err != nil {
		return fmt.Errorf("writing dimensions: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, g.Heights); err != nil {
		return fmt.Errorf("writing heights: %w", err)
	}
	for _, arr := range []struct {
		name string
		src  []Color
	}{
		{"ground a", g.GroundA},
		{"ground b", g.GroundB},
		{"wall a", g.WallA},
		{"wall b", g.WallB},
		{"mask", g.Mask},
	} {
		if err := writeColors(w, arr.src); err != nil {
			return fmt.Errorf("writing %s colors: %w", arr.name, err)
		}
	}
	return nil
}

func readColors(r io.Reader, dst []Color) error {
	buf := make([]uint8, len(dst)*4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	for i := range dst {
		for c := 0; c < 4; c++ {
			dst[i][c] = float32(buf[i*4+c]) / 255
		}
	}
	return nil
}

func writeColors(w io.Writer, src []Color) error {
	buf := make([]uint8, len(src)*4)
	for i, col := range src {
		for c := 0; c < 4; c++ {
			buf[i*4+c] = quantize(col[c])
		}
	}
	_, err := w.Write(buf)
	return err
}

func quantize(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}

// Load reads a grid file from disk.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening grid file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Save writes the grid to disk.
func (g *Grid) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating grid file: %w", err)
	}
	if err := g.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
