package grid

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// buildHeader assembles a grid file header byte by byte.
func buildHeader(magic string, major, minor uint8, w, h uint32) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(magic)
	buf.WriteByte(major)
	buf.WriteByte(minor)
	binary.Write(buf, binary.LittleEndian, w)
	binary.Write(buf, binary.LittleEndian, h)
	return buf.Bytes()
}

func TestParseInvalidMagic(t *testing.T) {
	data := buildHeader("NOPE", VersionMajor, VersionMinor, 2, 2)
	_, err := Parse(bytes.NewReader(data))
	if !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestParseUnsupportedVersion(t *testing.T) {
	data := buildHeader("PXTG", 9, 0, 2, 2)
	_, err := Parse(bytes.NewReader(data))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestParseInvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h uint32
	}{
		{"zero width", 0, 4},
		{"one point", 1, 1},
		{"huge", MaxDimension + 1, 4},
	}
	for _, tt := range tests {
		data := buildHeader("PXTG", VersionMajor, VersionMinor, tt.w, tt.h)
		_, err := Parse(bytes.NewReader(data))
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("%s: expected ErrInvalidDimensions, got %v", tt.name, err)
		}
	}
}

func TestParseTruncated(t *testing.T) {
	// Valid header, no payload
	data := buildHeader("PXTG", VersionMajor, VersionMinor, 4, 4)
	_, err := Parse(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error for truncated file")
	}
	if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected EOF-ish error, got %v", err)
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	g := New(3, 4)
	g.SetHeight(1, 2, -4.25)
	g.SetHeight(2, 0, 11.5)
	g.SetGround(0, 0, Color{1, 0, 0, 0}, Color{0, 0, 1, 0})
	g.SetWall(2, 3, Color{0, 1, 0, 0}, Color{0, 0, 0, 1})
	g.SetMask(1, 1, Color{1, 1, 0, 1})

	buf := &bytes.Buffer{}
	if err := g.Write(buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	parsed, err := Parse(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if parsed.PointsW != 3 || parsed.PointsH != 4 {
		t.Fatalf("dims: got %dx%d, want 3x4", parsed.PointsW, parsed.PointsH)
	}
	if h := parsed.HeightAt(1, 2); h != -4.25 {
		t.Errorf("height (1,2) = %v, want -4.25", h)
	}
	if h := parsed.HeightAt(2, 0); h != 11.5 {
		t.Errorf("height (2,0) = %v, want 11.5", h)
	}

	a, b := parsed.GroundAt(0, 0)
	if a != (Color{1, 0, 0, 0}) || b != (Color{0, 0, 1, 0}) {
		t.Errorf("ground (0,0) = %v %v", a, b)
	}
	wa, wb := parsed.WallAt(2, 3)
	if wa != (Color{0, 1, 0, 0}) || wb != (Color{0, 0, 0, 1}) {
		t.Errorf("wall (2,3) = %v %v", wa, wb)
	}

	// Quantization must keep a painted force flag at exactly 1.0
	if m := parsed.MaskAt(1, 1); m[1] < 0.9999 {
		t.Errorf("force mask green degraded to %v", m[1])
	}
}

func TestQuantizeClamps(t *testing.T) {
	if quantize(-0.5) != 0 {
		t.Error("negative channel should quantize to 0")
	}
	if quantize(2) != 255 {
		t.Error("oversized channel should quantize to 255")
	}
	if quantize(1) != 255 {
		t.Error("1.0 should quantize to 255")
	}
}
