package tint

import (
	"image"
	"image/color"
	"testing"
)

// buildTGA assembles a TGA file from a raw pixel body.
func buildTGA(imgType byte, width, height, depth int, topDown bool, body []byte) []byte {
	buf := make([]byte, tgaHeaderSize, tgaHeaderSize+len(body))
	buf[2] = imgType
	buf[12] = byte(width)
	buf[13] = byte(width >> 8)
	buf[14] = byte(height)
	buf[15] = byte(height >> 8)
	buf[16] = byte(depth)
	if topDown {
		buf[17] = 0x20
	}
	return append(buf, body...)
}

func decodeRGBA(t *testing.T, data []byte) *image.RGBA {
	t.Helper()
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	rgba, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("expected *image.RGBA, got %T", img)
	}
	return rgba
}

func TestDecodeTGA_Truecolor24(t *testing.T) {
	// Bottom-up file order: the first stored row is the bottom image
	// row. Pixels are BGR.
	body := []byte{
		255, 0, 0, 255, 255, 255, // image row 1: blue, white
		0, 0, 255, 0, 255, 0, // image row 0: red, green
	}
	rgba := decodeRGBA(t, buildTGA(tgaTruecolor, 2, 2, 24, false, body))

	b := rgba.Bounds()
	if b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("expected a 2x2 image, got %dx%d", b.Dx(), b.Dy())
	}
	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.RGBA{255, 0, 0, 255}},
		{1, 0, color.RGBA{0, 255, 0, 255}},
		{0, 1, color.RGBA{0, 0, 255, 255}},
		{1, 1, color.RGBA{255, 255, 255, 255}},
	}
	for _, c := range checks {
		if got := rgba.RGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d): got %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestDecodeTGA_TopDown32(t *testing.T) {
	// Top-down files store rows in raster order. 32-bit pixels carry
	// alpha in the fourth byte.
	body := []byte{
		0, 0, 255, 128, // translucent red
		0, 255, 0, 255, // opaque green
	}
	rgba := decodeRGBA(t, buildTGA(tgaTruecolor, 2, 1, 32, true, body))

	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 128}) {
		t.Errorf("pixel (0,0): got %v, want translucent red", got)
	}
	if got := rgba.RGBAAt(1, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("pixel (1,0): got %v, want opaque green", got)
	}
}

func TestDecodeTGA_RLEPackets(t *testing.T) {
	// A run packet covering three pixels followed by a one-pixel
	// literal packet.
	body := []byte{
		0x82, 0, 0, 255, // run of 3: red
		0x00, 255, 0, 0, // literal of 1: blue
	}
	rgba := decodeRGBA(t, buildTGA(tgaRLETruecolor, 2, 2, 24, true, body))

	red := color.RGBA{255, 0, 0, 255}
	for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}} {
		if got := rgba.RGBAAt(p[0], p[1]); got != red {
			t.Errorf("pixel (%d,%d): got %v, want red", p[0], p[1], got)
		}
	}
	if got := rgba.RGBAAt(1, 1); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("pixel (1,1): got %v, want blue", got)
	}
}

func TestDecodeTGA_RLERunClampedToImage(t *testing.T) {
	// Some encoders let the final run spill past the last pixel. The
	// excess is dropped rather than rejected.
	body := []byte{0x84, 0, 255, 0} // run of 5 into a 2-pixel image
	rgba := decodeRGBA(t, buildTGA(tgaRLETruecolor, 2, 1, 24, true, body))

	green := color.RGBA{0, 255, 0, 255}
	if got := rgba.RGBAAt(0, 0); got != green {
		t.Errorf("pixel (0,0): got %v, want green", got)
	}
	if got := rgba.RGBAAt(1, 0); got != green {
		t.Errorf("pixel (1,0): got %v, want green", got)
	}
}

func TestDecodeTGA_SkipsIDField(t *testing.T) {
	body := append([]byte("id!"), 0, 0, 255)
	data := buildTGA(tgaTruecolor, 1, 1, 24, true, body)
	data[0] = 3

	rgba := decodeRGBA(t, data)
	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel (0,0): got %v, want red", got)
	}
}

func TestDecodeTGA_Errors(t *testing.T) {
	red := []byte{0, 0, 255}

	colorMapped := buildTGA(tgaTruecolor, 1, 1, 24, false, red)
	colorMapped[1] = 1
	idOverrun := buildTGA(tgaTruecolor, 1, 1, 24, false, red)
	idOverrun[0] = 40

	cases := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, tgaTruecolor}},
		{"color mapped", colorMapped},
		{"grayscale type", buildTGA(3, 1, 1, 24, false, red)},
		{"16-bit depth", buildTGA(tgaTruecolor, 1, 1, 16, false, red)},
		{"zero width", buildTGA(tgaTruecolor, 0, 1, 24, false, red)},
		{"id field past end", idOverrun},
		{"raw pixels truncated", buildTGA(tgaTruecolor, 2, 2, 24, false, red)},
		{"rle stream empty", buildTGA(tgaRLETruecolor, 2, 2, 24, false, nil)},
		{"rle run truncated", buildTGA(tgaRLETruecolor, 2, 2, 24, false, []byte{0x83, 0, 0})},
		{"rle literal truncated", buildTGA(tgaRLETruecolor, 2, 2, 24, false, []byte{0x01, 0, 0, 255})},
	}
	for _, c := range cases {
		if _, err := DecodeTGA(c.data); err == nil {
			t.Errorf("%s: expected a decode error, got none", c.name)
		}
	}
}
