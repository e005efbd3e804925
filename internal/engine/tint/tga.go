package tint

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image types this decoder accepts.
const (
	tgaTruecolor    = 2
	tgaRLETruecolor = 10
)

const tgaHeaderSize = 18

type tgaHeader struct {
	imgType byte
	width   int
	height  int
	stride  int // bytes per pixel
	topDown bool
	body    []byte
}

// DecodeTGA reads uncompressed (type 2) and RLE (type 10) true-color
// TGA data, the variants ground-texture packs commonly ship.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	if h.imgType == tgaTruecolor {
		err = decodeTGARaw(img, h)
	} else {
		err = decodeTGARLE(img, h)
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	var h tgaHeader
	if len(data) < tgaHeaderSize {
		return h, fmt.Errorf("tga: %d header bytes, need %d", len(data), tgaHeaderSize)
	}

	idLen := int(data[0])
	mapType := data[1]
	h.imgType = data[2]
	h.width = int(data[12]) | int(data[13])<<8
	h.height = int(data[14]) | int(data[15])<<8
	depth := int(data[16])
	h.topDown = data[17]&0x20 != 0

	if mapType != 0 {
		return h, fmt.Errorf("tga: color-mapped images not supported")
	}
	if h.imgType != tgaTruecolor && h.imgType != tgaRLETruecolor {
		return h, fmt.Errorf("tga: unsupported image type %d", h.imgType)
	}
	if depth != 24 && depth != 32 {
		return h, fmt.Errorf("tga: unsupported depth %d", depth)
	}
	if h.width <= 0 || h.height <= 0 {
		return h, fmt.Errorf("tga: invalid dimensions %dx%d", h.width, h.height)
	}

	start := tgaHeaderSize + idLen
	if start > len(data) {
		return h, fmt.Errorf("tga: id field runs past end of data")
	}
	h.stride = depth / 8
	h.body = data[start:]
	return h, nil
}

// pixelAt reads one BGR(A) pixel starting at i.
func (h tgaHeader) pixelAt(i int) color.RGBA {
	c := color.RGBA{B: h.body[i], G: h.body[i+1], R: h.body[i+2], A: 0xFF}
	if h.stride == 4 {
		c.A = h.body[i+3]
	}
	return c
}

// store writes pixel n in file order, flipping rows for bottom-up
// files.
func (h tgaHeader) store(img *image.RGBA, n int, c color.RGBA) {
	x := n % h.width
	y := n / h.width
	if !h.topDown {
		y = h.height - 1 - y
	}
	img.SetRGBA(x, y, c)
}

func decodeTGARaw(img *image.RGBA, h tgaHeader) error {
	total := h.width * h.height
	if len(h.body) < total*h.stride {
		return fmt.Errorf("tga: pixel data truncated")
	}
	for n := 0; n < total; n++ {
		h.store(img, n, h.pixelAt(n*h.stride))
	}
	return nil
}

func decodeTGARLE(img *image.RGBA, h tgaHeader) error {
	total := h.width * h.height
	n, i := 0, 0

	for n < total {
		if i >= len(h.body) {
			return fmt.Errorf("tga: rle stream ended %d pixels early", total-n)
		}
		packet := h.body[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run packet: one pixel repeated count times.
			if i+h.stride > len(h.body) {
				return fmt.Errorf("tga: rle run truncated")
			}
			c := h.pixelAt(i)
			i += h.stride
			for ; count > 0 && n < total; count-- {
				h.store(img, n, c)
				n++
			}
		} else {
			// Literal packet: count standalone pixels.
			for ; count > 0 && n < total; count-- {
				if i+h.stride > len(h.body) {
					return fmt.Errorf("tga: rle literal truncated")
				}
				h.store(img, n, h.pixelAt(i))
				i += h.stride
				n++
			}
		}
	}
	return nil
}
