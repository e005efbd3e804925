// Package palette maps terrain texture slots to one-hot vertex color
// pairs and back. A slot id 0..15 splits into a row (id/4) and a column
// (id%4); the row picks the dominant channel of the first color, the
// column the dominant channel of the second. Painting tools only ever
// write one-hot colors; interpolated values are snapped back before
// decoding.
package palette

import "github.com/Ladvien/pixy-terrain/pkg/grid"

// SlotCount is the number of addressable texture slots.
const SlotCount = 16

// Argmax returns the index of the strongest channel. Ties resolve to
// the lowest index. This is the only channel argmax in the codebase;
// decoding, snapping and blend weighting all route through it.
func Argmax(c grid.Color) int {
	best := 0
	for i := 1; i < 4; i++ {
		if c[i] > c[best] {
			best = i
		}
	}
	return best
}

// Snap returns the one-hot color of the strongest channel.
func Snap(c grid.Color) grid.Color {
	return OneHot(Argmax(c))
}

// OneHot returns a color with the given channel at 1 and the rest at 0.
// Out-of-range channels clamp into 0..3.
func OneHot(channel int) grid.Color {
	if channel < 0 {
		channel = 0
	}
	if channel > 3 {
		channel = 3
	}
	var c grid.Color
	c[channel] = 1
	return c
}

// ClampSlot clamps a slot id into the addressable range.
func ClampSlot(slot int) int {
	if slot < 0 {
		return 0
	}
	if slot >= SlotCount {
		return SlotCount - 1
	}
	return slot
}

// Encode returns the one-hot color pair for a texture slot.
func Encode(slot int) (grid.Color, grid.Color) {
	slot = ClampSlot(slot)
	return OneHot(slot / 4), OneHot(slot % 4)
}

// Decode returns the texture slot encoded by a color pair. The pair
// does not need to be exactly one-hot; each color contributes its
// strongest channel.
func Decode(c0, c1 grid.Color) int {
	return Argmax(c0)*4 + Argmax(c1)
}
