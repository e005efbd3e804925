// Package demo synthesizes authoring grids so the tools can run
// without painted data.
package demo

import (
	gomath "math"

	"github.com/Ladvien/pixy-terrain/internal/engine/palette"
	"github.com/Ladvien/pixy-terrain/pkg/grid"
)

// Per-concern seed salts keep the noise fields independent.
const (
	heightSalt = 0xA5B35C1D9E2F4687
	detailSalt = 0xC3D21E0F8A7B5649
	maskSalt   = 0x7A2C9E0D5B1F8364
)

// Texture slots the generated landscape paints with.
const (
	slotLowland = 0
	slotMeadow  = 2
	slotCliff   = 4
	slotRock    = 5
)

// Grid returns a deterministic terraced landscape of pointsW x pointsH
// points. Heights are value noise quantized to whole units, so flat
// runs merge into floors and terrace steps come out as walls. Ground
// slots follow elevation bands, walls paint as cliff, and the mask
// clears a few barren patches and force-grows a few meadows.
func Grid(pointsW, pointsH int, seed uint64) *grid.Grid {
	g := grid.New(pointsW, pointsH)

	for z := 0; z < g.PointsH; z++ {
		for x := 0; x < g.PointsW; x++ {
			fx := float32(x)
			fz := float32(z)

			n := valueNoise(seed^heightSalt, fx*0.11, fz*0.11)*5 +
				valueNoise(seed^detailSalt, fx*0.37, fz*0.37)*1.5
			h := float32(int(n))
			g.SetHeight(x, z, h)

			slot := slotLowland
			switch {
			case h >= 5:
				slot = slotRock
			case h >= 3:
				slot = slotMeadow
			}
			ga, gb := palette.Encode(slot)
			g.SetGround(x, z, ga, gb)
			wa, wb := palette.Encode(slotCliff)
			g.SetWall(x, z, wa, wb)

			// Unpainted points keep the default full-density mask.
			mv := uint8(hash2D(seed^maskSalt, x>>2, z>>2) >> 56)
			switch {
			case mv < 24:
				g.SetMask(x, z, grid.Color{0, 0, 0, 1})
			case mv < 48:
				g.SetMask(x, z, grid.Color{0.35, 0, 0, 1})
			case mv > 230:
				g.SetMask(x, z, grid.Color{1, 1, 0, 1})
			}
		}
	}
	return g
}

// valueNoise samples bilinear value noise on an integer lattice. The
// lattice value at a point is the top byte of its hash, mapped to
// [0, 1).
func valueNoise(seed uint64, fx, fz float32) float32 {
	x0 := int(gomath.Floor(float64(fx)))
	z0 := int(gomath.Floor(float64(fz)))
	tx := fx - float32(x0)
	tz := fz - float32(z0)

	v00 := lattice(seed, x0, z0)
	v10 := lattice(seed, x0+1, z0)
	v01 := lattice(seed, x0, z0+1)
	v11 := lattice(seed, x0+1, z0+1)

	north := v00 + (v10-v00)*tx
	south := v01 + (v11-v01)*tx
	return north + (south-north)*tz
}

func lattice(seed uint64, x, z int) float32 {
	return float32(hash2D(seed, x, z)>>56) / 256
}

// hash2D returns a deterministic 64-bit hash for (x, z) under the
// given seed.
func hash2D(seed uint64, x, z int) uint64 {
	h := seed
	h ^= uint64(uint32(x)) * 0x9E3779B185EBCA87
	h ^= uint64(uint32(z)) * 0xC2B2AE3D27D4EB4F
	return splitmix64(h)
}

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
