package terrain

import (
	"github.com/Ladvien/pixy-terrain/internal/engine/palette"
	"github.com/Ladvien/pixy-terrain/pkg/grid"
)

// dominantSlots caches a cell's texture-slot census for one color
// source: the decoded slot of every corner plus the top three slots
// by frequency. When fewer than three distinct slots appear, the
// primary slot pads the tail and carries zero weight.
type dominantSlots struct {
	top    [3]int
	corner [4]int // storage order A B D C
}

// dominantFrom tallies the decoded slot of each corner pair and ranks
// them. The slot domain is only 16 values, so a fixed table beats a
// map. Ties go to the slot seen first in corner order A, B, C, D.
func dominantFrom(pairs *[4][2]grid.Color) dominantSlots {
	var d dominantSlots
	var count [palette.SlotCount]int
	var seen [palette.SlotCount]int

	order := 0
	for _, i := range [4]int{cornerA, cornerB, cornerC, cornerD} {
		slot := palette.Decode(pairs[i][0], pairs[i][1])
		d.corner[i] = slot
		if count[slot] == 0 {
			order++
			seen[slot] = order
		}
		count[slot]++
	}

	for rank := 0; rank < 3; rank++ {
		best := -1
		for s := 0; s < palette.SlotCount; s++ {
			if count[s] == 0 {
				continue
			}
			if best < 0 || count[s] > count[best] ||
				(count[s] == count[best] && seen[s] < seen[best]) {
				best = s
			}
		}
		if best < 0 {
			d.top[rank] = d.top[0]
			continue
		}
		d.top[rank] = best
		count[best] = 0
	}
	return d
}

// blendAt packs the dominant texture ids and per-vertex blend weights
// for a physical cell position. The first channel carries the primary
// and secondary ids as primary*16+secondary, the second the tertiary
// id, the last two the normalized weights of primary and secondary.
// The tertiary weight is implicit as 1-w0-w1.
func (d dominantSlots) blendAt(x, z float32) grid.Color {
	w := [4]float32{
		(1 - x) * (1 - z), // A
		x * (1 - z),       // B
		x * z,             // D
		(1 - x) * z,       // C
	}

	var t [3]float32
	var sum float32
	for rank, slot := range d.top {
		if rank > 0 && slot == d.top[0] {
			continue // padding
		}
		for c := 0; c < 4; c++ {
			if d.corner[c] == slot {
				t[rank] += w[c]
			}
		}
		sum += t[rank]
	}

	if sum > 0 {
		t[0] /= sum
		t[1] /= sum
	} else {
		// The vertex sits entirely on corners whose slot fell
		// outside the top three. Hand the weight to the primary.
		t[0] = 1
		t[1] = 0
	}

	return grid.Color{
		float32(d.top[0]*16 + d.top[1]),
		float32(d.top[2]),
		t[0],
		t[1],
	}
}
