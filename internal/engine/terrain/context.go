package terrain

import (
	"go.uber.org/zap"

	"github.com/Ladvien/pixy-terrain/internal/engine/palette"
	"github.com/Ladvien/pixy-terrain/pkg/grid"
)

// Corner storage order is A, B, D, C: clockwise around the cell, with
// D stored before C so one rotation step is a plain cyclic index
// shift. Locally A=(0,0), B=(1,0), D=(1,1), C=(0,1) in cell units.
const (
	cornerA = 0
	cornerB = 1
	cornerD = 2
	cornerC = 3
)

// Edge i joins corners i and (i+1)%4, giving storage order AB, BD,
// DC, CA.
const (
	edgeAB = 0
	edgeBD = 1
	edgeDC = 2
	edgeCA = 3
)

// Context is the immutable per-cell view the generator works on. The
// rotation counter re-labels corners without copying: after rotating
// by n, logical corner A reads physical slot n.
type Context struct {
	CellX int
	CellZ int

	rotation int

	heights [4]float32 // corner order A B D C
	merged  [4]bool    // edge order AB BD DC CA

	ground [4][2]grid.Color
	wall   [4][2]grid.Color
	mask   [4]grid.Color

	minY float32
	maxY float32

	gradientLower [2]grid.Color
	gradientUpper [2]grid.Color

	uniform     bool
	anyUnmerged bool

	floorBlend dominantSlots
	wallBlend  dominantSlots

	opts *Options
}

// NewContext assembles the cell view for cell (cx, cz). Non-finite
// corner heights are replaced with 0 and reported through the options
// logger; unpainted color pairs fall back to the default slots.
func NewContext(g *grid.Grid, cx, cz int, opts *Options) Context {
	ctx := Context{CellX: cx, CellZ: cz, opts: opts}

	// Physical corner points in storage order A, B, D, C.
	px := [4]int{cx, cx + 1, cx + 1, cx}
	pz := [4]int{cz, cz, cz + 1, cz + 1}

	for i := 0; i < 4; i++ {
		h := g.HeightAt(px[i], pz[i])
		if !finitef(h) {
			opts.logger().Warn("non-finite corner height, substituting 0",
				zap.Int("cellX", cx), zap.Int("cellZ", cz), zap.Int("corner", i))
			h = 0
		}
		ctx.heights[i] = h

		ga, gb := g.GroundAt(px[i], pz[i])
		wa, wb := g.WallAt(px[i], pz[i])
		ctx.ground[i] = [2]grid.Color{ga, gb}
		ctx.wall[i] = [2]grid.Color{wa, wb}
		ctx.mask[i] = g.MaskAt(px[i], pz[i])
	}

	ctx.uniform = true
	for i := 0; i < 4; i++ {
		if !ctx.ground[i][0].IsZero() || !ctx.ground[i][1].IsZero() ||
			!ctx.wall[i][0].IsZero() || !ctx.wall[i][1].IsZero() {
			ctx.uniform = false
			break
		}
	}

	// Unpainted pairs read as the default slot so every corner has
	// usable paint.
	ga, gb := palette.Encode(opts.DefaultSlot)
	wa, wb := palette.Encode(opts.DefaultWallSlot)
	for i := 0; i < 4; i++ {
		if ctx.ground[i][0].IsZero() && ctx.ground[i][1].IsZero() {
			ctx.ground[i] = [2]grid.Color{ga, gb}
		}
		if ctx.wall[i][0].IsZero() && ctx.wall[i][1].IsZero() {
			ctx.wall[i] = [2]grid.Color{wa, wb}
		}
	}

	t := opts.MergeThreshold
	for i := 0; i < 4; i++ {
		ctx.merged[i] = isMerged(ctx.heights[i], ctx.heights[(i+1)%4], t)
		if !ctx.merged[i] {
			ctx.anyUnmerged = true
		}
	}

	lowest, highest := 0, 0
	ctx.minY, ctx.maxY = ctx.heights[0], ctx.heights[0]
	for i := 1; i < 4; i++ {
		if ctx.heights[i] < ctx.minY {
			ctx.minY = ctx.heights[i]
			lowest = i
		}
		if ctx.heights[i] > ctx.maxY {
			ctx.maxY = ctx.heights[i]
			highest = i
		}
	}
	ctx.gradientLower = ctx.wall[lowest]
	ctx.gradientUpper = ctx.wall[highest]

	ctx.floorBlend = dominantFrom(&ctx.ground)
	ctx.wallBlend = dominantFrom(&ctx.wall)

	return ctx
}

// Rotation returns the current rotation counter.
func (c Context) Rotation() int {
	return c.rotation
}

// Rotate returns a copy rotated n further steps.
func (c Context) Rotate(n int) Context {
	c.rotation = ((c.rotation+n)%4 + 4) % 4
	return c
}

// WithRotation returns a copy with the rotation counter set to n.
func (c Context) WithRotation(n int) Context {
	c.rotation = (n%4 + 4) % 4
	return c
}

// Ay returns the height of logical corner A.
func (c Context) Ay() float32 { return c.heights[c.rotation%4] }

// By returns the height of logical corner B.
func (c Context) By() float32 { return c.heights[(c.rotation+1)%4] }

// Dy returns the height of logical corner D.
func (c Context) Dy() float32 { return c.heights[(c.rotation+2)%4] }

// Cy returns the height of logical corner C.
func (c Context) Cy() float32 { return c.heights[(c.rotation+3)%4] }

// AB reports whether the logical A-B edge is merged.
func (c Context) AB() bool { return c.merged[c.rotation%4] }

// BD reports whether the logical B-D edge is merged.
func (c Context) BD() bool { return c.merged[(c.rotation+1)%4] }

// DC reports whether the logical D-C edge is merged.
func (c Context) DC() bool { return c.merged[(c.rotation+2)%4] }

// CA reports whether the logical C-A edge is merged.
func (c Context) CA() bool { return c.merged[(c.rotation+3)%4] }

// MinHeight returns the lowest corner height.
func (c Context) MinHeight() float32 { return c.minY }

// MaxHeight returns the highest corner height.
func (c Context) MaxHeight() float32 { return c.maxY }

// Uniform reports whether the cell carries no paint at all.
func (c Context) Uniform() bool { return c.uniform }

// AnyUnmerged reports whether any edge splits into a wall.
func (c Context) AnyUnmerged() bool { return c.anyUnmerged }

// Height comparison predicates. The threshold forms a dead zone:
// deltas inside it merge, deltas beyond it raise or lower. A delta of
// exactly the threshold is neither; classification falls back to the
// delta sign there.
func isHigher(a, b, threshold float32) bool { return a-b > threshold }

func isLower(a, b, threshold float32) bool { return a-b < -threshold }

func isMerged(a, b, threshold float32) bool { return absf(a-b) < threshold }

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func finitef(f float32) bool {
	// NaN fails both comparisons; infinities fail the range check.
	if f != f {
		return false
	}
	const huge = 3.4e38
	return f >= -huge && f <= huge
}
