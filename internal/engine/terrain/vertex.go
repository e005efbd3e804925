package terrain

import (
	"go.uber.org/zap"

	"github.com/Ladvien/pixy-terrain/internal/engine/palette"
	"github.com/Ladvien/pixy-terrain/pkg/grid"
	"github.com/Ladvien/pixy-terrain/pkg/math"
)

// UV hints. X measures ledge proximity (foot of a wall), Y ridge
// proximity (lip of a wall). The shader darkens ledges and the grass
// engine keeps clear of both.
var (
	hintNone  = math.Vec2{}
	hintLedge = math.Vec2{X: 1}
	hintRidge = math.Vec2{Y: 1}
)

// vert carries one floor-vertex request: local cell coordinates in
// logical (pre-rotation) space, a height, and the UV hint.
type vert struct {
	x, z, y float32
	hint    math.Vec2
	diagMid bool
}

func fv(x, z, y float32) vert { return vert{x: x, z: z, y: y} }

func (v vert) withHint(h math.Vec2) vert {
	v.hint = h
	return v
}

func (v vert) diag() vert {
	v.diagMid = true
	return v
}

// emitter appends vertices for one cell at one rotation.
type emitter struct {
	ctx Context
	out *CellGeometry
}

// vertex is the single choke point every generated vertex passes
// through. It validates, rotates, colors, and appends exactly one
// complete record; it never skips, since a dropped vertex would shear
// the triangle structure of the parallel arrays.
func (e *emitter) vertex(x, z, y float32, hint math.Vec2, wall, diagMid bool) {
	ctx := &e.ctx
	opts := ctx.opts

	if !finitef(x) || !finitef(z) || !finitef(y) {
		opts.logger().Warn("non-finite vertex input, substituting midpoint",
			zap.Int("cellX", ctx.CellX), zap.Int("cellZ", ctx.CellZ))
		if !finitef(x) {
			x = 0.5
		}
		if !finitef(z) {
			z = 0.5
		}
		if !finitef(y) {
			y = ctx.minY
		}
	}

	for i := 0; i < ctx.rotation; i++ {
		x, z = 1-z, x
	}
	if !finitef(x) || !finitef(z) {
		x, z = 0.5, 0.5
	}

	// Wall maps also claim floor vertices that sit on a ridge lip,
	// unless the painter asked for direct blending.
	useWall := wall || (!opts.DirectBlend && hint.Y >= opts.RidgeColorThreshold)

	src := &ctx.ground
	defSlot := opts.DefaultSlot
	dom := ctx.floorBlend
	if useWall {
		src = &ctx.wall
		defSlot = opts.DefaultWallSlot
		dom = ctx.wallBlend
	}

	var c0, c1 grid.Color
	switch {
	case ctx.uniform:
		c0, c1 = palette.Encode(defSlot)
	case diagMid:
		b := src[(ctx.rotation+1)%4]
		c := src[(ctx.rotation+3)%4]
		c0 = diagonalBlend(b[0], c[0])
		c1 = diagonalBlend(b[1], c[1])
	case useWall && opts.GradientWalls && ctx.maxY > ctx.minY:
		t := clamp01((y - ctx.minY) / (ctx.maxY - ctx.minY))
		c0 = palette.Snap(ctx.gradientLower[0].Lerp(ctx.gradientUpper[0], t))
		c1 = palette.Snap(ctx.gradientLower[1].Lerp(ctx.gradientUpper[1], t))
	case opts.DirectBlend:
		c0, c1 = src[cornerA][0], src[cornerA][1]
	default:
		c0 = palette.Snap(bilerp(src[cornerA][0], src[cornerB][0], src[cornerD][0], src[cornerC][0], x, z))
		c1 = palette.Snap(bilerp(src[cornerA][1], src[cornerB][1], src[cornerD][1], src[cornerC][1], x, z))
	}

	blend := dom.blendAt(x, z)
	if ctx.anyUnmerged && !wall {
		blend[2] = BlendSentinel
	}

	mask := bilerp(ctx.mask[cornerA], ctx.mask[cornerB], ctx.mask[cornerD], ctx.mask[cornerC], x, z)

	pos := math.Vec3{
		X: (float32(ctx.CellX) + x) * opts.CellSize,
		Y: y,
		Z: (float32(ctx.CellZ) + z) * opts.CellSize,
	}

	var uv2 math.Vec2
	if wall {
		uv2 = math.Vec2{X: (pos.X + pos.Z) * opts.UVScale, Y: pos.Y * opts.UVScale}
	} else {
		uv2 = math.Vec2{X: pos.X * opts.UVScale, Y: pos.Z * opts.UVScale}
	}

	if !pos.Finite() {
		opts.logger().Warn("non-finite vertex position, substituting cell center",
			zap.Int("cellX", ctx.CellX), zap.Int("cellZ", ctx.CellZ))
		pos = math.Vec3{
			X: (float32(ctx.CellX) + 0.5) * opts.CellSize,
			Y: ctx.minY,
			Z: (float32(ctx.CellZ) + 0.5) * opts.CellSize,
		}
	}

	e.out.append(pos, hint, uv2, c0, c1, mask, blend, !wall)
}

func (e *emitter) floorTri(a, b, c vert) {
	e.vertex(a.x, a.z, a.y, a.hint, false, a.diagMid)
	e.vertex(b.x, b.z, b.y, b.hint, false, b.diagMid)
	e.vertex(c.x, c.z, c.y, c.hint, false, c.diagMid)
}

// floorQuad emits two floor triangles for the quad whose corners run
// p00→p10 along +x and p00→p01 along +z.
func (e *emitter) floorQuad(p00, p10, p11, p01 vert) {
	e.floorTri(p00, p01, p10)
	e.floorTri(p10, p01, p11)
}

// wallQuad emits the two wall triangles spanning the lip from l0 to
// l1. Tops ride the lip heights, bases the foot heights. The fixed
// ordering faces the open side when the top is above the base and
// flips with it, so callers only choose the travel direction.
func (e *emitter) wallQuad(l0, l1 math.Vec2, top0, top1, base0, base1 float32) {
	e.vertex(l0.X, l0.Y, top0, hintRidge, true, false)
	e.vertex(l0.X, l0.Y, base0, hintLedge, true, false)
	e.vertex(l1.X, l1.Y, top1, hintRidge, true, false)

	e.vertex(l1.X, l1.Y, top1, hintRidge, true, false)
	e.vertex(l0.X, l0.Y, base0, hintLedge, true, false)
	e.vertex(l1.X, l1.Y, base1, hintLedge, true, false)
}

// bilerp interpolates four corner colors at a physical cell position.
// Corners follow storage order A, B, D, C.
func bilerp(a, b, d, c grid.Color, x, z float32) grid.Color {
	north := a.Lerp(b, x)
	south := c.Lerp(d, x)
	return north.Lerp(south, z)
}

// diagonalBlend merges two diagonal corner colors: per-channel
// minimum, with any channel that was dominant in either input
// re-asserted so the seam stays crisp instead of washing out.
func diagonalBlend(a, b grid.Color) grid.Color {
	out := a.Min(b)
	for ch := range out {
		if a[ch] >= 0.99 || b[ch] >= 0.99 {
			out[ch] = maxf(a[ch], b[ch])
		}
	}
	return out
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
