// Package grass scatters vegetation instances across the floor
// triangles of generated terrain. Candidate points come from
// stratified jitter sampling per cell; each point is claimed by the
// first floor triangle containing it, filtered by cliff proximity,
// mask paint and per-slot toggles, and turned into a billboard
// transform with a sampled ground tint.
package grass

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Ladvien/pixy-terrain/internal/engine/palette"
	"github.com/Ladvien/pixy-terrain/internal/engine/terrain"
	"github.com/Ladvien/pixy-terrain/internal/engine/tint"
	"github.com/Ladvien/pixy-terrain/pkg/grid"
	"github.com/Ladvien/pixy-terrain/pkg/math"
)

// alwaysGrownSlot is the stock grass texture; it ignores the per-slot
// toggles.
const alwaysGrownSlot = 1

// hiddenTransform parks an unused instance slot far below the world at
// zero scale. Buffer capacity never shrinks, so leftover slots stay on
// this transform after a rebuild.
var hiddenTransform = math.Translate(0, -1e4, 0).Mul(math.Scale(0, 0, 0))

// Options are the placement tuning knobs.
type Options struct {
	// Subdivisions splits each cell into Subdivisions^2 strata, one
	// candidate point per stratum.
	Subdivisions int

	// LedgeLimit and RidgeLimit reject candidates whose cliff
	// proximity exceeds them, keeping grass off wall feet and lips.
	LedgeLimit float32
	RidgeLimit float32

	// MaskThreshold is the minimum mask red channel (density paint)
	// for placement. A mask green channel at or above ForceThreshold
	// overrides both the density check and the slot toggles.
	MaskThreshold  float32
	ForceThreshold float32

	// SlotEnabled toggles placement per texture slot. The stock grass
	// slot grows regardless.
	SlotEnabled [palette.SlotCount]bool

	// TintScale maps world units onto the tint tile, per slot.
	TintScale [palette.SlotCount]float32

	// BaseScale and ScaleJitter size each instance: BaseScale plus a
	// random fraction of ScaleJitter.
	BaseScale   float32
	ScaleJitter float32

	// Seed initializes the engine's own generator when Source is nil.
	Seed uint64

	// Source overrides the per-engine generator, e.g. with a shared
	// AtomicRand.
	Source Source

	// Log receives placement diagnostics. Nil means no logging.
	Log *zap.Logger
}

// DefaultOptions returns the placement settings used by the authoring
// tool out of the box: every slot enabled, moderate density.
func DefaultOptions() Options {
	o := Options{
		Subdivisions:   3,
		LedgeLimit:     0.5,
		RidgeLimit:     0.5,
		MaskThreshold:  0.5,
		ForceThreshold: 0.9999,
		BaseScale:      0.8,
		ScaleJitter:    0.4,
		Seed:           1,
	}
	for i := range o.SlotEnabled {
		o.SlotEnabled[i] = true
	}
	for i := range o.TintScale {
		o.TintScale[i] = 0.25
	}
	return o
}

func (o *Options) logger() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}

// Instance is one grass billboard's draw data.
type Instance struct {
	// Transform places the billboard in world space.
	Transform math.Mat4

	// Color carries the sampled ground tint in RGB and the texture
	// slot id in A, in steps of 1/15.
	Color grid.Color

	// Hidden marks slots parked on the degenerate transform.
	Hidden bool
}

// Engine scatters grass over the floor triangles of generated chunks.
// The instance buffer grows to the largest chunk seen and is reused
// across rebuilds; an Engine serves one goroutine at a time.
type Engine struct {
	opts Options
	rng  Source
	img  *tint.Image
	log  *zap.Logger

	instances []Instance
	scratch   []math.Vec2
	placed    int
}

// NewEngine creates a placement engine sampling tints from img. A nil
// img paints every instance white.
func NewEngine(opts Options, img *tint.Image) *Engine {
	if opts.Subdivisions < 1 {
		opts.Subdivisions = 1
	}
	if img == nil {
		img = tint.Solid(grid.Color{1, 1, 1, 1})
	}
	rng := opts.Source
	if rng == nil {
		rng = NewRand(opts.Seed)
	}
	return &Engine{opts: opts, rng: rng, img: img, log: opts.logger()}
}

// Instances returns the full fixed-capacity buffer, hidden slots
// included, valid until the next Place call.
func (e *Engine) Instances() []Instance {
	return e.instances
}

// Placed returns the number of live instances from the last Place.
func (e *Engine) Placed() int {
	return e.placed
}

// Capacity returns the current instance buffer size.
func (e *Engine) Capacity() int {
	return len(e.instances)
}

// Place rebuilds the instance buffer for ch and returns the number of
// instances placed. All previous instances are discarded first; the
// buffer is sized for one candidate per stratum of every cell and
// unconsumed slots stay hidden.
func (e *Engine) Place(ch *terrain.Chunk) int {
	capacity := len(ch.Cells) * e.opts.Subdivisions * e.opts.Subdivisions
	if capacity > len(e.instances) {
		e.instances = make([]Instance, capacity)
	}
	for i := range e.instances {
		e.instances[i] = Instance{Transform: hiddenTransform, Hidden: true}
	}
	e.placed = 0

	next := 0
	for i, geo := range ch.Cells {
		if geo == nil {
			continue
		}
		cx := ch.CellX + i%ch.CellsW
		cz := ch.CellZ + i/ch.CellsW
		next = e.placeCell(geo, cx, cz, ch.CellSize, next)
	}

	e.log.Debug("grass placed",
		zap.Int("cells", len(ch.Cells)),
		zap.Int("capacity", len(e.instances)),
		zap.Int("placed", e.placed))
	return e.placed
}

// placeCell scatters one cell's candidates over its floor triangles,
// writing accepted instances from slot next on. Points are consumed by
// the first triangle containing them, whether or not the instance
// survives the rejection rules.
func (e *Engine) placeCell(geo *terrain.CellGeometry, cx, cz int, cellSize float32, next int) int {
	pts := stratify(e.scratch[:0],
		float32(cx)*cellSize, float32(cz)*cellSize,
		cellSize, e.opts.Subdivisions, e.rng)
	defer func() { e.scratch = pts[:0] }()

	for tri := 0; tri < geo.TriangleCount() && len(pts) > 0; tri++ {
		i0 := tri * 3
		if !geo.Floor[i0] {
			continue
		}
		t, ok := newTri2(geo.Positions[i0].XZ(), geo.Positions[i0+1].XZ(), geo.Positions[i0+2].XZ())
		if !ok {
			continue
		}
		normal := geo.FaceNormal(tri)

		for pi := 0; pi < len(pts); {
			u, v := t.barycentric(pts[pi])
			if !t.contains(u, v) {
				pi++
				continue
			}
			pts[pi] = pts[len(pts)-1]
			pts = pts[:len(pts)-1]

			if inst, ok := e.sample(geo, i0, u, v, normal); ok {
				e.instances[next] = inst
				next++
				e.placed++
			}
		}
	}
	return next
}

// sample interpolates the claimed point's attributes and runs the
// rejection rules, in order: cliff proximity, mask density, slot
// toggle. A mask green channel at ForceThreshold overrides the density
// check and the toggles but never the cliff limits.
func (e *Engine) sample(geo *terrain.CellGeometry, i0 int, u, v float32, normal math.Vec3) (Instance, bool) {
	w := [3]float32{1 - u - v, u, v}

	uv := lerpVec2(geo.UV[i0], geo.UV[i0+1], geo.UV[i0+2], w)
	if uv.X > e.opts.LedgeLimit || uv.Y > e.opts.RidgeLimit {
		return Instance{}, false
	}

	mask := lerpColor(geo.Mask[i0], geo.Mask[i0+1], geo.Mask[i0+2], w)
	force := mask[1] >= e.opts.ForceThreshold
	if !force && mask[0] < e.opts.MaskThreshold {
		return Instance{}, false
	}

	c0 := lerpColor(geo.Color0[i0], geo.Color0[i0+1], geo.Color0[i0+2], w)
	c1 := lerpColor(geo.Color1[i0], geo.Color1[i0+1], geo.Color1[i0+2], w)
	slot := palette.Decode(c0, c1)
	if !force && slot != alwaysGrownSlot && !e.opts.SlotEnabled[slot] {
		return Instance{}, false
	}

	pos := lerpVec3(geo.Positions[i0], geo.Positions[i0+1], geo.Positions[i0+2], w)
	tinted := e.img.Sample(pos.X, pos.Z, e.opts.TintScale[slot])

	return Instance{
		Transform: e.billboard(pos, normal),
		Color: grid.Color{
			tinted[0], tinted[1], tinted[2],
			float32(slot) / (palette.SlotCount - 1),
		},
	}, true
}

// billboard builds the instance transform: random yaw around the face
// normal, tilted so up follows the normal, jittered scale, translated
// to the claimed point.
func (e *Engine) billboard(pos, normal math.Vec3) math.Mat4 {
	yaw := e.rng.Float32() * (2 * gomath.Pi)
	scale := e.opts.BaseScale + e.opts.ScaleJitter*e.rng.Float32()

	spin := math.QuatFromAxisAngle(normal, yaw)
	tilt := math.QuatBetween(math.Vec3{Y: 1}, normal)
	rot := spin.Mul(tilt).ToMat4()

	return math.Translate(pos.X, pos.Y, pos.Z).
		Mul(rot).
		Mul(math.Scale(scale, scale, scale))
}
