// Package grid holds the flat-array authoring data the terrain core
// reads: one height and five color values per grid point, row-major.
// A grid of W x H points describes (W-1) x (H-1) cells; a cell's four
// corners are the points (x,z), (x+1,z), (x+1,z+1), (x,z+1).
//
// The arrays are the stable convention between painting tools, this
// core, and the grid file codec. All accessors are bounds-checked:
// reads outside the grid return documented defaults, writes outside
// are no-ops.
package grid

// Color is an RGBA attribute with float32 channels. The zero value
// marks a point that was never painted; accessors substitute defaults
// for it where a default is meaningful.
type Color [4]float32

// Add returns c + other per channel.
func (c Color) Add(other Color) Color {
	return Color{c[0] + other[0], c[1] + other[1], c[2] + other[2], c[3] + other[3]}
}

// Scale returns c * s per channel.
func (c Color) Scale(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s, c[3] * s}
}

// Lerp returns the per-channel interpolation between c and other at t.
func (c Color) Lerp(other Color, t float32) Color {
	var out Color
	for i := range out {
		out[i] = c[i] + (other[i]-c[i])*t
	}
	return out
}

// Min returns the per-channel minimum of c and other.
func (c Color) Min(other Color) Color {
	var out Color
	for i := range out {
		out[i] = c[i]
		if other[i] < out[i] {
			out[i] = other[i]
		}
	}
	return out
}

// IsZero reports whether every channel is exactly zero.
func (c Color) IsZero() bool {
	return c == Color{}
}

// DefaultMask is the grass mask assumed for unpainted points: full
// placement density, no force flag.
var DefaultMask = Color{1, 0, 0, 1}

// Grid is the authoring data for one terrain. Heights and colors are
// per POINT; dirty flags are per CELL.
type Grid struct {
	PointsW int
	PointsH int

	Heights []float32

	// One-hot texture slot pairs, see the palette package.
	GroundA []Color
	GroundB []Color
	WallA   []Color
	WallB   []Color

	// Grass mask paint: red = density, green = force-enable.
	Mask []Color

	dirty []bool
}

// New creates a grid of pointsW x pointsH points with zero heights and
// unpainted colors. Every cell starts dirty so a first build visits
// the whole grid. Dimensions below 2 clamp to 2 (a grid smaller than
// one cell is not useful).
func New(pointsW, pointsH int) *Grid {
	if pointsW < 2 {
		pointsW = 2
	}
	if pointsH < 2 {
		pointsH = 2
	}

	n := pointsW * pointsH
	g := &Grid{
		PointsW: pointsW,
		PointsH: pointsH,
		Heights: make([]float32, n),
		GroundA: make([]Color, n),
		GroundB: make([]Color, n),
		WallA:   make([]Color, n),
		WallB:   make([]Color, n),
		Mask:    make([]Color, n),
		dirty:   make([]bool, (pointsW-1)*(pointsH-1)),
	}
	for i := range g.dirty {
		g.dirty[i] = true
	}
	return g
}

// CellsW returns the number of cells along X.
func (g *Grid) CellsW() int {
	return g.PointsW - 1
}

// CellsH returns the number of cells along Z.
func (g *Grid) CellsH() int {
	return g.PointsH - 1
}

// Index returns the flat array index of point (x, z).
func (g *Grid) Index(x, z int) int {
	return z*g.PointsW + x
}

// InBounds reports whether point (x, z) lies inside the grid.
func (g *Grid) InBounds(x, z int) bool {
	return x >= 0 && x < g.PointsW && z >= 0 && z < g.PointsH
}

// HeightAt returns the height at point (x, z), or 0 outside the grid.
func (g *Grid) HeightAt(x, z int) float32 {
	if !g.InBounds(x, z) {
		return 0
	}
	return g.Heights[g.Index(x, z)]
}

// SetHeight writes the height at point (x, z) and dirties the cells
// sharing the point. Out-of-bounds writes are no-ops.
func (g *Grid) SetHeight(x, z int, h float32) {
	if !g.InBounds(x, z) {
		return
	}
	g.Heights[g.Index(x, z)] = h
	g.dirtyAround(x, z)
}

// GroundAt returns the ground color pair at point (x, z). Outside the
// grid both colors are zero (unpainted).
func (g *Grid) GroundAt(x, z int) (Color, Color) {
	if !g.InBounds(x, z) {
		return Color{}, Color{}
	}
	i := g.Index(x, z)
	return g.GroundA[i], g.GroundB[i]
}

// SetGround writes the ground color pair at point (x, z).
func (g *Grid) SetGround(x, z int, a, b Color) {
	if !g.InBounds(x, z) {
		return
	}
	i := g.Index(x, z)
	g.GroundA[i] = a
	g.GroundB[i] = b
	g.dirtyAround(x, z)
}

// WallAt returns the wall color pair at point (x, z). Outside the grid
// both colors are zero (unpainted).
func (g *Grid) WallAt(x, z int) (Color, Color) {
	if !g.InBounds(x, z) {
		return Color{}, Color{}
	}
	i := g.Index(x, z)
	return g.WallA[i], g.WallB[i]
}

// SetWall writes the wall color pair at point (x, z).
func (g *Grid) SetWall(x, z int, a, b Color) {
	if !g.InBounds(x, z) {
		return
	}
	i := g.Index(x, z)
	g.WallA[i] = a
	g.WallB[i] = b
	g.dirtyAround(x, z)
}

// MaskAt returns the grass mask at point (x, z). Unpainted and
// out-of-bounds points return DefaultMask.
func (g *Grid) MaskAt(x, z int) Color {
	if !g.InBounds(x, z) {
		return DefaultMask
	}
	m := g.Mask[g.Index(x, z)]
	if m.IsZero() {
		return DefaultMask
	}
	return m
}

// SetMask writes the grass mask at point (x, z). Write alpha 1 when
// painting, so an explicit zero-density mask stays distinct from an
// unpainted point.
func (g *Grid) SetMask(x, z int, m Color) {
	if !g.InBounds(x, z) {
		return
	}
	g.Mask[g.Index(x, z)] = m
	g.dirtyAround(x, z)
}

func (g *Grid) dirtyAround(x, z int) {
	for cz := z - 1; cz <= z; cz++ {
		for cx := x - 1; cx <= x; cx++ {
			g.MarkDirty(cx, cz)
		}
	}
}

// MarkDirty flags cell (cx, cz) for rebuild. Out of range is a no-op.
func (g *Grid) MarkDirty(cx, cz int) {
	if cx < 0 || cx >= g.CellsW() || cz < 0 || cz >= g.CellsH() {
		return
	}
	g.dirty[cz*g.CellsW()+cx] = true
}

// IsDirty reports whether cell (cx, cz) needs a rebuild. Out of range
// reports false.
func (g *Grid) IsDirty(cx, cz int) bool {
	if cx < 0 || cx >= g.CellsW() || cz < 0 || cz >= g.CellsH() {
		return false
	}
	return g.dirty[cz*g.CellsW()+cx]
}

// ClearDirty clears the rebuild flag of cell (cx, cz).
func (g *Grid) ClearDirty(cx, cz int) {
	if cx < 0 || cx >= g.CellsW() || cz < 0 || cz >= g.CellsH() {
		return
	}
	g.dirty[cz*g.CellsW()+cx] = false
}

// DirtyCount returns the number of cells flagged for rebuild.
func (g *Grid) DirtyCount() int {
	n := 0
	for _, d := range g.dirty {
		if d {
			n++
		}
	}
	return n
}

// InterpolatedHeight returns the bilinear height at fractional point
// coordinates. Coordinates clamp to the grid edge.
func (g *Grid) InterpolatedHeight(fx, fz float32) float32 {
	fx = clampf(fx, 0, float32(g.PointsW-1))
	fz = clampf(fz, 0, float32(g.PointsH-1))

	x0 := int(fx)
	z0 := int(fz)
	x1 := x0 + 1
	z1 := z0 + 1
	if x1 >= g.PointsW {
		x1 = g.PointsW - 1
	}
	if z1 >= g.PointsH {
		z1 = g.PointsH - 1
	}

	tx := fx - float32(x0)
	tz := fz - float32(z0)

	h00 := g.Heights[g.Index(x0, z0)]
	h10 := g.Heights[g.Index(x1, z0)]
	h01 := g.Heights[g.Index(x0, z1)]
	h11 := g.Heights[g.Index(x1, z1)]

	north := h00 + (h10-h00)*tx
	south := h01 + (h11-h01)*tx
	return north + (south-north)*tz
}

// HeightRange returns the minimum and maximum point heights.
func (g *Grid) HeightRange() (min, max float32) {
	if len(g.Heights) == 0 {
		return 0, 0
	}
	min = g.Heights[0]
	max = g.Heights[0]
	for _, h := range g.Heights {
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
	}
	return min, max
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
