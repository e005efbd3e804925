package grass

import (
	"github.com/Ladvien/pixy-terrain/pkg/grid"
	"github.com/Ladvien/pixy-terrain/pkg/math"
)

// stratify appends one jittered sample per stratum of the
// subdivisions x subdivisions sub-grid covering a cell's world XZ
// rectangle. Y holds the world Z coordinate.
func stratify(pts []math.Vec2, originX, originZ, cellSize float32, subdivisions int, rng Source) []math.Vec2 {
	step := cellSize / float32(subdivisions)
	for sz := 0; sz < subdivisions; sz++ {
		for sx := 0; sx < subdivisions; sx++ {
			pts = append(pts, math.Vec2{
				X: originX + (float32(sx)+rng.Float32())*step,
				Y: originZ + (float32(sz)+rng.Float32())*step,
			})
		}
	}
	return pts
}

// degenerateArea is the denominator magnitude below which a triangle's
// XZ footprint counts as collapsed and is skipped.
const degenerateArea = 1e-12

// tri2 is a triangle's XZ footprint with the barycentric denominator
// computed once per triangle.
type tri2 struct {
	a     math.Vec2
	ab    math.Vec2
	ac    math.Vec2
	denom float32
}

// newTri2 reports ok=false for degenerate footprints.
func newTri2(a, b, c math.Vec2) (tri2, bool) {
	t := tri2{a: a, ab: b.Sub(a), ac: c.Sub(a)}
	t.denom = t.ab.Cross(t.ac)
	if t.denom > -degenerateArea && t.denom < degenerateArea {
		return t, false
	}
	return t, true
}

// barycentric returns the weights of p on the second and third corner.
// The first corner's weight is 1-u-v.
func (t tri2) barycentric(p math.Vec2) (u, v float32) {
	ap := p.Sub(t.a)
	u = ap.Cross(t.ac) / t.denom
	v = t.ab.Cross(ap) / t.denom
	return u, v
}

func (t tri2) contains(u, v float32) bool {
	return u >= 0 && v >= 0 && u+v <= 1
}

func lerpVec3(a, b, c math.Vec3, w [3]float32) math.Vec3 {
	return a.Scale(w[0]).Add(b.Scale(w[1])).Add(c.Scale(w[2]))
}

func lerpVec2(a, b, c math.Vec2, w [3]float32) math.Vec2 {
	return a.Scale(w[0]).Add(b.Scale(w[1])).Add(c.Scale(w[2]))
}

func lerpColor(a, b, c grid.Color, w [3]float32) grid.Color {
	return a.Scale(w[0]).Add(b.Scale(w[1])).Add(c.Scale(w[2]))
}
