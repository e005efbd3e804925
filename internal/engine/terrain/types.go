package terrain

import (
	"fmt"

	"github.com/Ladvien/pixy-terrain/pkg/grid"
	"github.com/Ladvien/pixy-terrain/pkg/math"
)

// BlendSentinel in the first weight channel of the packed blend
// attribute marks floor vertices of cells that also emit walls, so the
// terrain shader can fade blending near cliffs.
const BlendSentinel float32 = -1

// CellGeometry is the non-indexed triangle soup of one cell as
// parallel attribute arrays. Every three consecutive entries form one
// triangle; all arrays stay the same length. A cell's geometry is
// built fresh on every generation and replaced wholesale when the cell
// is dirtied, never patched.
type CellGeometry struct {
	// Positions are world-space vertex positions.
	Positions []math.Vec3

	// UV carries cliff proximity: X is ledge proximity (foot of a
	// wall), Y is ridge proximity (lip of a wall).
	UV []math.Vec2

	// UV2 is the world-projected texture channel. Floors project XZ,
	// walls project horizontal-run and height.
	UV2 []math.Vec2

	// Color0 and Color1 are the one-hot texture slot pair, see the
	// palette package.
	Color0 []grid.Color
	Color1 []grid.Color

	// Mask is the interpolated grass mask paint.
	Mask []grid.Color

	// Blend packs the cell's dominant texture slots and the vertex
	// blend weights: R = primary*16+secondary, G = tertiary,
	// B and A = the first two normalized weights (the third is
	// implied). B may hold BlendSentinel instead.
	Blend []grid.Color

	// Floor marks floor vertices; wall vertices are excluded from
	// grass placement.
	Floor []bool
}

// NewCellGeometry returns an empty geometry buffer with room for a
// typical cell.
func NewCellGeometry() *CellGeometry {
	const cap0 = 36
	return &CellGeometry{
		Positions: make([]math.Vec3, 0, cap0),
		UV:        make([]math.Vec2, 0, cap0),
		UV2:       make([]math.Vec2, 0, cap0),
		Color0:    make([]grid.Color, 0, cap0),
		Color1:    make([]grid.Color, 0, cap0),
		Mask:      make([]grid.Color, 0, cap0),
		Blend:     make([]grid.Color, 0, cap0),
		Floor:     make([]bool, 0, cap0),
	}
}

func (cg *CellGeometry) append(pos math.Vec3, uv, uv2 math.Vec2, c0, c1, mask, blend grid.Color, floor bool) {
	cg.Positions = append(cg.Positions, pos)
	cg.UV = append(cg.UV, uv)
	cg.UV2 = append(cg.UV2, uv2)
	cg.Color0 = append(cg.Color0, c0)
	cg.Color1 = append(cg.Color1, c1)
	cg.Mask = append(cg.Mask, mask)
	cg.Blend = append(cg.Blend, blend)
	cg.Floor = append(cg.Floor, floor)
}

// VertexCount returns the number of vertices.
func (cg *CellGeometry) VertexCount() int {
	return len(cg.Positions)
}

// TriangleCount returns the number of triangles.
func (cg *CellGeometry) TriangleCount() int {
	return len(cg.Positions) / 3
}

// FaceNormal returns the unit normal of triangle tri. Degenerate
// triangles and out-of-range indices return straight up.
func (cg *CellGeometry) FaceNormal(tri int) math.Vec3 {
	up := math.Vec3{Y: 1}
	if tri < 0 || tri*3+2 >= len(cg.Positions) {
		return up
	}
	p0 := cg.Positions[tri*3]
	p1 := cg.Positions[tri*3+1]
	p2 := cg.Positions[tri*3+2]
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Length() < 1e-9 {
		return up
	}
	return n.Normalize()
}

// Validate checks the parallel-array and triangle-arity invariants.
func (cg *CellGeometry) Validate() error {
	n := len(cg.Positions)
	if n%3 != 0 {
		return fmt.Errorf("vertex count %d is not a multiple of 3", n)
	}
	for name, l := range map[string]int{
		"uv":     len(cg.UV),
		"uv2":    len(cg.UV2),
		"color0": len(cg.Color0),
		"color1": len(cg.Color1),
		"mask":   len(cg.Mask),
		"blend":  len(cg.Blend),
		"floor":  len(cg.Floor),
	} {
		if l != n {
			return fmt.Errorf("%s length %d does not match %d positions", name, l, n)
		}
	}
	return nil
}
