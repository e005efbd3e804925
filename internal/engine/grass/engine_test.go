package grass

import (
	"testing"

	"github.com/Ladvien/pixy-terrain/internal/engine/palette"
	"github.com/Ladvien/pixy-terrain/internal/engine/terrain"
	"github.com/Ladvien/pixy-terrain/internal/engine/tint"
	"github.com/Ladvien/pixy-terrain/pkg/grid"
	"github.com/Ladvien/pixy-terrain/pkg/math"
)

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// floorTri appends one floor triangle with uniform per-vertex
// attributes to geo.
func floorTri(geo *terrain.CellGeometry, a, b, c math.Vec3, uv math.Vec2, mask grid.Color, slot int) {
	c0, c1 := palette.Encode(slot)
	for _, p := range []math.Vec3{a, b, c} {
		geo.Positions = append(geo.Positions, p)
		geo.UV = append(geo.UV, uv)
		geo.UV2 = append(geo.UV2, math.Vec2{})
		geo.Color0 = append(geo.Color0, c0)
		geo.Color1 = append(geo.Color1, c1)
		geo.Mask = append(geo.Mask, mask)
		geo.Blend = append(geo.Blend, grid.Color{})
		geo.Floor = append(geo.Floor, true)
	}
}

// coveringTri returns an up-facing triangle at height y whose XZ
// footprint contains the whole unit cell at the origin.
func coveringTri(y float32) (math.Vec3, math.Vec3, math.Vec3) {
	return math.Vec3{X: -1, Y: y, Z: -1},
		math.Vec3{X: -1, Y: y, Z: 3},
		math.Vec3{X: 3, Y: y, Z: -1}
}

// oneCellChunk wraps geo as the single unit cell at the origin.
func oneCellChunk(geo *terrain.CellGeometry) *terrain.Chunk {
	return &terrain.Chunk{
		CellsW:   1,
		CellsH:   1,
		CellSize: 1,
		Cells:    []*terrain.CellGeometry{geo},
		Cases:    []terrain.CellCase{terrain.CaseFloor},
	}
}

func testGrassOptions() Options {
	o := DefaultOptions()
	o.Subdivisions = 2
	o.ScaleJitter = 0
	o.Seed = 99
	return o
}

// placeUniformCell runs placement over one covering floor triangle
// with uniform attributes and returns the instance count.
func placeUniformCell(uv math.Vec2, mask grid.Color, slot int, mutate func(*Options)) int {
	geo := terrain.NewCellGeometry()
	a, b, c := coveringTri(0)
	floorTri(geo, a, b, c, uv, mask, slot)

	opts := testGrassOptions()
	if mutate != nil {
		mutate(&opts)
	}
	return NewEngine(opts, nil).Place(oneCellChunk(geo))
}

func TestPlace_PointClaimedByContainingTriangle(t *testing.T) {
	geo := terrain.NewCellGeometry()
	// A distant triangle first in storage order, then one containing
	// the whole cell. Candidates must survive the miss and still be
	// claimed by the second triangle.
	a, b, c := coveringTri(2)
	off := math.Vec3{X: 100}
	floorTri(geo, a.Add(off), b.Add(off), c.Add(off), math.Vec2{}, grid.DefaultMask, 3)
	floorTri(geo, a, b, c, math.Vec2{}, grid.DefaultMask, 2)

	opts := testGrassOptions()
	eng := NewEngine(opts, nil)
	placed := eng.Place(oneCellChunk(geo))

	want := opts.Subdivisions * opts.Subdivisions
	if placed != want {
		t.Fatalf("placed %d instances, want %d", placed, want)
	}
	wantAlpha := float32(2) / 15
	for i, inst := range eng.Instances() {
		if inst.Hidden {
			t.Errorf("instance %d hidden, want every slot live", i)
			continue
		}
		if inst.Color[3] != wantAlpha {
			t.Errorf("instance %d: slot alpha %v, want %v", i, inst.Color[3], wantAlpha)
		}
	}
}

func TestPlace_FirstTriangleWinsOverlap(t *testing.T) {
	geo := terrain.NewCellGeometry()
	// Two identical covering triangles with different slots. Every
	// point must be consumed by the first and never reach the second.
	a, b, c := coveringTri(0)
	floorTri(geo, a, b, c, math.Vec2{}, grid.DefaultMask, 2)
	floorTri(geo, a, b, c, math.Vec2{}, grid.DefaultMask, 3)

	opts := testGrassOptions()
	eng := NewEngine(opts, nil)
	placed := eng.Place(oneCellChunk(geo))

	want := opts.Subdivisions * opts.Subdivisions
	if placed != want {
		t.Fatalf("placed %d instances, want %d", placed, want)
	}
	for i, inst := range eng.Instances()[:placed] {
		if got, want := inst.Color[3], float32(2)/15; got != want {
			t.Errorf("instance %d: slot alpha %v, want the first triangle's %v", i, got, want)
		}
	}
}

func TestPlace_WallTrianglesIgnored(t *testing.T) {
	geo := terrain.NewCellGeometry()
	a, b, c := coveringTri(0)
	floorTri(geo, a, b, c, math.Vec2{}, grid.DefaultMask, 2)
	for i := range geo.Floor {
		geo.Floor[i] = false
	}

	eng := NewEngine(testGrassOptions(), nil)
	if placed := eng.Place(oneCellChunk(geo)); placed != 0 {
		t.Errorf("placed %d instances on wall geometry, want 0", placed)
	}
}

func TestPlace_MaskRejection(t *testing.T) {
	// Zero density suppresses placement.
	if got := placeUniformCell(math.Vec2{}, grid.Color{0, 0, 0, 1}, 2, nil); got != 0 {
		t.Errorf("zero red mask: placed %d, want 0", got)
	}
	// Green just below the force threshold does not rescue it.
	if got := placeUniformCell(math.Vec2{}, grid.Color{0, 0.99, 0, 1}, 2, nil); got != 0 {
		t.Errorf("green 0.99 mask: placed %d, want 0", got)
	}
	// Force-enable overrides the density check.
	if got := placeUniformCell(math.Vec2{}, grid.Color{0, 1, 0, 1}, 2, nil); got != 4 {
		t.Errorf("force mask: placed %d, want 4", got)
	}
	// Force-enable overrides a disabled slot toggle too.
	got := placeUniformCell(math.Vec2{}, grid.Color{0, 1, 0, 1}, 5,
		func(o *Options) { o.SlotEnabled[5] = false })
	if got != 4 {
		t.Errorf("force mask on a disabled slot: placed %d, want 4", got)
	}
}

func TestPlace_SlotToggle(t *testing.T) {
	if got := placeUniformCell(math.Vec2{}, grid.DefaultMask, 5,
		func(o *Options) { o.SlotEnabled[5] = false }); got != 0 {
		t.Errorf("disabled slot 5: placed %d, want 0", got)
	}
	// The stock grass slot ignores its toggle.
	if got := placeUniformCell(math.Vec2{}, grid.DefaultMask, 1,
		func(o *Options) { o.SlotEnabled[1] = false }); got != 4 {
		t.Errorf("disabled slot 1: placed %d, want 4", got)
	}
}

func TestPlace_CliffRejection(t *testing.T) {
	if got := placeUniformCell(math.Vec2{X: 0.8}, grid.DefaultMask, 2, nil); got != 0 {
		t.Errorf("ledge uv 0.8: placed %d, want 0", got)
	}
	if got := placeUniformCell(math.Vec2{Y: 0.8}, grid.DefaultMask, 2, nil); got != 0 {
		t.Errorf("ridge uv 0.8: placed %d, want 0", got)
	}
	if got := placeUniformCell(math.Vec2{X: 0.4, Y: 0.4}, grid.DefaultMask, 2, nil); got != 4 {
		t.Errorf("uv below the limits: placed %d, want 4", got)
	}
	// Force-enable never overrides cliff proximity.
	if got := placeUniformCell(math.Vec2{X: 0.8}, grid.Color{0, 1, 0, 1}, 2, nil); got != 0 {
		t.Errorf("force mask on a ledge: placed %d, want 0", got)
	}
}

func TestPlace_DegenerateTriangleSkipped(t *testing.T) {
	geo := terrain.NewCellGeometry()
	// Collinear footprint first; placement must fall through to the
	// healthy triangle below it.
	floorTri(geo,
		math.Vec3{X: 0, Y: 9, Z: 0}, math.Vec3{X: 1, Y: 9, Z: 1}, math.Vec3{X: 2, Y: 9, Z: 2},
		math.Vec2{}, grid.DefaultMask, 2)
	a, b, c := coveringTri(1)
	floorTri(geo, a, b, c, math.Vec2{}, grid.DefaultMask, 2)

	eng := NewEngine(testGrassOptions(), nil)
	placed := eng.Place(oneCellChunk(geo))
	if placed != 4 {
		t.Fatalf("placed %d instances, want 4", placed)
	}
	for i, inst := range eng.Instances()[:placed] {
		p := inst.Transform.TransformPoint(math.Vec3{})
		if absf(p.Y-1) > 1e-4 {
			t.Errorf("instance %d sits at y=%v, want the healthy triangle's height 1", i, p.Y)
		}
	}
}

func TestPlace_HiddenSlotsAndCapacity(t *testing.T) {
	opts := testGrassOptions()
	eng := NewEngine(opts, nil)

	// No floor geometry: everything stays hidden on the degenerate
	// transform.
	if placed := eng.Place(oneCellChunk(terrain.NewCellGeometry())); placed != 0 {
		t.Fatalf("placed %d on empty geometry, want 0", placed)
	}
	if eng.Capacity() != 4 {
		t.Fatalf("capacity %d, want 4", eng.Capacity())
	}
	for i, inst := range eng.Instances() {
		if !inst.Hidden {
			t.Errorf("instance %d not hidden", i)
		}
		p := inst.Transform.TransformPoint(math.Vec3{X: 5, Y: 5, Z: 5})
		if p.X != 0 || p.Y != -1e4 || p.Z != 0 {
			t.Errorf("instance %d: degenerate transform maps to %v, want (0, -10000, 0)", i, p)
		}
	}

	// A larger chunk grows the buffer.
	four := &terrain.Chunk{
		CellsW: 2, CellsH: 2, CellSize: 1,
		Cells: make([]*terrain.CellGeometry, 4),
		Cases: make([]terrain.CellCase, 4),
	}
	eng.Place(four)
	if eng.Capacity() != 16 {
		t.Fatalf("capacity %d after the larger chunk, want 16", eng.Capacity())
	}

	// Back to the small chunk: the buffer never shrinks and leftover
	// slots return to hidden.
	geo := terrain.NewCellGeometry()
	a, b, c := coveringTri(0)
	floorTri(geo, a, b, c, math.Vec2{}, grid.DefaultMask, 2)
	if placed := eng.Place(oneCellChunk(geo)); placed != 4 {
		t.Fatalf("placed %d, want 4", placed)
	}
	if eng.Capacity() != 16 {
		t.Errorf("capacity shrank to %d, want 16", eng.Capacity())
	}
	hidden := 0
	for _, inst := range eng.Instances() {
		if inst.Hidden {
			hidden++
		}
	}
	if hidden != 12 {
		t.Errorf("%d hidden slots, want 12", hidden)
	}
}

func TestPlace_TintAndTransform(t *testing.T) {
	geo := terrain.NewCellGeometry()
	a, b, c := coveringTri(3)
	floorTri(geo, a, b, c, math.Vec2{}, grid.DefaultMask, 2)

	opts := testGrassOptions()
	opts.BaseScale = 0.8
	img := tint.Solid(grid.Color{0.2, 0.4, 0.6, 1})
	eng := NewEngine(opts, img)
	placed := eng.Place(oneCellChunk(geo))
	if placed != 4 {
		t.Fatalf("placed %d, want 4", placed)
	}

	want := grid.Color{0.2, 0.4, 0.6, float32(2) / 15}
	for i, inst := range eng.Instances()[:placed] {
		if inst.Color != want {
			t.Errorf("instance %d: color %v, want %v", i, inst.Color, want)
		}
		origin := inst.Transform.TransformPoint(math.Vec3{})
		if absf(origin.Y-3) > 1e-4 {
			t.Errorf("instance %d: y=%v, want the floor height 3", i, origin.Y)
		}
		if origin.X < 0 || origin.X > 1 || origin.Z < 0 || origin.Z > 1 {
			t.Errorf("instance %d: origin %v outside the cell", i, origin)
		}
		up := inst.Transform.TransformDirection(math.Vec3{Y: 1})
		if absf(up.Length()-0.8) > 1e-4 {
			t.Errorf("instance %d: scaled axis length %v, want 0.8", i, up.Length())
		}
	}
}

func TestPlace_GeneratedChunkReproducible(t *testing.T) {
	g := grid.New(4, 4)
	gen := terrain.NewGenerator(g, terrain.DefaultOptions())
	ch := gen.BuildAll()

	opts := testGrassOptions()
	first := NewEngine(opts, nil)
	second := NewEngine(opts, nil)
	a := first.Place(ch)
	b := second.Place(ch)

	if a != b {
		t.Fatalf("same seed placed %d and %d instances", a, b)
	}
	full := 9 * opts.Subdivisions * opts.Subdivisions
	if a != full {
		t.Errorf("placed %d on a flat 3x3 grid, want full coverage %d", a, full)
	}

	fi := first.Instances()
	si := second.Instances()
	for i := range fi {
		if fi[i].Transform != si[i].Transform || fi[i].Color != si[i].Color || fi[i].Hidden != si[i].Hidden {
			t.Fatalf("instance %d differs between identically seeded engines", i)
		}
	}
}
