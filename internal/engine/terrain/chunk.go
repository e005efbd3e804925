package terrain

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/Ladvien/pixy-terrain/internal/engine/palette"
	"github.com/Ladvien/pixy-terrain/pkg/grid"
)

// Generator turns grid cells into geometry with one fixed option set.
// It only reads the grid, so a single Generator may serve concurrent
// builds.
type Generator struct {
	grid *grid.Grid
	opts Options
}

func NewGenerator(g *grid.Grid, opts Options) *Generator {
	return &Generator{grid: g, opts: opts}
}

// BuildCell generates one cell from scratch and reports which case
// the dispatcher picked.
func (gen *Generator) BuildCell(cx, cz int) (*CellGeometry, CellCase) {
	out := NewCellGeometry()
	ctx := NewContext(gen.grid, cx, cz, &gen.opts)
	cc := Generate(ctx, out)
	return out, cc
}

// Chunk holds the generated geometry for a rectangle of cells in
// row-major order. Cell geometry is always replaced whole, never
// patched.
type Chunk struct {
	CellX, CellZ   int
	CellsW, CellsH int
	CellSize       float32
	Cells          []*CellGeometry
	Cases          []CellCase
}

// CellAt returns the geometry for grid cell (cx, cz), or nil when the
// cell lies outside the chunk.
func (c *Chunk) CellAt(cx, cz int) *CellGeometry {
	lx, lz := cx-c.CellX, cz-c.CellZ
	if lx < 0 || lz < 0 || lx >= c.CellsW || lz >= c.CellsH {
		return nil
	}
	return c.Cells[lz*c.CellsW+lx]
}

// BuildChunk generates the rectangle of cells at (cx, cz) sized w by
// h, clamped to the grid.
func (gen *Generator) BuildChunk(cx, cz, w, h int) *Chunk {
	ch := gen.newChunk(cx, cz, w, h)
	for i := range ch.Cells {
		lx, lz := i%ch.CellsW, i/ch.CellsW
		ch.Cells[i], ch.Cases[i] = gen.BuildCell(ch.CellX+lx, ch.CellZ+lz)
	}
	gen.logChunk(ch, 1)
	return ch
}

// BuildChunkParallel generates the same chunk with a worker pool.
// Cells read shared grid data and each writes only its own slot, so
// the job channel is the only coordination needed. workers < 1 means
// one per CPU.
func (gen *Generator) BuildChunkParallel(cx, cz, w, h, workers int) *Chunk {
	ch := gen.newChunk(cx, cz, w, h)
	n := len(ch.Cells)
	if n == 0 {
		return ch
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				lx, lz := idx%ch.CellsW, idx/ch.CellsW
				ch.Cells[idx], ch.Cases[idx] = gen.BuildCell(ch.CellX+lx, ch.CellZ+lz)
			}
		}()
	}
	for idx := 0; idx < n; idx++ {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	gen.logChunk(ch, workers)
	return ch
}

// BuildAll generates every cell of the grid as one chunk.
func (gen *Generator) BuildAll() *Chunk {
	return gen.BuildChunk(0, 0, gen.grid.CellsW(), gen.grid.CellsH())
}

// RebuildCell regenerates a single cell of an existing chunk,
// replacing its geometry outright, and clears the cell's dirty flag.
// Returns nil when the cell is outside the chunk.
func (gen *Generator) RebuildCell(ch *Chunk, cx, cz int) *CellGeometry {
	lx, lz := cx-ch.CellX, cz-ch.CellZ
	if lx < 0 || lz < 0 || lx >= ch.CellsW || lz >= ch.CellsH {
		return nil
	}
	geo, cc := gen.BuildCell(cx, cz)
	i := lz*ch.CellsW + lx
	ch.Cells[i] = geo
	ch.Cases[i] = cc
	gen.grid.ClearDirty(cx, cz)
	return geo
}

// RebuildDirty regenerates every chunk cell the grid has marked dirty
// and reports how many were rebuilt.
func (gen *Generator) RebuildDirty(ch *Chunk) int {
	n := 0
	for lz := 0; lz < ch.CellsH; lz++ {
		for lx := 0; lx < ch.CellsW; lx++ {
			cx, cz := ch.CellX+lx, ch.CellZ+lz
			if !gen.grid.IsDirty(cx, cz) {
				continue
			}
			gen.RebuildCell(ch, cx, cz)
			n++
		}
	}
	return n
}

func (gen *Generator) newChunk(cx, cz, w, h int) *Chunk {
	cx, cz, w, h = clampRect(cx, cz, w, h, gen.grid.CellsW(), gen.grid.CellsH())
	return &Chunk{
		CellX:    cx,
		CellZ:    cz,
		CellsW:   w,
		CellsH:   h,
		CellSize: gen.opts.CellSize,
		Cells:    make([]*CellGeometry, w*h),
		Cases:    make([]CellCase, w*h),
	}
}

func (gen *Generator) logChunk(ch *Chunk, workers int) {
	s := ch.Stats()
	gen.opts.logger().Debug("chunk generated",
		zap.Int("cellX", ch.CellX), zap.Int("cellZ", ch.CellZ),
		zap.Int("cellsW", ch.CellsW), zap.Int("cellsH", ch.CellsH),
		zap.Int("vertices", s.Vertices), zap.Int("triangles", s.Triangles),
		zap.Int("workers", workers))
}

func clampRect(x, z, w, h, maxW, maxH int) (int, int, int, int) {
	if x < 0 {
		w += x
		x = 0
	}
	if z < 0 {
		h += z
		z = 0
	}
	if x+w > maxW {
		w = maxW - x
	}
	if z+h > maxH {
		h = maxH - z
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return x, z, w, h
}

// Stats summarizes a chunk for logging and tooling.
type Stats struct {
	Vertices  int
	Triangles int
	FloorTris int
	WallTris  int
	Cases     [6]int

	// Slots counts cells by their dominant texture slot, from the
	// packed blend attribute.
	Slots [palette.SlotCount]int
}

func (c *Chunk) Stats() Stats {
	var s Stats
	for i, geo := range c.Cells {
		if geo == nil {
			continue
		}
		s.Vertices += geo.VertexCount()
		s.Triangles += geo.TriangleCount()
		for t := 0; t < geo.TriangleCount(); t++ {
			if geo.Floor[t*3] {
				s.FloorTris++
			} else {
				s.WallTris++
			}
		}
		s.Cases[c.Cases[i]]++
		if geo.VertexCount() > 0 {
			// Dominant ids are uniform across the cell, so any
			// vertex's packed channel works.
			s.Slots[int(geo.Blend[0][0])/16]++
		}
	}
	return s
}
