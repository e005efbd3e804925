package demo

import (
	"testing"

	"github.com/Ladvien/pixy-terrain/internal/engine/palette"
	"github.com/Ladvien/pixy-terrain/internal/engine/terrain"
)

func TestGrid_Deterministic(t *testing.T) {
	a := Grid(24, 24, 7)
	b := Grid(24, 24, 7)

	for i := range a.Heights {
		if a.Heights[i] != b.Heights[i] {
			t.Fatalf("height %d differs across identical seeds: %v vs %v", i, a.Heights[i], b.Heights[i])
		}
		if a.GroundA[i] != b.GroundA[i] || a.Mask[i] != b.Mask[i] {
			t.Fatalf("paint at %d differs across identical seeds", i)
		}
	}

	c := Grid(24, 24, 8)
	same := true
	for i := range a.Heights {
		if a.Heights[i] != c.Heights[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("expected a different seed to produce a different landscape")
	}
}

func TestGrid_TerracedWholeUnits(t *testing.T) {
	g := Grid(32, 32, 42)

	for i, h := range g.Heights {
		if h != float32(int(h)) {
			t.Errorf("height %d = %v, expected a whole terrace unit", i, h)
		}
		if h < 0 || h >= 7 {
			t.Errorf("height %d = %v outside [0, 7)", i, h)
		}
	}
}

func TestGrid_SlotsFollowElevation(t *testing.T) {
	g := Grid(32, 32, 42)

	for z := 0; z < g.PointsH; z++ {
		for x := 0; x < g.PointsW; x++ {
			want := slotLowland
			switch h := g.HeightAt(x, z); {
			case h >= 5:
				want = slotRock
			case h >= 3:
				want = slotMeadow
			}
			ga, gb := g.GroundAt(x, z)
			if got := palette.Decode(ga, gb); got != want {
				t.Fatalf("point (%d,%d): ground slot %d, expected %d", x, z, got, want)
			}
			wa, wb := g.WallAt(x, z)
			if got := palette.Decode(wa, wb); got != slotCliff {
				t.Fatalf("point (%d,%d): wall slot %d, expected %d", x, z, got, slotCliff)
			}
		}
	}
}

func TestGrid_MaskPaintIsExplicit(t *testing.T) {
	g := Grid(32, 32, 42)

	painted := 0
	for z := 0; z < g.PointsH; z++ {
		for x := 0; x < g.PointsW; x++ {
			m := g.MaskAt(x, z)
			if m[3] != 1 {
				t.Fatalf("point (%d,%d): mask alpha %v, painted and default masks both carry 1", x, z, m[3])
			}
			if m[0] != 0 && m[0] != 0.35 && m[0] != 1 {
				t.Fatalf("point (%d,%d): unexpected mask density %v", x, z, m[0])
			}
			if m[1] == 1 && m[0] != 1 {
				t.Fatalf("point (%d,%d): forced meadow should keep full density, got %v", x, z, m[0])
			}
			if !g.Mask[g.Index(x, z)].IsZero() {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("expected the generator to paint at least some mask patches")
	}
}

func TestGrid_ClampsToOneCell(t *testing.T) {
	g := Grid(0, 1, 3)
	if g.PointsW != 2 || g.PointsH != 2 {
		t.Errorf("expected a 2x2 minimum grid, got %dx%d", g.PointsW, g.PointsH)
	}
}

func TestGrid_MeshesIntoTerraces(t *testing.T) {
	g := Grid(33, 33, 12345)
	gen := terrain.NewGenerator(g, terrain.DefaultOptions())
	st := gen.BuildAll().Stats()

	if st.Triangles == 0 {
		t.Fatal("expected the demo landscape to mesh into triangles")
	}
	if st.FloorTris == 0 {
		t.Error("expected floor triangles on the terraces")
	}
	if st.WallTris == 0 {
		t.Error("expected wall triangles between terrace steps")
	}
}
