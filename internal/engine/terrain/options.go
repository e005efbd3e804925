// Package terrain converts per-cell authoring data into triangulated
// floor and wall geometry. Each cell is classified into one of a small
// set of canonical shapes by its corner height relations; rotational
// symmetry reduces the geometry code to one canonical orientation per
// shape.
package terrain

import "go.uber.org/zap"

// Options are the per-generation tuning knobs.
type Options struct {
	// MergeThreshold is the dead zone for corner height comparison:
	// two corners closer than this merge into one surface.
	MergeThreshold float32

	// HighPoly replaces two-triangle floor quads with a four-triangle
	// center fan, avoiding the bowtie on non-planar cells.
	HighPoly bool

	// CellSize is the world-space edge length of one cell.
	CellSize float32

	// RidgeColorThreshold promotes floor vertices whose ridge
	// proximity meets it to the wall color maps, so cliff lips roll
	// over visually.
	RidgeColorThreshold float32

	// DefaultSlot and DefaultWallSlot are the texture slots assumed
	// for unpainted ground and wall points.
	DefaultSlot     int
	DefaultWallSlot int

	// UVScale scales the world-projected UV channel.
	UVScale float32

	// GradientWalls blends wall colors between the cell's lowest and
	// highest corner paint by height instead of bilinearly.
	GradientWalls bool

	// DirectBlend passes interpolated colors through without one-hot
	// snapping and keeps floor vertices on the floor maps.
	DirectBlend bool

	// Log receives diagnostics for malformed inputs. Nil means no
	// logging.
	Log *zap.Logger
}

// DefaultOptions returns the options used by the authoring tool out of
// the box.
func DefaultOptions() Options {
	return Options{
		MergeThreshold:      0.5,
		HighPoly:            false,
		CellSize:            1.0,
		RidgeColorThreshold: 0.9,
		DefaultSlot:         0,
		DefaultWallSlot:     4,
		UVScale:             0.25,
		GradientWalls:       true,
		DirectBlend:         false,
	}
}

func (o *Options) logger() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}
