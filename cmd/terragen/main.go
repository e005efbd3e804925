// Package main is the entry point for the terragen authoring tool: it
// loads a grid, meshes it, and scatters grass over the result.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Ladvien/pixy-terrain/internal/config"
	"github.com/Ladvien/pixy-terrain/internal/demo"
	"github.com/Ladvien/pixy-terrain/internal/engine/grass"
	"github.com/Ladvien/pixy-terrain/internal/engine/terrain"
	"github.com/Ladvien/pixy-terrain/internal/engine/tint"
	"github.com/Ladvien/pixy-terrain/internal/logger"
	"github.com/Ladvien/pixy-terrain/pkg/grid"
)

// Demo landscape used when no grid file exists yet.
const demoPoints = 64

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Default(cfg.Logging.Level, cfg.Logging.LogFile))
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("build failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	g, err := loadGrid(cfg.Data.GridPath, cfg.Grass.Seed, log)
	if err != nil {
		return err
	}

	gen := terrain.NewGenerator(g, meshOptions(cfg, log))
	ch := gen.BuildChunkParallel(0, 0, g.CellsW(), g.CellsH(), cfg.Mesh.Workers)
	st := ch.Stats()
	log.Info("terrain built",
		zap.Int("cells", len(ch.Cells)),
		zap.Int("vertices", st.Vertices),
		zap.Int("floor_tris", st.FloorTris),
		zap.Int("wall_tris", st.WallTris))

	eng := grass.NewEngine(grassOptions(cfg, log), loadTint(cfg, log))
	placed := eng.Place(ch)
	log.Info("grass placed",
		zap.Int("instances", placed),
		zap.Int("capacity", eng.Capacity()))
	return nil
}

// loadGrid reads the configured grid file, or falls back to a demo
// landscape when no file exists yet.
func loadGrid(path string, seed uint64, log *zap.Logger) (*grid.Grid, error) {
	g, err := grid.Load(path)
	if err == nil {
		log.Info("grid loaded",
			zap.String("path", path),
			zap.Int("points_w", g.PointsW),
			zap.Int("points_h", g.PointsH))
		return g, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	log.Warn("grid file missing, generating demo landscape", zap.String("path", path))
	return demo.Grid(demoPoints, demoPoints, seed), nil
}

func loadTint(cfg *config.Config, log *zap.Logger) *tint.Image {
	if cfg.Grass.TintTexture == "" {
		return nil
	}
	img, err := tint.NewStore(cfg.Data.TextureDir).Load(cfg.Grass.TintTexture)
	if err != nil {
		log.Warn("tint texture unavailable, using flat white",
			zap.String("name", cfg.Grass.TintTexture),
			zap.Error(err))
		return nil
	}
	return img
}

func meshOptions(cfg *config.Config, log *zap.Logger) terrain.Options {
	return terrain.Options{
		CellSize:            cfg.Mesh.CellSize,
		MergeThreshold:      cfg.Mesh.MergeThreshold,
		HighPoly:            cfg.Mesh.HighPoly,
		GradientWalls:       cfg.Mesh.GradientWalls,
		DirectBlend:         cfg.Mesh.DirectBlend,
		RidgeColorThreshold: cfg.Mesh.RidgeColorThreshold,
		UVScale:             cfg.Mesh.UVScale,
		DefaultSlot:         cfg.Mesh.DefaultSlot,
		DefaultWallSlot:     cfg.Mesh.DefaultWallSlot,
		Log:                 log,
	}
}

func grassOptions(cfg *config.Config, log *zap.Logger) grass.Options {
	o := grass.DefaultOptions()
	o.Subdivisions = cfg.Grass.Subdivisions
	o.LedgeLimit = cfg.Grass.LedgeLimit
	o.RidgeLimit = cfg.Grass.RidgeLimit
	o.MaskThreshold = cfg.Grass.MaskThreshold
	o.BaseScale = cfg.Grass.BaseScale
	o.ScaleJitter = cfg.Grass.ScaleJitter
	o.Seed = cfg.Grass.Seed
	o.Log = log
	for i := range o.TintScale {
		o.TintScale[i] = cfg.Grass.TintScale
	}
	for _, slot := range cfg.Grass.DisabledSlots {
		if slot >= 0 && slot < len(o.SlotEnabled) {
			o.SlotEnabled[slot] = false
		}
	}
	return o
}
