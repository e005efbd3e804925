package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagGrid         = flag.String("grid", "", "Path to the grid file")
	flagWorkers      = flag.Int("workers", 0, "Generation worker count (0 = one per CPU)")
	flagHighPoly     = flag.Bool("highpoly", false, "Generate four-triangle floor fans")
	flagSeed         = flag.Uint64("seed", 0, "Grass placement seed")
	flagSubdivisions = flag.Int("subdivisions", 0, "Grass candidate points per cell axis")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagGrid != "" {
		cfg.Data.GridPath = *flagGrid
	}
	if *flagWorkers > 0 {
		cfg.Mesh.Workers = *flagWorkers
	}
	if *flagHighPoly {
		cfg.Mesh.HighPoly = true
	}
	if *flagSeed != 0 {
		cfg.Grass.Seed = *flagSeed
	}
	if *flagSubdivisions > 0 {
		cfg.Grass.Subdivisions = *flagSubdivisions
	}
}
