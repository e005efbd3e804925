// Package config handles authoring tool configuration loading and
// management.
package config

// Config holds all tool settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Grass   GrassConfig   `yaml:"grass"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig holds cell geometry generation settings.
type MeshConfig struct {
	CellSize            float32 `yaml:"cell_size"`
	MergeThreshold      float32 `yaml:"merge_threshold"`
	HighPoly            bool    `yaml:"high_poly"`
	GradientWalls       bool    `yaml:"gradient_walls"`
	DirectBlend         bool    `yaml:"direct_blend"`
	RidgeColorThreshold float32 `yaml:"ridge_color_threshold"`
	UVScale             float32 `yaml:"uv_scale"`
	DefaultSlot         int     `yaml:"default_slot"`
	DefaultWallSlot     int     `yaml:"default_wall_slot"`
	Workers             int     `yaml:"workers"` // 0 = one per CPU
}

// GrassConfig holds grass placement settings.
type GrassConfig struct {
	Subdivisions  int     `yaml:"subdivisions"`
	LedgeLimit    float32 `yaml:"ledge_limit"`
	RidgeLimit    float32 `yaml:"ridge_limit"`
	MaskThreshold float32 `yaml:"mask_threshold"`
	DisabledSlots []int   `yaml:"disabled_slots"` // texture slots that never grow grass
	TintTexture   string  `yaml:"tint_texture"`
	TintScale     float32 `yaml:"tint_scale"`
	BaseScale     float32 `yaml:"base_scale"`
	ScaleJitter   float32 `yaml:"scale_jitter"`
	Seed          uint64  `yaml:"seed"`
}

// DataConfig holds input file locations.
type DataConfig struct {
	GridPath   string `yaml:"grid_path"`
	TextureDir string `yaml:"texture_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			CellSize:            1.0,
			MergeThreshold:      0.5,
			HighPoly:            false,
			GradientWalls:       true,
			DirectBlend:         false,
			RidgeColorThreshold: 0.9,
			UVScale:             0.25,
			DefaultSlot:         0,
			DefaultWallSlot:     4,
			Workers:             0,
		},
		Grass: GrassConfig{
			Subdivisions:  3,
			LedgeLimit:    0.5,
			RidgeLimit:    0.5,
			MaskThreshold: 0.5,
			TintScale:     0.25,
			BaseScale:     0.8,
			ScaleJitter:   0.4,
			Seed:          1,
		},
		Data: DataConfig{
			GridPath:   "terrain.pxg",
			TextureDir: "textures",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
