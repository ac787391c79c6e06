// Package config handles exporter configuration loading and management.
package config

// Config holds all exporter settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Frames  FramesConfig  `yaml:"frames"`
	Sprites SpritesConfig `yaml:"sprites"`
	Atlas   AtlasConfig   `yaml:"atlas"`
	Padding PaddingConfig `yaml:"padding"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds sheet destination and grid settings.
type OutputConfig struct {
	Path string `yaml:"path"` // Sheet path; extension picks the encoder
	// Background is a hex fill color ("#rrggbb"); empty keeps the sheet
	// transparent.
	Background string `yaml:"background"`
	Horizontal bool   `yaml:"horizontal"`
	Rows       int    `yaml:"rows"`    // 0 = infer
	Columns    int    `yaml:"columns"` // 0 = infer
}

// FramesConfig holds frame selection settings.
type FramesConfig struct {
	Start             int  `yaml:"start"` // -1 = infer from clip range
	End               int  `yaml:"end"`   // -1 = infer from clip range
	Step              int  `yaml:"step"`
	Unique            bool `yaml:"unique"`
	LayersAsAnimation bool `yaml:"layers_as_animation"`
}

// SpritesConfig holds per-frame file export settings.
type SpritesConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Dir      string `yaml:"dir"` // empty derives "<sheet>_sprites"
	ForceNew bool   `yaml:"force_new"`
	Cleanup  bool   `yaml:"cleanup"`
}

// AtlasConfig holds texture atlas settings.
type AtlasConfig struct {
	Enabled bool `yaml:"enabled"`
}

// PaddingConfig holds per-edge frame padding in pixels.
type PaddingConfig struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Path:       "spritesheet.png",
			Horizontal: true,
		},
		Frames: FramesConfig{
			Start: -1,
			End:   -1,
			Step:  1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
