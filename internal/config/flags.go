package config

import "flag"

var (
	flags *flag.FlagSet

	flagConfig     *string
	flagDebug      *bool
	flagOutput     *string
	flagBackground *string
	flagRows       *int
	flagColumns    *int
	flagVertical   *bool
	flagStart      *int
	flagEnd        *int
	flagStep       *int
	flagUnique     *bool
	flagLayers     *bool
	flagSprites    *bool
	flagSpritesDir *string
	flagForceNew   *bool
	flagCleanup    *bool
	flagAtlas      *bool
	flagPad        *int
)

// RegisterFlags declares the export flags on fs. Call before fs.Parse; the
// parsed values override file configuration in Load.
func RegisterFlags(fs *flag.FlagSet) {
	flags = fs

	flagConfig = fs.String("config", "", "Path to config file")
	flagDebug = fs.Bool("debug", false, "Enable debug logging")
	flagOutput = fs.String("o", "", "Sheet output path (extension picks the format)")
	flagBackground = fs.String("background", "", "Sheet background fill color (#rrggbb)")
	flagRows = fs.Int("rows", 0, "Grid rows (0 = infer)")
	flagColumns = fs.Int("columns", 0, "Grid columns (0 = infer)")
	flagVertical = fs.Bool("vertical", false, "Fill the grid column-major")
	flagStart = fs.Int("start", -1, "First frame time (-1 = infer)")
	flagEnd = fs.Int("end", -1, "Last frame time (-1 = infer)")
	flagStep = fs.Int("step", 1, "Frame time step")
	flagUnique = fs.Bool("unique", false, "Skip byte-identical duplicate frames")
	flagLayers = fs.Bool("layers", false, "Treat visible layers as animation frames")
	flagSprites = fs.Bool("sprites", false, "Also write each frame to its own file")
	flagSpritesDir = fs.String("sprites-dir", "", "Custom frames directory")
	flagForceNew = fs.Bool("force-new", false, "Never reuse an existing frames directory")
	flagCleanup = fs.Bool("cleanup", false, "Remove the frames directory after the sheet is written")
	flagAtlas = fs.Bool("atlas", false, "Write a JSON texture atlas beside the sheet")
	flagPad = fs.Int("pad", 0, "Uniform padding around each frame in pixels")
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	if flagConfig == nil {
		return ""
	}
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config. Only flags the user
// actually set on the command line override file values.
func applyFlags(cfg *Config) {
	if flags == nil {
		return
	}

	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["debug"] && *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if set["o"] {
		cfg.Output.Path = *flagOutput
	}
	if set["background"] {
		cfg.Output.Background = *flagBackground
	}
	if set["rows"] {
		cfg.Output.Rows = *flagRows
	}
	if set["columns"] {
		cfg.Output.Columns = *flagColumns
	}
	if set["vertical"] {
		cfg.Output.Horizontal = !*flagVertical
	}
	if set["start"] {
		cfg.Frames.Start = *flagStart
	}
	if set["end"] {
		cfg.Frames.End = *flagEnd
	}
	if set["step"] {
		cfg.Frames.Step = *flagStep
	}
	if set["unique"] {
		cfg.Frames.Unique = *flagUnique
	}
	if set["layers"] {
		cfg.Frames.LayersAsAnimation = *flagLayers
	}
	if set["sprites"] {
		cfg.Sprites.Enabled = *flagSprites
	}
	if set["sprites-dir"] {
		cfg.Sprites.Dir = *flagSpritesDir
		cfg.Sprites.Enabled = true
	}
	if set["force-new"] {
		cfg.Sprites.ForceNew = *flagForceNew
	}
	if set["cleanup"] {
		cfg.Sprites.Cleanup = *flagCleanup
	}
	if set["atlas"] {
		cfg.Atlas.Enabled = *flagAtlas
	}
	if set["pad"] {
		cfg.Padding = PaddingConfig{
			Left:   *flagPad,
			Top:    *flagPad,
			Right:  *flagPad,
			Bottom: *flagPad,
		}
	}
}
