// spritepack is a CLI that assembles animation frames into a spritesheet.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/spritepack/internal/config"
	"github.com/Faultbox/spritepack/internal/export"
	"github.com/Faultbox/spritepack/internal/logger"
	"github.com/Faultbox/spritepack/pkg/document"
)

var commands = []string{"export", "inspect", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "export", "x":
		cmdExport(args)
	case "inspect", "info":
		cmdInspect(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := closestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean %q?\n", suggestion)
		}
		printUsage()
		os.Exit(1)
	}
}

// closestCommand returns the known command nearest to input, or "" when
// nothing is close enough to be a plausible typo.
func closestCommand(input string) string {
	best := ""
	bestDist := 3 // allow at most two edits
	for _, c := range commands {
		if d := levenshtein.ComputeDistance(strings.ToLower(input), c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func printUsage() {
	fmt.Println(`spritepack - assemble animation frames into a spritesheet

Usage:
  spritepack <command> [options] <input>

Commands:
  export <input>   Export a spritesheet from a GIF, image directory, or still
  inspect <input>  Show document information (canvas, clip range, layers)
  help             Show this help

Export options:
  -o path          Sheet output path (extension picks the format, default .png)
  -rows n          Grid rows (0 = infer)
  -columns n       Grid columns (0 = infer)
  -vertical        Fill the grid column-major instead of row-major
  -start/-end/-step  Frame time range (-1 = infer from the clip range)
  -unique          Skip byte-identical duplicate frames
  -layers          Treat visible layers as animation frames
  -sprites         Also write each frame to its own file
  -sprites-dir d   Custom frames directory (implies -sprites)
  -force-new       Never reuse an existing frames directory
  -cleanup         Remove the frames directory after the sheet is written
  -atlas           Write a JSON texture atlas beside the sheet
  -pad n           Uniform padding around each frame
  -background hex  Sheet background fill color (#rrggbb)
  -config path     Config file (default ./spritepack.yaml)

Examples:
  spritepack export walk.gif -o walk_sheet.png -atlas
  spritepack export frames/ -columns 8 -unique
  spritepack export layers/ -layers -sprites -force-new
  spritepack inspect walk.gif`)
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	config.RegisterFlags(fs)
	noScan := fs.Bool("no-keyframe-scan", false, "Do not scan layers for keyframes when inferring the range")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: spritepack export [options] <input>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	doc, err := document.Load(fs.Arg(0), cfg.Frames.LayersAsAnimation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts, err := optionsFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts.Caps = document.Capabilities{KeyframeQueries: !*noScan}

	res, err := export.New(logger.Log).Export(doc, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	if res == nil {
		return
	}

	fmt.Printf("Sheet:  %s (%d frames, %dx%d cells)\n",
		res.SheetPath, res.FrameCount, res.Grid.Columns, res.Grid.Rows)
	if res.AtlasPath != "" {
		fmt.Printf("Atlas:  %s\n", res.AtlasPath)
	}
	if res.FramesDir != "" {
		fmt.Printf("Frames: %s\n", res.FramesDir)
	}
}

// optionsFromConfig maps the loaded configuration to export options.
func optionsFromConfig(cfg *config.Config) (export.Options, error) {
	opts := export.Options{
		ExportPath: cfg.Output.Path,
		Range: export.FrameRange{
			Start: cfg.Frames.Start,
			End:   cfg.Frames.End,
			Step:  cfg.Frames.Step,
		},
		UniqueFrames:      cfg.Frames.Unique,
		LayersAsAnimation: cfg.Frames.LayersAsAnimation,
		Horizontal:        cfg.Output.Horizontal,
		Rows:              cfg.Output.Rows,
		Columns:           cfg.Output.Columns,
		Pad: export.Edges{
			Left:   cfg.Padding.Left,
			Top:    cfg.Padding.Top,
			Right:  cfg.Padding.Right,
			Bottom: cfg.Padding.Bottom,
		},
		Frames: export.FrameExport{
			Enabled:  cfg.Sprites.Enabled,
			Dir:      cfg.Sprites.Dir,
			ForceNew: cfg.Sprites.ForceNew,
			Cleanup:  cfg.Sprites.Cleanup,
		},
		WriteAtlas: cfg.Atlas.Enabled,
	}

	if cfg.Output.Background != "" {
		bg, err := colorful.Hex(cfg.Output.Background)
		if err != nil {
			return export.Options{}, fmt.Errorf("parsing background color %q: %w", cfg.Output.Background, err)
		}
		opts.Background = bg
	}

	return opts, nil
}

func cmdInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	layers := fs.Bool("layers", false, "Load directories as layer stacks")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: spritepack inspect <input>")
		os.Exit(1)
	}

	doc, err := document.Load(fs.Arg(0), *layers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := doc.Bounds()
	start, end := doc.ClipRange()
	fmt.Printf("Document: %s\n", doc.Name())
	fmt.Printf("Canvas:   %dx%d\n", b.Dx(), b.Dy())
	fmt.Printf("Clip:     frames %d..%d\n", start, end)
	fmt.Println("Layers:")

	for _, l := range document.Recurse(doc.Root(), false) {
		kind := "group"
		if l.IsPaintLayer() {
			kind = "paint"
		}
		visibility := "hidden"
		if l.Visible() {
			visibility = "visible"
		}

		keyframes := 0
		for t := start; t <= end; t++ {
			if l.HasKeyframeAt(t) {
				keyframes++
			}
		}

		fmt.Printf("  %-20s %-5s %-7s %d keyframes\n", l.Name(), kind, visibility, keyframes)
	}
}
