package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/spritepack/pkg/document"
)

// FrameExport configures per-frame file output.
type FrameExport struct {
	Enabled bool
	// Dir is the frames directory; empty derives "<stem>_sprites" next to
	// the sheet.
	Dir string
	// ForceNew probes numerically suffixed directory names instead of
	// reusing an existing one.
	ForceNew bool
	// Cleanup removes the frames directory once the sheet has been
	// written, treating the frame files as temporaries.
	Cleanup bool
}

// Options is the full per-invocation export configuration. A fresh value is
// passed into every Export call; nothing persists between runs.
type Options struct {
	// ExportPath is the sheet destination. A missing extension defaults
	// to .png; the extension picks the encoder (png, bmp, jpeg, gif).
	ExportPath string

	Range             FrameRange
	UniqueFrames      bool
	LayersAsAnimation bool

	Horizontal bool
	Rows       int
	Columns    int
	Pad        Edges

	Frames     FrameExport
	WriteAtlas bool

	// Background fills the sheet before frames are placed; nil leaves it
	// transparent.
	Background color.Color

	Caps document.Capabilities
}

// Result reports what an export produced.
type Result struct {
	SheetPath  string
	AtlasPath  string
	FramesDir  string
	FrameCount int
	Grid       Grid
}

// Exporter runs spritesheet exports.
type Exporter struct {
	log *zap.Logger
}

// New creates an Exporter. A nil logger disables logging.
func New(log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{log: log}
}

// Export collects frames from doc, packs them into a grid and writes the
// sheet, plus optional per-frame files and a JSON atlas. A nil document is
// a no-op. Partial output is not rolled back on error.
func (e *Exporter) Export(doc document.Document, opts Options) (*Result, error) {
	if doc == nil {
		e.log.Debug("no document to export")
		return nil, nil
	}

	sheetPath := opts.ExportPath
	if filepath.Ext(sheetPath) == "" {
		sheetPath += ".png"
	}

	var frames []Frame
	if opts.LayersAsAnimation {
		frames = CollectLayers(doc, opts.Pad, opts.UniqueFrames)
	} else {
		r := opts.Range.Resolve(doc, opts.Caps)
		e.log.Debug("resolved frame range",
			zap.Int("start", r.Start), zap.Int("end", r.End), zap.Int("step", r.Step))
		frames = CollectTimeline(doc, r, opts.Pad, opts.UniqueFrames)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("document %q produced no frames", doc.Name())
	}

	grid := Pack(len(frames), opts.Rows, opts.Columns)
	cellW, cellH := frames[0].Width, frames[0].Height
	e.log.Debug("packed grid",
		zap.Int("frames", len(frames)),
		zap.Int("rows", grid.Rows), zap.Int("columns", grid.Columns),
		zap.Int("cell_w", cellW), zap.Int("cell_h", cellH))

	res := &Result{
		SheetPath:  sheetPath,
		FrameCount: len(frames),
		Grid:       grid,
	}

	if opts.Frames.Enabled {
		dir, err := makeFramesDir(sheetPath, opts.Frames)
		if err != nil {
			return nil, err
		}
		res.FramesDir = dir
	}

	sheet := image.NewRGBA(image.Rect(0, 0, grid.Columns*cellW, grid.Rows*cellH))
	if opts.Background != nil {
		xdraw.Draw(sheet, sheet.Bounds(), image.NewUniform(opts.Background), image.Point{}, xdraw.Src)
	}

	var atlas *Atlas
	if opts.WriteAtlas {
		atlas = &Atlas{}
	}

	places := Placements(len(frames), grid, opts.Horizontal, cellW, cellH)
	for i := range frames {
		frame := &frames[i]
		pos := places[i]

		if res.FramesDir != "" {
			if err := writeFrameFile(res.FramesDir, sheetPath, frame); err != nil {
				return nil, err
			}
		}

		cell := image.Rectangle{Min: pos, Max: pos.Add(image.Point{X: cellW, Y: cellH})}
		xdraw.Draw(sheet, cell, frame.Image(), image.Point{}, xdraw.Over)

		if atlas != nil {
			atlas.Add(frame.Index, pos.X, pos.Y, cellW, cellH)
		}
	}

	if err := writeSheet(sheetPath, sheet); err != nil {
		return nil, err
	}
	e.log.Info("wrote spritesheet",
		zap.String("path", sheetPath),
		zap.Int("frames", len(frames)),
		zap.Int("rows", grid.Rows), zap.Int("columns", grid.Columns))

	if atlas != nil {
		res.AtlasPath = sidecarPath(sheetPath, ".json")
		if err := atlas.WriteFile(res.AtlasPath); err != nil {
			return nil, err
		}
		e.log.Debug("wrote texture atlas", zap.String("path", res.AtlasPath))
	}

	if res.FramesDir != "" && opts.Frames.Cleanup {
		if err := os.RemoveAll(res.FramesDir); err != nil {
			return nil, fmt.Errorf("removing temporary frames: %w", err)
		}
		e.log.Debug("removed temporary frames", zap.String("dir", res.FramesDir))
		res.FramesDir = ""
	}

	return res, nil
}

// makeFramesDir creates the directory for per-frame files. An existing
// directory is reused unless ForceNew is set, in which case numerically
// suffixed names are probed until a free one is found.
func makeFramesDir(sheetPath string, cfg FrameExport) (string, error) {
	var dir string
	if cfg.Dir != "" {
		dir = cfg.Dir
	} else {
		stem := strings.TrimSuffix(filepath.Base(sheetPath), filepath.Ext(sheetPath))
		dir = filepath.Join(filepath.Dir(sheetPath), stem+"_sprites")
	}

	if _, err := os.Stat(dir); err == nil {
		if !cfg.ForceNew {
			return dir, nil
		}
		base := dir
		for n := 0; ; n++ {
			dir = base + strconv.Itoa(n)
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				break
			}
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating frames directory: %w", err)
	}
	return dir, nil
}

// writeFrameFile writes one frame as "<base><index %03d><ext>" in dir.
func writeFrameFile(dir, sheetPath string, frame *Frame) error {
	ext := filepath.Ext(sheetPath)
	stem := strings.TrimSuffix(filepath.Base(sheetPath), ext)
	name := fmt.Sprintf("%s%03d%s", stem, frame.Index, ext)
	return writeSheet(filepath.Join(dir, name), frame.Image())
}

// writeSheet encodes img to path, picking the encoder by extension.
func writeSheet(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	case ".gif":
		err = gif.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// sidecarPath swaps the sheet extension for ext.
func sidecarPath(sheetPath, ext string) string {
	return strings.TrimSuffix(sheetPath, filepath.Ext(sheetPath)) + ext
}
