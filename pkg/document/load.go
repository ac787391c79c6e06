package document

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/jpeg" // frame decoders
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// Loader errors.
var (
	ErrNoImages       = errors.New("no image files in directory")
	ErrEmptyAnimation = errors.New("animation has no frames")
)

// Load builds a document from path: an animated GIF, a directory of frame
// images, or a single still image. For directories, stack selects one paint
// layer per file (layers-as-animation input) instead of a keyframe sequence.
func Load(path string, stack bool) (*MemDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if info.IsDir() {
		if stack {
			return LoadStack(path)
		}
		return LoadSequence(path)
	}
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		return LoadGIF(path)
	}
	return LoadImage(path)
}

// LoadGIF builds a document from an animated GIF: one animated layer with a
// keyframe per GIF frame, coalesced according to each frame's disposal mode.
func LoadGIF(path string) (*MemDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening GIF: %w", err)
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("decoding GIF %s: %w", path, err)
	}
	if len(g.Image) == 0 {
		return nil, ErrEmptyAnimation
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Dx(), b.Dy()
	}

	doc := NewMemDocument(docName(path), w, h)
	doc.SetClipRange(0, len(g.Image)-1)
	layer := doc.AddLayer("animation")

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	var restore *image.RGBA
	for i, frame := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			restore = cloneRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		layer.SetKeyframe(i, cloneRGBA(canvas))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			if restore != nil {
				canvas = restore
			}
		}
	}
	return doc, nil
}

// LoadSequence builds a document from a directory of frame images: files
// sorted by name become keyframes 0..n-1 on a single animated layer.
func LoadSequence(dir string) (*MemDocument, error) {
	paths, err := listImages(dir)
	if err != nil {
		return nil, err
	}

	var doc *MemDocument
	var layer *MemLayer
	for i, p := range paths {
		img, err := decodeImage(p)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			b := img.Bounds()
			doc = NewMemDocument(docName(dir), b.Dx(), b.Dy())
			doc.SetClipRange(0, len(paths)-1)
			layer = doc.AddLayer("animation")
		}
		layer.SetKeyframe(i, img)
	}
	return doc, nil
}

// LoadStack builds a document from a directory of images where every file is
// its own visible paint layer, bottom of the stack first in name order. The
// clip range is a single frame; this feeds layers-as-animation exports.
func LoadStack(dir string) (*MemDocument, error) {
	paths, err := listImages(dir)
	if err != nil {
		return nil, err
	}

	var doc *MemDocument
	for _, p := range paths {
		img, err := decodeImage(p)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			b := img.Bounds()
			doc = NewMemDocument(docName(dir), b.Dx(), b.Dy())
		}
		layer := doc.AddLayer(docName(p))
		layer.SetKeyframe(0, img)
	}
	return doc, nil
}

// LoadImage builds a single-frame, single-layer document from a still image.
func LoadImage(path string) (*MemDocument, error) {
	img, err := decodeImage(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	doc := NewMemDocument(docName(path), b.Dx(), b.Dy())
	doc.AddLayer(docName(path)).SetKeyframe(0, img)
	return doc, nil
}

// listImages returns the image files in dir sorted by name.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif", ".bmp":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoImages, dir)
	}
	sort.Strings(paths)
	return paths, nil
}

// decodeImage reads an image file and normalizes it to RGBA at origin.
func decodeImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out, nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}

// docName derives a document name from a file or directory path.
func docName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
