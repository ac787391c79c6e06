package export

import (
	"image"

	"github.com/Faultbox/spritepack/pkg/document"
)

// Edges is per-edge padding around each frame, in pixels.
type Edges struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Frame is one collected sprite frame: a tightly packed RGBA buffer plus the
// ordinal used for naming and grid placement.
type Frame struct {
	Index  int
	Width  int
	Height int
	Pix    []byte
}

// Image wraps the frame buffer as an image without copying.
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// frameRect is the padded read rectangle for every frame of doc.
func frameRect(doc document.Document, pad Edges) image.Rectangle {
	b := doc.Bounds()
	return image.Rect(
		b.Min.X-pad.Left,
		b.Min.Y-pad.Top,
		b.Max.X+pad.Right,
		b.Max.Y+pad.Bottom,
	)
}

// CollectTimeline reads one frame per time in the resolved range: seek,
// wait for compositing to settle, read the padded pixel rectangle. With
// unique set, frames whose buffers are byte-identical to an earlier frame
// are skipped. The document's original time is restored afterwards.
func CollectTimeline(doc document.Document, r FrameRange, pad Edges, unique bool) []Frame {
	rect := frameRect(doc, pad)
	initial := doc.CurrentTime()
	defer doc.SetCurrentTime(initial)

	var seen map[string]struct{}
	if unique {
		seen = make(map[string]struct{})
	}

	var frames []Frame
	for _, t := range r.Times() {
		doc.SetCurrentTime(t)
		doc.WaitForDone()
		pix := doc.PixelData(rect)

		if seen != nil {
			key := string(pix)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}

		frames = append(frames, Frame{
			Index:  len(frames),
			Width:  rect.Dx(),
			Height: rect.Dy(),
			Pix:    pix,
		})
	}
	return frames
}

// CollectLayers treats each visible paint layer as one frame, depth-first in
// stacking order. Deduplication works the same as in timeline mode.
func CollectLayers(doc document.Document, pad Edges, unique bool) []Frame {
	rect := frameRect(doc, pad)

	var seen map[string]struct{}
	if unique {
		seen = make(map[string]struct{})
	}

	var frames []Frame
	for _, layer := range document.Recurse(doc.Root(), true) {
		if !layer.Visible() {
			continue
		}
		pix := layer.PixelData(rect)

		if seen != nil {
			key := string(pix)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}

		frames = append(frames, Frame{
			Index:  len(frames),
			Width:  rect.Dx(),
			Height: rect.Dy(),
			Pix:    pix,
		})
	}
	return frames
}
