// Package document models the layered, animated image source a spritesheet
// export reads from. The exporter only sees the Document and Layer
// interfaces; concrete sources (GIF animations, image sequences, layer
// stacks) are built as MemDocuments by the loaders in this package.
package document

import "image"

// Capabilities describes what the frame source can answer. It is injected
// from outside the core so the export algorithms never sniff versions.
type Capabilities struct {
	// KeyframeQueries reports whether layers can answer HasKeyframeAt.
	// When false, the resolver takes the clip range as-is instead of
	// scanning for keyframes.
	KeyframeQueries bool
}

// Document is an animated, layered image source. Seeking is modelled after
// a host with an asynchronous compositing pipeline: SetCurrentTime may defer
// work, and WaitForDone blocks until the composite for the current time has
// settled. PixelData must only be called after WaitForDone.
type Document interface {
	Name() string

	// Bounds returns the canvas rectangle.
	Bounds() image.Rectangle

	// ClipRange returns the full clip range as inclusive frame times.
	ClipRange() (start, end int)

	CurrentTime() int
	SetCurrentTime(t int)
	WaitForDone()

	// PixelData returns the RGBA bytes of the current composite within r.
	// r may extend beyond the canvas; pixels outside it are transparent.
	PixelData(r image.Rectangle) []byte

	Root() Layer
}

// Layer is a node in the document's layer tree. Group layers have children
// and no pixel content of their own.
type Layer interface {
	Name() string
	Visible() bool

	// Animated reports whether the layer carries more than one keyframe.
	Animated() bool

	// HasKeyframeAt reports whether an explicitly authored keyframe exists
	// at time t. Only meaningful when the source supports keyframe queries.
	HasKeyframeAt(t int) bool

	IsPaintLayer() bool
	Children() []Layer

	// PixelData returns the layer's own RGBA content within r at the
	// document's current time, transparent outside the canvas.
	PixelData(r image.Rectangle) []byte
}

// Recurse returns all descendants of root depth-first in stacking order
// (each child before its own children, bottom of the stack first). With
// paintOnly set, group layers are traversed but not returned.
func Recurse(root Layer, paintOnly bool) []Layer {
	var out []Layer
	var walk func(Layer)
	walk = func(l Layer) {
		for _, child := range l.Children() {
			if !paintOnly || child.IsPaintLayer() {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(root)
	return out
}
