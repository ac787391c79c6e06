package document

import (
	"image"
	"image/draw"
)

// MemDocument is an in-memory Document. Layer keyframes are sparse: the
// content shown at time t is the keyframe with the greatest time <= t
// (hold semantics). Compositing is deferred until WaitForDone, mirroring a
// host with an asynchronous render pipeline.
type MemDocument struct {
	name      string
	bounds    image.Rectangle
	clipStart int
	clipEnd   int

	time      int
	dirty     bool
	composite *image.RGBA

	root *MemLayer
}

// NewMemDocument creates an empty document with a w x h canvas and a
// single-frame clip range.
func NewMemDocument(name string, w, h int) *MemDocument {
	d := &MemDocument{
		name:   name,
		bounds: image.Rect(0, 0, w, h),
		dirty:  true,
	}
	d.root = &MemLayer{name: "root", visible: true, doc: d}
	return d
}

func (d *MemDocument) Name() string            { return d.name }
func (d *MemDocument) Bounds() image.Rectangle { return d.bounds }

// ClipRange returns the inclusive full clip range.
func (d *MemDocument) ClipRange() (int, int) { return d.clipStart, d.clipEnd }

// SetClipRange sets the inclusive full clip range.
func (d *MemDocument) SetClipRange(start, end int) {
	d.clipStart, d.clipEnd = start, end
}

func (d *MemDocument) CurrentTime() int { return d.time }

// SetCurrentTime seeks the document. The composite is not rebuilt until
// WaitForDone.
func (d *MemDocument) SetCurrentTime(t int) {
	if t != d.time {
		d.time = t
		d.dirty = true
	}
}

// WaitForDone rebuilds the composite for the current time if a seek or a
// layer change is pending.
func (d *MemDocument) WaitForDone() {
	if !d.dirty && d.composite != nil {
		return
	}
	out := image.NewRGBA(d.bounds)
	for _, l := range Recurse(d.root, true) {
		ml := l.(*MemLayer)
		if !ml.visibleInTree() {
			continue
		}
		if img := ml.contentAt(d.time); img != nil {
			draw.Draw(out, d.bounds, img, d.bounds.Min, draw.Over)
		}
	}
	d.composite = out
	d.dirty = false
}

// PixelData returns RGBA bytes of the current composite within r,
// transparent outside the canvas.
func (d *MemDocument) PixelData(r image.Rectangle) []byte {
	d.WaitForDone()
	return readRect(d.composite, r)
}

func (d *MemDocument) Root() Layer { return d.root }

// AddLayer appends a visible paint layer to the top of the root stack.
func (d *MemDocument) AddLayer(name string) *MemLayer {
	l := &MemLayer{name: name, visible: true, paint: true, doc: d}
	d.root.children = append(d.root.children, l)
	d.dirty = true
	return l
}

// AddGroup appends a visible group layer to the top of the root stack.
func (d *MemDocument) AddGroup(name string) *MemLayer {
	l := &MemLayer{name: name, visible: true, doc: d}
	d.root.children = append(d.root.children, l)
	d.dirty = true
	return l
}

// MemLayer is a layer in a MemDocument.
type MemLayer struct {
	name     string
	visible  bool
	paint    bool
	parent   *MemLayer
	children []*MemLayer
	keys     map[int]*image.RGBA
	doc      *MemDocument
}

func (l *MemLayer) Name() string      { return l.name }
func (l *MemLayer) Visible() bool     { return l.visible }
func (l *MemLayer) IsPaintLayer() bool { return l.paint }

// SetVisible toggles the layer's visibility.
func (l *MemLayer) SetVisible(v bool) {
	l.visible = v
	if l.doc != nil {
		l.doc.dirty = true
	}
}

func (l *MemLayer) Animated() bool { return len(l.keys) > 1 }

func (l *MemLayer) HasKeyframeAt(t int) bool {
	_, ok := l.keys[t]
	return ok
}

func (l *MemLayer) Children() []Layer {
	out := make([]Layer, len(l.children))
	for i, c := range l.children {
		out[i] = c
	}
	return out
}

// AddChild appends a paint layer under this layer, turning it into a group.
func (l *MemLayer) AddChild(name string) *MemLayer {
	c := &MemLayer{name: name, visible: true, paint: true, parent: l, doc: l.doc}
	l.children = append(l.children, c)
	if l.doc != nil {
		l.doc.dirty = true
	}
	return c
}

// SetKeyframe sets the layer content from time t onward (hold).
// img is interpreted in canvas coordinates.
func (l *MemLayer) SetKeyframe(t int, img *image.RGBA) {
	if l.keys == nil {
		l.keys = make(map[int]*image.RGBA)
	}
	l.keys[t] = img
	if l.doc != nil {
		l.doc.dirty = true
	}
}

// contentAt returns the keyframe active at time t: greatest key <= t.
func (l *MemLayer) contentAt(t int) *image.RGBA {
	var img *image.RGBA
	best := 0
	found := false
	for kt, k := range l.keys {
		if kt <= t && (!found || kt > best) {
			best, img, found = kt, k, true
		}
	}
	return img
}

// visibleInTree reports whether the layer and all its ancestors are visible.
func (l *MemLayer) visibleInTree() bool {
	for n := l; n != nil; n = n.parent {
		if !n.visible {
			return false
		}
	}
	return true
}

// PixelData returns the layer's own content at the document's current time.
func (l *MemLayer) PixelData(r image.Rectangle) []byte {
	t := 0
	if l.doc != nil {
		t = l.doc.time
	}
	img := l.contentAt(t)
	if img == nil {
		img = image.NewRGBA(image.Rectangle{})
	}
	return readRect(img, r)
}

// readRect copies the RGBA bytes of src within r into a tightly packed
// buffer, zero-filling where r falls outside src.
func readRect(src *image.RGBA, r image.Rectangle) []byte {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst.Pix
}
