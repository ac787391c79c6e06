package export

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/Faultbox/spritepack/pkg/document"
)

var scanCaps = document.Capabilities{KeyframeQueries: true}

// fill returns a solid w x h RGBA image.
func fill(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// animDoc builds a 4x4 document with clip range 0..24 and one animated
// layer per keyframe set.
func animDoc(t *testing.T, keyframes ...[]int) *document.MemDocument {
	t.Helper()
	doc := document.NewMemDocument("test", 4, 4)
	doc.SetClipRange(0, 24)
	for i, times := range keyframes {
		layer := doc.AddLayer(string(rune('a' + i)))
		for _, kt := range times {
			layer.SetKeyframe(kt, fill(4, 4, color.RGBA{R: uint8(kt), A: 255}))
		}
	}
	return doc
}

func TestResolveExplicitRangeUnchanged(t *testing.T) {
	doc := animDoc(t, []int{3, 17})

	got := FrameRange{Start: 5, End: 5, Step: 1}.Resolve(doc, scanCaps)
	want := FrameRange{Start: 5, End: 5, Step: 1}
	if got != want {
		t.Errorf("Resolve(5,5,1) = %+v, want %+v", got, want)
	}
}

func TestResolveSwapsReversedRange(t *testing.T) {
	doc := animDoc(t, []int{3, 17})

	got := FrameRange{Start: 10, End: 2, Step: 1}.Resolve(doc, scanCaps)
	want := FrameRange{Start: 2, End: 10, Step: -1}
	if got != want {
		t.Errorf("Resolve(10,2,1) = %+v, want %+v", got, want)
	}
}

func TestResolveFindsKeyframeBounds(t *testing.T) {
	doc := animDoc(t, []int{3, 17})

	got := DefaultRange().Resolve(doc, scanCaps)
	want := FrameRange{Start: 3, End: 17, Step: 1}
	if got != want {
		t.Errorf("Resolve(default) = %+v, want %+v", got, want)
	}
}

func TestResolveMaximizesOverLayers(t *testing.T) {
	// Layers disagree on timing: each is scanned independently with an
	// early exit at its own first hit, then the bounds are combined.
	doc := animDoc(t, []int{3, 17}, []int{5, 20})

	got := DefaultRange().Resolve(doc, scanCaps)
	want := FrameRange{Start: 3, End: 20, Step: 1}
	if got != want {
		t.Errorf("Resolve(default) = %+v, want %+v", got, want)
	}
}

func TestResolveExplicitStartKept(t *testing.T) {
	doc := animDoc(t, []int{3, 17})

	got := FrameRange{Start: 2, End: DefaultTime, Step: 1}.Resolve(doc, scanCaps)
	want := FrameRange{Start: 2, End: 17, Step: 1}
	if got != want {
		t.Errorf("Resolve(2,unset,1) = %+v, want %+v", got, want)
	}
}

func TestResolveSingleFrameClip(t *testing.T) {
	doc := document.NewMemDocument("still", 4, 4)
	doc.SetClipRange(7, 7)

	got := DefaultRange().Resolve(doc, scanCaps)
	if got.Start != 7 || got.End != 7 {
		t.Errorf("Resolve(default) = %+v, want single frame at 7", got)
	}
}

func TestResolveNoAnimatedLayers(t *testing.T) {
	doc := document.NewMemDocument("flat", 4, 4)
	doc.SetClipRange(0, 24)
	doc.AddLayer("only").SetKeyframe(0, fill(4, 4, color.White))

	got := DefaultRange().Resolve(doc, scanCaps)
	if got.Start != 0 || got.End != 0 {
		t.Errorf("Resolve(default) = %+v, want single frame at 0", got)
	}
}

func TestResolveHiddenLayersIgnored(t *testing.T) {
	doc := animDoc(t, []int{3, 17})
	hidden := doc.AddLayer("hidden")
	hidden.SetKeyframe(1, fill(4, 4, color.White))
	hidden.SetKeyframe(23, fill(4, 4, color.White))
	hidden.SetVisible(false)

	got := DefaultRange().Resolve(doc, scanCaps)
	want := FrameRange{Start: 3, End: 17, Step: 1}
	if got != want {
		t.Errorf("Resolve(default) = %+v, want %+v", got, want)
	}
}

func TestResolveWithoutKeyframeQueries(t *testing.T) {
	doc := animDoc(t, []int{3, 17})

	got := DefaultRange().Resolve(doc, document.Capabilities{})
	want := FrameRange{Start: 0, End: 24, Step: 1}
	if got != want {
		t.Errorf("Resolve(default, no queries) = %+v, want %+v", got, want)
	}
}

func TestResolveNormalizesZeroStep(t *testing.T) {
	doc := animDoc(t, []int{3, 17})

	got := FrameRange{Start: 1, End: 5, Step: 0}.Resolve(doc, scanCaps)
	if got.Step != 1 {
		t.Errorf("Resolve step = %d, want 1", got.Step)
	}
}

func TestTimes(t *testing.T) {
	tests := []struct {
		name string
		r    FrameRange
		want []int
	}{
		{"forward", FrameRange{Start: 0, End: 4, Step: 1}, []int{0, 1, 2, 3, 4}},
		{"stepped", FrameRange{Start: 0, End: 9, Step: 3}, []int{0, 3, 6, 9}},
		{"reversed", FrameRange{Start: 2, End: 5, Step: -1}, []int{5, 4, 3, 2}},
		{"single", FrameRange{Start: 5, End: 5, Step: 1}, []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.Times()
			if len(got) != len(tt.want) {
				t.Fatalf("Times() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Times() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
