// Package export assembles animation frames from a document into a
// spritesheet: it resolves the frame-time range, collects frame pixel data,
// packs the frames into a grid, and writes the sheet image plus optional
// per-frame files and a JSON texture atlas.
package export

import (
	"github.com/Faultbox/spritepack/pkg/document"
)

// DefaultTime marks an unset frame time; the resolver infers it from the
// document's clip range.
const DefaultTime = -1

// FrameRange selects which frame times to export.
type FrameRange struct {
	Start int
	End   int
	Step  int
}

// DefaultRange covers the document's full clip range with a step of 1.
func DefaultRange() FrameRange {
	return FrameRange{Start: DefaultTime, End: DefaultTime, Step: 1}
}

// Resolve fills unset start/end times from the document. After resolution
// Start <= End and Step != 0; a negative Step means the frames are exported
// in reverse time order (the user asked for start > end).
//
// The true end is found by scanning each candidate layer's keyframes
// backward from the nominal end, stopping at that layer's first hit, and
// taking the maximum across layers; the true start symmetrically forward.
// Layers are scanned independently, so the result is the nearest keyframe
// bound even when layers disagree on timing.
func (r FrameRange) Resolve(doc document.Document, caps document.Capabilities) FrameRange {
	if r.Step == 0 {
		r.Step = 1
	}

	defStart := r.Start == DefaultTime
	defEnd := r.End == DefaultTime
	if !defStart && !defEnd {
		if r.Start > r.End {
			r.Start, r.End = r.End, r.Start
			if r.Step > 0 {
				r.Step = -r.Step
			}
		}
		return r
	}

	clipStart, clipEnd := doc.ClipRange()
	startTime, endTime := r.Start, r.End
	if defStart {
		startTime = clipStart
	}
	if defEnd {
		endTime = clipEnd
	}

	if startTime == endTime {
		r.Start, r.End = startTime, startTime
		return r
	}

	if !caps.KeyframeQueries {
		// The source cannot be asked about keyframes; take the clip
		// range defaults as-is.
		r.Start, r.End = min(startTime, endTime), max(startTime, endTime)
		return r
	}

	layers := candidateLayers(doc)
	if len(layers) == 0 {
		// No visible animated layer: a single frame at time 0.
		r.Start, r.End = 0, 0
		return r
	}

	if startTime > endTime {
		startTime, endTime = endTime, startTime
		if r.Step > 0 {
			r.Step = -r.Step
		}
	}

	if defEnd {
		r.End = startTime
		for _, layer := range layers {
			if t, ok := lastKeyframe(layer, endTime, startTime); ok && t > r.End {
				r.End = t
			}
			if r.End >= endTime {
				// The end keyframe cannot be any later.
				break
			}
		}
	} else {
		r.End = endTime
	}

	if defStart {
		r.Start = r.End
		for _, layer := range layers {
			if t, ok := firstKeyframe(layer, startTime, r.End); ok && t < r.Start {
				r.Start = t
			}
			if r.Start <= startTime {
				break
			}
		}
	} else {
		r.Start = startTime
	}

	return r
}

// Times returns the frame times to export in iteration order. A negative
// step walks from End down toward Start.
func (r FrameRange) Times() []int {
	if r.Step == 0 {
		return nil
	}
	var out []int
	if r.Step > 0 {
		for t := r.Start; t <= r.End; t += r.Step {
			out = append(out, t)
		}
	} else {
		for t := r.End; t >= r.Start; t += r.Step {
			out = append(out, t)
		}
	}
	return out
}

// candidateLayers returns the document's visible animated layers.
func candidateLayers(doc document.Document) []document.Layer {
	var out []document.Layer
	for _, l := range document.Recurse(doc.Root(), false) {
		if l.Visible() && l.Animated() {
			out = append(out, l)
		}
	}
	return out
}

// lastKeyframe scans from "from" down to "to" and returns the layer's first
// keyframe hit, which is its last keyframe at or before "from".
func lastKeyframe(layer document.Layer, from, to int) (int, bool) {
	for t := from; t >= to; t-- {
		if layer.HasKeyframeAt(t) {
			return t, true
		}
	}
	return 0, false
}

// firstKeyframe scans from "from" up to "to" and returns the layer's first
// keyframe hit.
func firstKeyframe(layer document.Layer, from, to int) (int, bool) {
	for t := from; t <= to; t++ {
		if layer.HasKeyframeAt(t) {
			return t, true
		}
	}
	return 0, false
}
