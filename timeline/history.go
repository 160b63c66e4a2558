package timeline

import (
	"math"

	"github.com/notepainter/notepainter"
)

type (
	// History is the list of recorded strokes together with the strokes that
	// have been undone. It only ever changes through StartStroke, AddSegment,
	// Undo, Redo and Load.
	History struct {
		strokes  []notepainter.Stroke
		redo     []notepainter.Stroke
		active   bool
		recorder recorder
	}

	// recorder keeps the segments of the active stroke moving in one
	// direction in time. The direction is fixed by the first segment and
	// every later endpoint is clamped against the frontier, the furthest X
	// reached so far.
	recorder struct {
		dir      direction
		frontier float32
	}

	direction int
)

const (
	undefined direction = iota
	forward
	backward
)

// StartStroke begins a new stroke. A previous stroke with no segments is
// dropped, and the undone strokes are forgotten.
func (h *History) StartStroke() {
	if n := len(h.strokes); n > 0 && len(h.strokes[n-1]) == 0 {
		h.strokes = h.strokes[:n-1]
	}
	h.redo = nil
	h.strokes = append(h.strokes, notepainter.Stroke{})
	h.active = true
	h.recorder = recorder{}
}

// EndStroke ends the active stroke; AddSegment does nothing until the next
// StartStroke.
func (h *History) EndStroke() {
	h.active = false
}

// AddSegment clamps the segment against the frontier of the active stroke
// and appends it. It returns the segment as stored, or false if there is no
// active stroke.
func (h *History) AddSegment(start, end notepainter.Point) (notepainter.Segment, bool) {
	if !h.active || len(h.strokes) == 0 {
		return notepainter.Segment{}, false
	}
	seg := h.recorder.clamp(notepainter.Segment{Start: start, End: end})
	last := len(h.strokes) - 1
	h.strokes[last] = append(h.strokes[last], seg)
	return seg, true
}

func (r *recorder) clamp(seg notepainter.Segment) notepainter.Segment {
	switch r.dir {
	case undefined:
		if seg.Start.X < seg.End.X {
			r.dir, r.frontier = forward, 0
		} else {
			r.dir, r.frontier = backward, float32(math.Inf(1))
		}
		return r.clamp(seg)
	case forward:
		seg.Start.X = max(seg.Start.X, r.frontier)
		seg.End.X = max(seg.End.X, r.frontier)
		r.frontier = max(r.frontier, seg.Start.X, seg.End.X)
	case backward:
		seg.Start.X = min(seg.Start.X, r.frontier)
		seg.End.X = min(seg.End.X, r.frontier)
		r.frontier = min(r.frontier, seg.Start.X, seg.End.X)
	}
	return seg
}

// Undo moves the last stroke to the redo stack. It returns false if there was
// nothing to undo.
func (h *History) Undo() bool {
	n := len(h.strokes)
	if n == 0 {
		return false
	}
	h.redo = append(h.redo, h.strokes[n-1])
	h.strokes = h.strokes[:n-1]
	h.active = false
	return true
}

// Redo moves the most recently undone stroke back. It returns false if there
// was nothing to redo.
func (h *History) Redo() bool {
	n := len(h.redo)
	if n == 0 {
		return false
	}
	h.strokes = append(h.strokes, h.redo[n-1])
	h.redo = h.redo[:n-1]
	h.active = false
	return true
}

func (h *History) CanUndo() bool { return len(h.strokes) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of strokes, including an active stroke without
// segments.
func (h *History) Len() int { return len(h.strokes) }

// Strokes returns the recorded strokes. The slice must not be modified.
func (h *History) Strokes() []notepainter.Stroke { return h.strokes }

// SegmentCount returns the number of segments over all strokes.
func (h *History) SegmentCount() int {
	d := notepainter.Drawing{Strokes: h.strokes}
	return d.NumSegments()
}

// Drawing returns a deep copy of the strokes, without the empty ones.
func (h *History) Drawing() notepainter.Drawing {
	ret := notepainter.Drawing{Strokes: make([]notepainter.Stroke, 0, len(h.strokes))}
	for _, s := range h.strokes {
		if len(s) > 0 {
			ret.Strokes = append(ret.Strokes, s.Copy())
		}
	}
	return ret
}

// Load replaces the whole history with the strokes of the drawing. Nothing
// can be redone afterwards and there is no active stroke.
func (h *History) Load(d notepainter.Drawing) {
	c := d.Copy()
	*h = History{strokes: c.Strokes}
}
