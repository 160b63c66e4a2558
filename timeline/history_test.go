package timeline_test

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/notepainter/notepainter"
	"github.com/notepainter/notepainter/timeline"
)

func pt(x, y float32) notepainter.Point { return notepainter.Point{X: x, Y: y} }

// checkMonotonic verifies that after the first segment, no endpoint of a
// stroke goes back past the furthest X reached so far.
func checkMonotonic(t *testing.T, strokes []notepainter.Stroke) {
	t.Helper()
	for i, s := range strokes {
		if len(s) == 0 {
			continue
		}
		fwd := s[0].Start.X < s[0].End.X
		frontier := s[0].End.X
		if !fwd {
			frontier = min(s[0].Start.X, s[0].End.X)
		}
		for j, seg := range s[1:] {
			for _, x := range []float32{seg.Start.X, seg.End.X} {
				if fwd && x < frontier || !fwd && x > frontier {
					t.Fatalf("stroke %v segment %v: x %v goes back past frontier %v", i, j+1, x, frontier)
				}
			}
			if fwd {
				frontier = max(frontier, seg.Start.X, seg.End.X)
			} else {
				frontier = min(frontier, seg.Start.X, seg.End.X)
			}
		}
	}
}

func TestStrokesAreMonotonic(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	var h timeline.History
	for s := 0; s < 20; s++ {
		h.StartStroke()
		prev := pt(r.Float32(), r.Float32())
		for i := 0; i < 50; i++ {
			next := pt(prev.X+r.Float32()*0.2-0.1, r.Float32())
			if _, ok := h.AddSegment(prev, next); !ok {
				t.Fatalf("AddSegment failed on an active stroke")
			}
			prev = next
		}
		h.EndStroke()
	}
	checkMonotonic(t, h.Strokes())
}

func TestBackwardWiggle(t *testing.T) {
	var h timeline.History
	h.StartStroke()
	h.AddSegment(pt(0.1, 0.5), pt(0.3, 0.5))
	seg, _ := h.AddSegment(pt(0.3, 0.5), pt(0.1, 0.6))
	if seg.Start.X != 0.3 || seg.End.X != 0.3 {
		t.Fatalf("expected the backward move to be clamped to x = 0.3, got %v", seg)
	}
	seg, _ = h.AddSegment(pt(0.1, 0.6), pt(0.4, 0.6))
	if seg.Start.X != 0.3 || seg.End.X != 0.4 {
		t.Fatalf("expected the segment to continue from the frontier, got %v", seg)
	}
	for _, s := range h.Strokes()[0] {
		if s.Start.X < 0.3 && s != h.Strokes()[0][0] {
			t.Fatalf("segment %v revisits time before the frontier", s)
		}
	}
}

func TestBackwardStroke(t *testing.T) {
	var h timeline.History
	h.StartStroke()
	h.AddSegment(pt(0.8, 0.5), pt(0.6, 0.5))
	seg, _ := h.AddSegment(pt(0.6, 0.5), pt(0.7, 0.4))
	if seg.Start.X != 0.6 || seg.End.X != 0.6 {
		t.Fatalf("expected x to be clamped to 0.6, got %v", seg)
	}
	checkMonotonic(t, h.Strokes())
}

func TestVerticalFirstSegmentIsBackward(t *testing.T) {
	var h timeline.History
	h.StartStroke()
	h.AddSegment(pt(0.5, 0.1), pt(0.5, 0.9))
	seg, _ := h.AddSegment(pt(0.5, 0.9), pt(0.7, 0.9))
	if seg.End.X != 0.5 {
		t.Fatalf("expected a vertical first segment to fix the backward direction, got %v", seg)
	}
}

func TestAddSegmentWithoutStroke(t *testing.T) {
	var h timeline.History
	if _, ok := h.AddSegment(pt(0, 0), pt(0.5, 0.5)); ok {
		t.Fatalf("expected AddSegment to fail without a stroke")
	}
	h.StartStroke()
	h.AddSegment(pt(0, 0), pt(0.5, 0.5))
	h.EndStroke()
	if _, ok := h.AddSegment(pt(0.5, 0.5), pt(0.6, 0.5)); ok {
		t.Fatalf("expected AddSegment to fail after EndStroke")
	}
	h.StartStroke()
	h.Undo()
	if _, ok := h.AddSegment(pt(0.5, 0.5), pt(0.6, 0.5)); ok {
		t.Fatalf("expected AddSegment to fail after Undo")
	}
	if h.SegmentCount() != 1 {
		t.Fatalf("expected 1 segment, got %v", h.SegmentCount())
	}
}

func TestUndoRedo(t *testing.T) {
	var h timeline.History
	if h.Undo() || h.Redo() {
		t.Fatalf("expected undo and redo of an empty history to do nothing")
	}
	h.StartStroke()
	h.AddSegment(pt(0.1, 0.1), pt(0.2, 0.2))
	h.AddSegment(pt(0.2, 0.2), pt(0.3, 0.1))
	h.StartStroke()
	h.AddSegment(pt(0.5, 0.5), pt(0.4, 0.5))
	h.EndStroke()
	before := h.Drawing()
	if !h.Undo() || !h.CanRedo() || h.Len() != 1 {
		t.Fatalf("expected undo to move one stroke to the redo stack")
	}
	if !h.Redo() || h.CanRedo() {
		t.Fatalf("expected redo to empty the redo stack")
	}
	if after := h.Drawing(); !reflect.DeepEqual(before, after) {
		t.Fatalf("undo + redo changed the history: %v vs %v", before, after)
	}
}

func TestStartStrokeClearsRedo(t *testing.T) {
	var h timeline.History
	h.StartStroke()
	h.AddSegment(pt(0.1, 0.1), pt(0.2, 0.2))
	h.Undo()
	if !h.CanRedo() {
		t.Fatalf("expected something to redo")
	}
	h.StartStroke()
	if h.CanRedo() || h.Redo() {
		t.Fatalf("expected StartStroke to clear the redo stack")
	}
}

func TestStartStrokeDropsEmptyStroke(t *testing.T) {
	var h timeline.History
	h.StartStroke()
	h.StartStroke()
	h.StartStroke()
	if h.Len() != 1 {
		t.Fatalf("expected empty strokes to be dropped, got %v strokes", h.Len())
	}
	if d := h.Drawing(); len(d.Strokes) != 0 {
		t.Fatalf("expected Drawing to leave out empty strokes")
	}
}

func TestLoad(t *testing.T) {
	var h timeline.History
	h.StartStroke()
	h.AddSegment(pt(0.1, 0.1), pt(0.2, 0.2))
	h.Undo()
	d := notepainter.Drawing{Strokes: []notepainter.Stroke{{{Start: pt(0, 0), End: pt(1, 1)}}}}
	h.Load(d)
	if h.CanRedo() || h.Len() != 1 {
		t.Fatalf("expected Load to replace everything")
	}
	d.Strokes[0][0].End = pt(0.5, 0.5)
	if h.Strokes()[0][0].End != pt(1, 1) {
		t.Fatalf("expected Load to copy the drawing")
	}
	if _, ok := h.AddSegment(pt(0, 0), pt(0.1, 0.1)); ok {
		t.Fatalf("expected no active stroke after Load")
	}
}

func TestNegativeXIsClampedForward(t *testing.T) {
	var h timeline.History
	h.StartStroke()
	seg, _ := h.AddSegment(pt(-0.1, 0.5), pt(0.2, 0.5))
	if seg.Start.X != 0 || math.IsNaN(float64(seg.End.X)) {
		t.Fatalf("expected a forward stroke to start at x >= 0, got %v", seg)
	}
}
