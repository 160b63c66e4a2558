package gioui

import (
	"image"
	"math"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/notepainter/notepainter"
	"github.com/notepainter/notepainter/timeline"
)

// Surface is the drawing area: it feeds pointer gestures to the model and
// paints the canvas with the row and play line overlays.
type Surface struct {
	program  Program
	size     image.Point
	dragging bool
	dragID   pointer.ID
	model    *timeline.Model
}

const zoomStep = 1.25

func (s *Surface) Layout(gtx C, e *Editor) D {
	s.model = e.Model
	size := gtx.Constraints.Max
	if size.X <= 1 || size.Y <= 1 {
		return D{Size: size}
	}
	s.size = size
	e.Resize(size.X, size.Y)
	s.update(gtx, e)
	if err := e.Canvas().Flush(); err != nil {
		e.Alerts().AddNamed("Canvas", err.Error(), timeline.Error)
	}

	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, s)
	pointer.CursorCrosshair.Add(gtx.Ops)
	paint.Fill(gtx.Ops, e.Theme.Background)

	v := e.View()
	m := ViewMatrix(v.Zoom, f32.Pt(v.Offset.X, v.Offset.Y), size)
	params := e.Params()
	s.program.Bind(gtx)
	s.program.SetMatrix(m)
	if e.ShowRows().Value() {
		s.program.SetScalar(UniformRows, float32(params.Rows))
		s.program.SetVector(UniformWhiteRow, e.Theme.WhiteRow)
		s.program.SetVector(UniformBlackRow, e.Theme.BlackRow)
		s.program.DrawRows(params)
	}
	if tex := e.device.Texture(); tex != nil {
		tex.Layout(gtx, size, m, e.Theme.Ink)
	}
	if e.Play().IsPlaying() {
		s.program.SetScalar(UniformPlayX, e.Play().X())
		s.program.SetScalar(UniformLineWidth, float32(gtx.Dp(unit.Dp(2))))
		s.program.SetVector(UniformPlayline, e.Theme.Playline)
		s.program.DrawPlayline()
	}
	return D{Size: size}
}

func (s *Surface) update(gtx C, e *Editor) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  s,
			Kinds:   pointer.Scroll | pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
			ScrollY: pointer.ScrollRange{Min: -1e6, Max: 1e6},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Scroll:
			if pe.Modifiers.Contain(key.ModShortcut) && pe.Scroll.Y != 0 {
				s.zoomAt(pe.Position, -float32(math.Copysign(1, float64(pe.Scroll.Y))))
			}
		case pointer.Press:
			if pe.Buttons&pointer.ButtonSecondary != 0 {
				e.SetView(timeline.DefaultView())
			}
			if pe.Buttons&pointer.ButtonPrimary != 0 && !s.dragging {
				s.dragging = true
				s.dragID = pe.PointerID
				gtx.Execute(pointer.GrabCmd{Tag: s, ID: pe.PointerID})
				e.Pointer().Down(s.normalize(pe.Position))
			}
		case pointer.Drag:
			if s.dragging && pe.PointerID == s.dragID {
				e.Pointer().Move(s.normalize(pe.Position))
			}
		case pointer.Release, pointer.Cancel:
			if s.dragging && pe.PointerID == s.dragID {
				s.dragging = false
				e.Pointer().Up()
			}
		}
	}
}

func (s *Surface) normalize(pos f32.Point) notepainter.Point {
	return s.model.View().Normalize(pos.X, pos.Y, float32(s.size.X), float32(s.size.Y))
}

// zoom zooms in (dir > 0) or out (dir < 0) around the centre of the surface.
func (s *Surface) zoom(dir float32) {
	s.zoomAt(f32.Pt(float32(s.size.X)/2, float32(s.size.Y)/2), dir)
}

// zoomAt zooms keeping the canvas point under pos in place. The view never
// zooms out past the whole canvas.
func (s *Surface) zoomAt(pos f32.Point, dir float32) {
	if s.model == nil || s.size.X <= 0 || s.size.Y <= 0 {
		return
	}
	v := s.model.View()
	before := s.normalize(pos)
	v.Zoom = max(v.Zoom*float32(math.Pow(zoomStep, float64(dir))), 1)
	after := v.Normalize(pos.X, pos.Y, float32(s.size.X), float32(s.size.Y))
	v.Offset.X += before.X - after.X
	v.Offset.Y += before.Y - after.Y
	limit := 1 - 1/v.Zoom
	v.Offset.X = min(max(v.Offset.X, 0), limit)
	v.Offset.Y = min(max(v.Offset.Y, 0), limit)
	s.model.SetView(v)
}
