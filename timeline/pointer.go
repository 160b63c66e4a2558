package timeline

import (
	"github.com/notepainter/notepainter"
)

type (
	// Pointer is the view of the model turning pointer gestures into
	// strokes. Points are in canvas coordinates; see View.Normalize.
	Pointer Model

	pointerState struct {
		down  bool
		moved bool // false while the pointer stays within DeadZone of press
		press notepainter.Point
		last  notepainter.Point
	}
)

// DeadZone is how far the pointer has to move from where it was pressed, along
// either axis, before the first segment is recorded.
const DeadZone = 0.01

func (m *Model) Pointer() *Pointer { return (*Pointer)(m) }

// Down starts a new stroke at p.
func (m *Pointer) Down(p notepainter.Point) {
	m.history.StartStroke()
	m.pointer = pointerState{down: true, press: p, last: p}
	m.confirmNew = false
}

// Move extends the stroke to p, if the pointer is down. The first segment
// starts from the press point once the pointer leaves the dead zone.
func (m *Pointer) Move(p notepainter.Point) {
	if !m.pointer.down {
		return
	}
	if !m.pointer.moved {
		dx, dy := abs(p.X-m.pointer.press.X), abs(p.Y-m.pointer.press.Y)
		if dx <= DeadZone && dy <= DeadZone {
			return
		}
		m.pointer.moved = true
	}
	seg, ok := m.history.AddSegment(m.pointer.last, p)
	m.pointer.last = p
	if !ok {
		return
	}
	m.canvas.DrawLine(seg)
	(*Model)(m).changed(false)
}

// Up ends the stroke.
func (m *Pointer) Up() {
	if !m.pointer.down {
		return
	}
	m.history.EndStroke()
	m.pointer = pointerState{}
}

// IsDown reports if a stroke is being drawn.
func (m *Pointer) IsDown() bool { return m.pointer.down }

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
