package timeline

import "github.com/notepainter/notepainter"

// View maps between widget pixels and canvas coordinates. The visible part
// of the canvas starts at Offset and is 1/Zoom units wide and tall.
type View struct {
	Zoom   float32
	Offset notepainter.Point
}

func DefaultView() View {
	return View{Zoom: 1}
}

// Normalize converts a pixel position inside a widget of the given size to
// canvas coordinates.
func (v View) Normalize(x, y, width, height float32) notepainter.Point {
	zoom := v.zoom()
	return notepainter.Point{
		X: v.Offset.X + x/width/zoom,
		Y: v.Offset.Y + y/height/zoom,
	}
}

// Project converts canvas coordinates to a pixel position inside a widget of
// the given size.
func (v View) Project(p notepainter.Point, width, height float32) (x, y float32) {
	zoom := v.zoom()
	return (p.X - v.Offset.X) * zoom * width, (p.Y - v.Offset.Y) * zoom * height
}

func (v View) zoom() float32 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}
