package notepainter

type (
	// Point is a position on the drawing surface in normalized coordinates.
	// X is time and Y is pitch; Y grows downwards, so Y = 0 is the top row.
	// Coordinates inside the visible surface are in [0, 1).
	Point struct {
		X float32 `yaml:"x"`
		Y float32 `yaml:"y"`
	}

	// Segment is a straight line between two points. Segments are never
	// modified after they have been recorded.
	Segment struct {
		Start Point `yaml:",flow"`
		End   Point `yaml:",flow"`
	}

	// Stroke is the list of segments recorded during one continuous drawing
	// gesture. The recorder guarantees that the segments of a stroke never
	// overlap in time, so a stroke is a function from time to pitch.
	Stroke []Segment

	// Drawing is a snapshot of all the strokes in the history, in the order
	// they were drawn. It is the unit that gets saved to and loaded from
	// files, and the input of the synthesizer and the rasterizer.
	Drawing struct {
		Strokes []Stroke
	}
)

// MinX returns the endpoint with the smaller X. When both endpoints have the
// same X, End is returned for both MinX and MaxX, so a vertical segment is
// treated as a single instant.
func (s Segment) MinX() Point {
	if s.Start.X < s.End.X {
		return s.Start
	}
	return s.End
}

// MaxX returns the endpoint with the larger X. See MinX.
func (s Segment) MaxX() Point {
	if s.Start.X > s.End.X {
		return s.Start
	}
	return s.End
}

// Inside reports if both endpoints lie inside the unit square [0,1)x[0,1).
func (s Segment) Inside() bool {
	return s.Start.inside() && s.End.inside()
}

func (p Point) inside() bool {
	return p.X >= 0 && p.Y >= 0 && p.X < 1 && p.Y < 1
}

// Copy returns a deep copy of the stroke.
func (s Stroke) Copy() Stroke {
	if s == nil {
		return nil
	}
	ret := make(Stroke, len(s))
	copy(ret, s)
	return ret
}

// Copy returns a deep copy of the drawing.
func (d *Drawing) Copy() Drawing {
	strokes := make([]Stroke, len(d.Strokes))
	for i, s := range d.Strokes {
		strokes[i] = s.Copy()
	}
	return Drawing{Strokes: strokes}
}

// Extent returns the largest X of any segment endpoint in the drawing, or 0
// if the drawing has no segments.
func (d *Drawing) Extent() float32 {
	var ret float32
	for _, s := range d.Strokes {
		for _, seg := range s {
			ret = max(ret, seg.Start.X, seg.End.X)
		}
	}
	return ret
}

// NumSegments returns the total number of segments over all strokes.
func (d *Drawing) NumSegments() int {
	ret := 0
	for _, s := range d.Strokes {
		ret += len(s)
	}
	return ret
}
