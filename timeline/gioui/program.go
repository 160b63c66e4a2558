package gioui

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/notepainter/notepainter/synth"
)

type (
	// Program paints the overlays of the drawing surface: the pitch rows and
	// the play line. Uniforms keep their values between draws until set
	// again; Bind selects where the next draws go.
	Program struct {
		ops     *op.Ops
		size    image.Point
		scalars [numScalarUniforms]float32
		vectors [numVectorUniforms]color.NRGBA
		matrix  f32.Affine2D
	}

	ScalarUniform int
	VectorUniform int
)

const (
	UniformRows ScalarUniform = iota
	UniformPlayX
	UniformLineWidth
	numScalarUniforms
)

const (
	UniformWhiteRow VectorUniform = iota
	UniformBlackRow
	UniformPlayline
	numVectorUniforms
)

// Bind makes the following draws paint into gtx, covering its maximum
// constraints.
func (p *Program) Bind(gtx C) {
	p.ops = gtx.Ops
	p.size = gtx.Constraints.Max
}

func (p *Program) SetScalar(u ScalarUniform, v float32)     { p.scalars[u] = v }
func (p *Program) SetVector(u VectorUniform, c color.NRGBA) { p.vectors[u] = c }
func (p *Program) Scalar(u ScalarUniform) float32           { return p.scalars[u] }

// SetMatrix sets the transform from canvas coordinates to pixels.
func (p *Program) SetMatrix(m f32.Affine2D) { p.matrix = m }

// ViewMatrix returns the transform of a view with the given zoom and offset
// for a surface of size pixels.
func ViewMatrix(zoom float32, offset f32.Point, size image.Point) f32.Affine2D {
	if zoom <= 0 {
		zoom = 1
	}
	return f32.Affine2D{}.
		Offset(offset.Mul(-1)).
		Scale(f32.Point{}, f32.Pt(zoom*float32(size.X), zoom*float32(size.Y)))
}

// RowRect returns the pixel rectangle of a row, counted from the bottom.
func (p *Program) RowRect(row int) image.Rectangle {
	rows := p.scalars[UniformRows]
	if rows <= 0 {
		return image.Rectangle{}
	}
	top := p.matrix.Transform(f32.Pt(0, 1-float32(row+1)/rows))
	bottom := p.matrix.Transform(f32.Pt(0, 1-float32(row)/rows))
	return image.Rect(0, int(top.Y+0.5), p.size.X, int(bottom.Y+0.5)).Intersect(image.Rectangle{Max: p.size})
}

// PlaylineRect returns the pixel rectangle of the play line, which is empty
// if the line is outside the surface.
func (p *Program) PlaylineRect() image.Rectangle {
	x := int(p.matrix.Transform(f32.Pt(p.scalars[UniformPlayX], 0)).X + 0.5)
	w := max(int(p.scalars[UniformLineWidth]+0.5), 1)
	return image.Rect(x-w/2, 0, x-w/2+w, p.size.Y).Intersect(image.Rectangle{Max: p.size})
}

// DrawRows shades every row by whether its centre note is a black or a
// white key.
func (p *Program) DrawRows(params synth.Params) {
	for row := range int(p.scalars[UniformRows]) {
		col := p.vectors[UniformWhiteRow]
		if synth.IsBlackKey(params.RowNote(row)) {
			col = p.vectors[UniformBlackRow]
		}
		p.fill(p.RowRect(row), col)
	}
}

func (p *Program) DrawPlayline() {
	p.fill(p.PlaylineRect(), p.vectors[UniformPlayline])
}

func (p *Program) fill(r image.Rectangle, col color.NRGBA) {
	if p.ops == nil || r.Empty() || col.A == 0 {
		return
	}
	paint.FillShape(p.ops, col, clip.Rect(r).Op())
}
