package gioui

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/notepainter/notepainter/canvas"
	"golang.org/x/image/draw"
)

type (
	// Device hands out the Texture the canvas uploads its bitmap to. It
	// keeps the last texture so that the surface can paint it.
	Device struct {
		texture *Texture
	}

	// Texture keeps a copy of the canvas bitmap and turns it into an image
	// op tinted with the ink color of the theme.
	Texture struct {
		mask     *image.Alpha
		ink      color.NRGBA
		imageOp  paint.ImageOp
		stale    bool
		released bool
	}
)

var _ canvas.Device = (*Device)(nil)
var _ canvas.Texture = (*Texture)(nil)

func NewDevice() *Device { return &Device{} }

func (d *Device) NewTexture() (canvas.Texture, error) {
	if d.texture != nil && !d.texture.released {
		return nil, fmt.Errorf("device already has a live texture")
	}
	d.texture = &Texture{}
	return d.texture, nil
}

// Texture returns the last texture created, or nil if there is none.
func (d *Device) Texture() *Texture { return d.texture }

func (t *Texture) Upload(pix []byte, width, height int) error {
	if t.released {
		return fmt.Errorf("upload to a released texture")
	}
	if len(pix) != width*height {
		return fmt.Errorf("bitmap has %d bytes, expected %dx%d", len(pix), width, height)
	}
	r := image.Rect(0, 0, width, height)
	if t.mask == nil || t.mask.Rect != r {
		t.mask = image.NewAlpha(r)
	}
	copy(t.mask.Pix, pix)
	t.stale = true
	return nil
}

func (t *Texture) Release() {
	t.mask = nil
	t.imageOp = paint.ImageOp{}
	t.released = true
}

// Size returns the size of the last uploaded bitmap.
func (t *Texture) Size() image.Point {
	if t.mask == nil {
		return image.Point{}
	}
	return t.mask.Rect.Size()
}

// Tinted returns the bitmap as an image that is ink where the bitmap is set
// and transparent elsewhere.
func (t *Texture) Tinted(ink color.NRGBA) *image.NRGBA {
	if t.mask == nil {
		return nil
	}
	img := image.NewNRGBA(t.mask.Rect)
	draw.DrawMask(img, img.Rect, image.NewUniform(ink), image.Point{}, t.mask, image.Point{}, draw.Src)
	return img
}

// Layout paints the bitmap clipped to size. m maps the unit square covered
// by the bitmap to pixels.
func (t *Texture) Layout(gtx C, size image.Point, m f32.Affine2D, ink color.NRGBA) {
	if t.mask == nil || size.X <= 0 || size.Y <= 0 {
		return
	}
	if t.stale || ink != t.ink {
		t.imageOp = paint.NewImageOp(t.Tinted(ink))
		t.imageOp.Filter = paint.FilterNearest
		t.ink = ink
		t.stale = false
	}
	src := t.Size()
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	unit := f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(1/float32(src.X), 1/float32(src.Y)))
	defer op.Affine(m.Mul(unit)).Push(gtx.Ops).Pop()
	t.imageOp.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}
