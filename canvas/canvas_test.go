package canvas_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/notepainter/notepainter"
	"github.com/notepainter/notepainter/canvas"
)

type fakeTexture struct {
	uploads  int
	released int
	fail     bool
}

func (f *fakeTexture) Upload(pix []byte, width, height int) error {
	if f.fail {
		return errors.New("upload failed")
	}
	if len(pix) != width*height {
		return errors.New("bad size")
	}
	f.uploads++
	return nil
}

func (f *fakeTexture) Release() { f.released++ }

type fakeDevice struct{ textures []*fakeTexture }

func (d *fakeDevice) NewTexture() (canvas.Texture, error) {
	t := &fakeTexture{}
	d.textures = append(d.textures, t)
	return t, nil
}

type failingDevice struct{ texture *fakeTexture }

func (d *failingDevice) NewTexture() (canvas.Texture, error) {
	return d.texture, nil
}

func seg(x0, y0, x1, y1 float32) notepainter.Segment {
	return notepainter.Segment{Start: notepainter.Point{X: x0, Y: y0}, End: notepainter.Point{X: x1, Y: y1}}
}

func count(pix []byte) int {
	ret := 0
	for _, p := range pix {
		if p != 0 {
			ret++
		}
	}
	return ret
}

func TestDrawLine(t *testing.T) {
	c, err := canvas.New(nil, 10, 10)
	if err != nil {
		t.Fatalf("canvas.New failed: %v", err)
	}
	c.DrawLine(seg(0, 0, 0.95, 0.95))
	for i := 0; i < 10; i++ {
		if c.Pix()[i*10+i] != canvas.Ink {
			t.Fatalf("expected pixel (%v,%v) to be set", i, i)
		}
	}
	if got := count(c.Pix()); got != 10 {
		t.Fatalf("expected 10 pixels, got %v", got)
	}
	c.Redraw(nil)
	c.DrawLine(seg(0.1, 0.5, 0.85, 0.5))
	if got := count(c.Pix()); got != 8 {
		t.Fatalf("expected a horizontal line of 8 pixels, got %v", got)
	}
	c.Redraw(nil)
	c.DrawLine(seg(0.35, 0.35, 0.35, 0.35))
	if got := count(c.Pix()); got != 1 || c.Pix()[33] != canvas.Ink {
		t.Fatalf("expected a degenerate segment to set exactly one pixel")
	}
}

func TestLineIsSymmetric(t *testing.T) {
	a, _ := canvas.New(nil, 37, 23)
	b, _ := canvas.New(nil, 37, 23)
	a.DrawLine(seg(0.1, 0.2, 0.9, 0.4))
	b.DrawLine(seg(0.9, 0.4, 0.1, 0.2))
	if count(a.Pix()) != count(b.Pix()) {
		t.Fatalf("expected both directions to set the same number of pixels, got %v and %v", count(a.Pix()), count(b.Pix()))
	}
}

func TestOutOfBoundsDropped(t *testing.T) {
	cases := []notepainter.Segment{
		seg(-0.1, 0.5, 0.5, 0.5),
		seg(0.5, 0.5, 1, 0.5),
		seg(0.5, 1.2, 0.5, 0.5),
		seg(0.2, 0.2, 0.4, -0.01),
	}
	for _, s := range cases {
		c, _ := canvas.New(nil, 16, 16)
		c.Flush()
		c.DrawLine(s)
		if got := count(c.Pix()); got != 0 {
			t.Errorf("segment %v: expected nothing drawn, got %v pixels", s, got)
		}
		if c.Dirty() {
			t.Errorf("segment %v: expected a dropped segment to leave the canvas clean", s)
		}
	}
}

func TestResizeRoundTrip(t *testing.T) {
	strokes := []notepainter.Stroke{
		{seg(0.1, 0.1, 0.3, 0.6), seg(0.3, 0.6, 0.7, 0.2)},
		{seg(0.9, 0.9, 0.5, 0.95)},
		{seg(-1, 0, 0.5, 0.5)},
	}
	c, _ := canvas.New(nil, 120, 80)
	c.DrawStrokes(strokes)
	before := bytes.Clone(c.Pix())
	c.Resize(333, 17, strokes)
	if c.Width() != 333 || c.Height() != 17 || len(c.Pix()) != 333*17 {
		t.Fatalf("resize did not change the size")
	}
	c.Resize(120, 80, strokes)
	if !bytes.Equal(before, c.Pix()) {
		t.Fatalf("resizing back did not reproduce the original bitmap")
	}
}

func TestRedrawAfterUndo(t *testing.T) {
	c, _ := canvas.New(nil, 64, 64)
	c.DrawLine(seg(0.1, 0.1, 0.9, 0.9))
	c.Redraw(nil)
	if got := count(c.Pix()); got != 0 {
		t.Fatalf("expected an empty bitmap, got %v pixels", got)
	}
}

func TestFlush(t *testing.T) {
	dev := &fakeDevice{}
	c, err := canvas.New(dev, 8, 8)
	if err != nil {
		t.Fatalf("canvas.New failed: %v", err)
	}
	if len(dev.textures) != 1 {
		t.Fatalf("expected one texture, got %v", len(dev.textures))
	}
	tex := dev.textures[0]
	if tex.uploads != 1 || c.Dirty() {
		t.Fatalf("expected the blank canvas to be uploaded once on creation")
	}
	if err := c.Flush(); err != nil || tex.uploads != 1 {
		t.Fatalf("expected flushing a clean canvas to do nothing")
	}
	c.DrawLine(seg(0, 0, 0.5, 0.5))
	if !c.Dirty() {
		t.Fatalf("expected drawing to mark the canvas dirty")
	}
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if tex.uploads != 2 || c.Dirty() {
		t.Fatalf("expected exactly one more upload, got %v uploads", tex.uploads)
	}
	c.Resize(4, 4, nil)
	c.Flush()
	if tex.uploads != 3 {
		t.Fatalf("expected resize to cause an upload")
	}
	c.Close()
	c.Close()
	if tex.released != 1 {
		t.Fatalf("expected the texture to be released once, got %v", tex.released)
	}
}

func TestNewReleasesOnError(t *testing.T) {
	dev := &failingDevice{texture: &fakeTexture{fail: true}}
	if _, err := canvas.New(dev, 8, 8); err == nil {
		t.Fatalf("expected an error when the initial upload fails")
	}
	if dev.texture.released != 1 {
		t.Fatalf("expected the texture to be released on error")
	}
	if _, err := canvas.New(nil, 0, 8); err == nil {
		t.Fatalf("expected an error for an empty canvas")
	}
}

func TestComposite(t *testing.T) {
	c, _ := canvas.New(nil, 4, 4)
	c.DrawLine(seg(0, 0, 0, 0.75))
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	red := color.RGBA{R: 255, A: 255}
	c.Composite(dst, dst.Bounds(), red)
	if dst.RGBAAt(0, 7) != red || dst.RGBAAt(1, 0) != red {
		t.Fatalf("expected the scaled line to cover the left two columns")
	}
	if (dst.RGBAAt(2, 0) != color.RGBA{}) {
		t.Fatalf("expected the rest of the image to stay transparent")
	}
}

func TestDrawRows(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 8))
	gray := color.RGBA{R: 10, G: 10, B: 10, A: 255}
	canvas.DrawRows(dst, 4, func(row int) color.Color {
		if row == 0 {
			return gray
		}
		return nil
	})
	if dst.RGBAAt(0, 7) != gray || dst.RGBAAt(1, 6) != gray {
		t.Fatalf("expected row 0 to be the bottom band")
	}
	if (dst.RGBAAt(0, 5) != color.RGBA{}) {
		t.Fatalf("expected the other rows to be empty")
	}
}
