// Package canvas rasterizes strokes into an 8-bit intensity bitmap that can
// be uploaded to a texture for display. The bitmap is derived data: it can
// always be rebuilt from the strokes at any resolution.
package canvas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/notepainter/notepainter"
	"golang.org/x/image/draw"
)

type (
	// Texture receives the bitmap whenever it has changed.
	Texture interface {
		Upload(pix []byte, width, height int) error
		Release()
	}

	// Device creates textures. A canvas acquires exactly one texture for its
	// whole lifetime.
	Device interface {
		NewTexture() (Texture, error)
	}

	// Canvas is a row-major bitmap with one intensity byte per pixel.
	Canvas struct {
		pix     []byte
		width   int
		height  int
		dirty   bool
		texture Texture
	}
)

// Ink is the intensity of drawn pixels.
const Ink = 255

// New creates a blank canvas. If dev is nil, the canvas is headless and
// Flush only clears the dirty flag.
func New(dev Device, width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	c := &Canvas{
		pix:    make([]byte, width*height),
		width:  width,
		height: height,
		dirty:  true,
	}
	if dev == nil {
		return c, nil
	}
	tex, err := dev.NewTexture()
	if err != nil {
		return nil, fmt.Errorf("could not create texture: %w", err)
	}
	c.texture = tex
	if err := c.Flush(); err != nil {
		c.texture = nil
		tex.Release()
		return nil, err
	}
	return c, nil
}

// Close releases the texture. The canvas keeps working headless afterwards.
// Calling Close more than once is safe.
func (c *Canvas) Close() {
	if c.texture != nil {
		c.texture.Release()
		c.texture = nil
	}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }
func (c *Canvas) Dirty() bool { return c.dirty }
func (c *Canvas) Pix() []byte { return c.pix }

func (c *Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.width, c.height) }

// DrawLine draws the segment with Bresenham's algorithm. Segments with an
// endpoint outside the unit square are dropped whole, not clipped.
func (c *Canvas) DrawLine(seg notepainter.Segment) {
	if !seg.Inside() || c.width == 0 || c.height == 0 {
		return
	}
	x0, y0 := c.toPixel(seg.Start)
	x1, y1 := c.toPixel(seg.End)
	dx, sx := abs(x1-x0), sign(x1-x0)
	dy, sy := abs(y1-y0), sign(y1-y0)
	e := dx - dy
	for {
		c.pix[y0*c.width+x0] = Ink
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
	c.dirty = true
}

// DrawStrokes draws every segment of every stroke on top of the current
// bitmap.
func (c *Canvas) DrawStrokes(strokes []notepainter.Stroke) {
	for _, s := range strokes {
		for _, seg := range s {
			c.DrawLine(seg)
		}
	}
}

// Resize reallocates the bitmap at the new size and replays all strokes.
// Rasterizing at one size, resizing away and back gives identical bitmaps.
func (c *Canvas) Resize(width, height int, strokes []notepainter.Stroke) {
	width, height = max(width, 0), max(height, 0)
	if cap(c.pix) >= width*height {
		c.pix = c.pix[:width*height]
		clear(c.pix)
	} else {
		c.pix = make([]byte, width*height)
	}
	c.width, c.height = width, height
	c.dirty = true
	c.DrawStrokes(strokes)
}

// Redraw clears the bitmap and replays all strokes at the current size.
func (c *Canvas) Redraw(strokes []notepainter.Stroke) {
	c.Resize(c.width, c.height, strokes)
}

// Flush uploads the bitmap to the texture if it has changed since the last
// flush.
func (c *Canvas) Flush() error {
	if !c.dirty {
		return nil
	}
	if c.texture != nil {
		if err := c.texture.Upload(c.pix, c.width, c.height); err != nil {
			return fmt.Errorf("could not upload canvas: %w", err)
		}
	}
	c.dirty = false
	return nil
}

// Alpha returns an image view sharing the bitmap memory.
func (c *Canvas) Alpha() *image.Alpha {
	return &image.Alpha{Pix: c.pix, Stride: c.width, Rect: c.Bounds()}
}

// Composite draws the bitmap over dst inside r, tinted with col. The bitmap
// is scaled to r with nearest neighbour sampling so that lines stay crisp.
func (c *Canvas) Composite(dst draw.Image, r image.Rectangle, col color.Color) {
	mask := c.Alpha()
	if r.Size() != mask.Rect.Size() {
		scaled := image.NewAlpha(image.Rectangle{Max: r.Size()})
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), mask, mask.Bounds(), draw.Src, nil)
		mask = scaled
	}
	draw.DrawMask(dst, r, image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
}

// DrawRows fills horizontal bands of dst, one per row, counted from the
// bottom. shade returns the color of a row, or nil to leave it empty.
func DrawRows(dst draw.Image, rows int, shade func(row int) color.Color) {
	b := dst.Bounds()
	for row := 0; row < rows; row++ {
		col := shade(row)
		if col == nil {
			continue
		}
		top := b.Min.Y + b.Dy()*(rows-1-row)/rows
		bottom := b.Min.Y + b.Dy()*(rows-row)/rows
		r := image.Rect(b.Min.X, top, b.Max.X, bottom)
		draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Over)
	}
}

func (c *Canvas) toPixel(p notepainter.Point) (int, int) {
	x := min(int(p.X*float32(c.width)), c.width-1)
	y := min(int(p.Y*float32(c.height)), c.height-1)
	return x, y
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x < 0 {
		return -1
	}
	return 1
}
