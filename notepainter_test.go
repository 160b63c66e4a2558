package notepainter_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/notepainter/notepainter"
)

func seg(x0, y0, x1, y1 float32) notepainter.Segment {
	return notepainter.Segment{Start: notepainter.Point{X: x0, Y: y0}, End: notepainter.Point{X: x1, Y: y1}}
}

func TestSegmentMinMax(t *testing.T) {
	s := seg(0.5, 0.1, 0.2, 0.3)
	if s.MinX() != s.End || s.MaxX() != s.Start {
		t.Fatalf("backward segment: MinX %v MaxX %v", s.MinX(), s.MaxX())
	}
	v := seg(0.5, 0.1, 0.5, 0.3)
	if v.MinX() != v.End || v.MaxX() != v.End {
		t.Fatalf("vertical segment should use End for both, got %v %v", v.MinX(), v.MaxX())
	}
}

func TestSegmentInside(t *testing.T) {
	cases := []struct {
		seg  notepainter.Segment
		want bool
	}{
		{seg(0, 0, 0.5, 0.5), true},
		{seg(0, 0, 1, 0.5), false},
		{seg(-0.1, 0, 0.5, 0.5), false},
		{seg(0.1, 0.2, 0.3, 0.999), true},
	}
	for _, c := range cases {
		if got := c.seg.Inside(); got != c.want {
			t.Errorf("%v.Inside() = %v, want %v", c.seg, got, c.want)
		}
	}
}

func TestDrawingCopy(t *testing.T) {
	d := notepainter.Drawing{Strokes: []notepainter.Stroke{{seg(0, 0, 0.5, 0.5)}, {seg(0.2, 0.1, 0.7, 0.1), seg(0.7, 0.1, 0.8, 0.2)}}}
	c := d.Copy()
	c.Strokes[0][0].End.X = 0.9
	if d.Strokes[0][0].End.X != 0.5 {
		t.Fatalf("modifying the copy changed the original")
	}
	if got := d.Extent(); got != 0.8 {
		t.Fatalf("Extent: got %v, want 0.8", got)
	}
	if got := d.NumSegments(); got != 3 {
		t.Fatalf("NumSegments: got %v, want 3", got)
	}
	var empty notepainter.Drawing
	if empty.Extent() != 0 || empty.NumSegments() != 0 {
		t.Fatalf("empty drawing should have no extent or segments")
	}
}

func TestToPCM16(t *testing.T) {
	cases := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1, math.MaxInt16},
		{2, math.MaxInt16},
		{-1, -math.MaxInt16},
		{-5, -math.MaxInt16},
		{0.5, 16383},
		{float32(math.NaN()), 0},
	}
	for _, c := range cases {
		if got := notepainter.ToPCM16(c.in); got != c.want {
			t.Errorf("ToPCM16(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestWavBytes(t *testing.T) {
	buf := make(notepainter.AudioBuffer, 1000)
	for i := range buf {
		buf[i] = float32(math.Sin(float64(i) / 10))
	}
	b, err := buf.WavBytes()
	if err != nil {
		t.Fatalf("WavBytes failed: %v", err)
	}
	if len(b) != notepainter.WavSize(len(buf)) {
		t.Fatalf("wav size: got %v, want %v", len(b), notepainter.WavSize(len(buf)))
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		t.Fatalf("missing RIFF/WAVE header: %q", b[:12])
	}
}

func TestRaw(t *testing.T) {
	buf := notepainter.AudioBuffer{0, 0.5, -1, 2}
	f, err := buf.Raw(false)
	if err != nil || len(f) != 16 {
		t.Fatalf("float raw: got %v bytes, err %v", len(f), err)
	}
	i, err := buf.Raw(true)
	if err != nil || len(i) != 8 {
		t.Fatalf("pcm16 raw: got %v bytes, err %v", len(i), err)
	}
	// 2 clamps to MaxInt16, little endian
	if i[6] != 0xff || i[7] != 0x7f {
		t.Fatalf("last sample should be clamped to 0x7fff, got %x %x", i[6], i[7])
	}
}

func TestLevels(t *testing.T) {
	if l := (notepainter.AudioBuffer{}).Levels(); l.Peak != 0 || l.RMS != 0 {
		t.Fatalf("empty buffer should have zero levels, got %+v", l)
	}
	l := notepainter.AudioBuffer{0.5, -0.5, 0.5, -0.5}.Levels()
	if l.Peak != 0.5 || math.Abs(float64(l.RMS)-0.5) > 1e-6 {
		t.Fatalf("got %+v, want peak 0.5 and rms 0.5", l)
	}
	if db := l.PeakDB(); math.Abs(db+6.0206) > 1e-3 {
		t.Fatalf("PeakDB: got %v, want about -6.02", db)
	}
}

func TestBufferSource(t *testing.T) {
	buf := notepainter.AudioBuffer{1, 2, 3}
	got := notepainter.Render(buf.Source(), 0)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("got %v, want %v", got, buf)
	}
	src := buf.Source()
	notepainter.Render(src, 0)
	if _, ok := src.NextSample(); ok {
		t.Fatalf("exhausted source should stay exhausted")
	}
}

func TestFormat(t *testing.T) {
	if got := notepainter.SamplesToDuration(notepainter.SampleRate); got != time.Second {
		t.Fatalf("SamplesToDuration: got %v, want 1s", got)
	}
	if got := notepainter.FormatDuration(1500 * time.Millisecond); !strings.Contains(got, "1 s") || !strings.Contains(got, "500 ms") {
		t.Fatalf("FormatDuration: got %q", got)
	}
	if got := notepainter.FormatBytes(notepainter.WavSize(44100)); got != "88 kB" {
		t.Fatalf("FormatBytes: got %q, want 88 kB", got)
	}
}
