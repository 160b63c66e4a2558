package synth_test

import (
	"math"
	"testing"

	"github.com/notepainter/notepainter"
	"github.com/notepainter/notepainter/synth"
)

func flat(x0, x1, y float32) notepainter.Stroke {
	return notepainter.Stroke{{Start: notepainter.Point{X: x0, Y: y}, End: notepainter.Point{X: x1, Y: y}}}
}

func TestFlatStroke(t *testing.T) {
	p := synth.DefaultParams()
	env := synth.NewEnvelope(flat(0, 0.5, 0.5), p.EnvelopeLength(0.5), p)
	if len(env) != 44100 {
		t.Fatalf("expected envelope length 44100, got %v", len(env))
	}
	if got, expected := env.Audible(), 22051; got != expected {
		t.Fatalf("expected %v audible samples, got %v", expected, got)
	}
	freq := p.Frequency(0.5)
	for i, tone := range env {
		if tone.Amplitude == 0 {
			continue
		}
		if tone.Frequency != freq {
			t.Fatalf("sample %v: expected frequency %v, got %v", i, freq, tone.Frequency)
		}
		if tone.Amplitude != p.Amplitude {
			t.Fatalf("sample %v: expected amplitude %v, got %v", i, p.Amplitude, tone.Amplitude)
		}
	}
	if math.Abs(float64(freq)-854.95) > 0.1 {
		t.Fatalf("expected about 854.95 Hz at the middle of the surface, got %v", freq)
	}
}

func TestBackwardSegmentCoversSameSamples(t *testing.T) {
	p := synth.DefaultParams()
	forward := synth.NewEnvelope(flat(0.1, 0.3, 0.5), 44100, p)
	backward := synth.NewEnvelope(flat(0.3, 0.1, 0.5), 44100, p)
	for i := range forward {
		if forward[i] != backward[i] {
			t.Fatalf("sample %v differs: %v vs %v", i, forward[i], backward[i])
		}
	}
}

func TestVerticalSegment(t *testing.T) {
	p := synth.DefaultParams()
	stroke := notepainter.Stroke{{Start: notepainter.Point{X: 0.2, Y: 0.1}, End: notepainter.Point{X: 0.2, Y: 0.9}}}
	env := synth.NewEnvelope(stroke, 44100, p)
	if got := env.Audible(); got != 1 {
		t.Fatalf("expected a single audible sample, got %v", got)
	}
	tone := env[8820]
	if tone.Amplitude == 0 {
		t.Fatalf("expected sample 8820 to be audible")
	}
	if f := float64(tone.Frequency); math.IsNaN(f) || math.IsInf(f, 0) {
		t.Fatalf("expected a finite frequency, got %v", f)
	}
	if tone.Frequency != p.Frequency(0.9) {
		t.Fatalf("expected the frequency of the end point %v, got %v", p.Frequency(0.9), tone.Frequency)
	}
}

func TestSegmentsBeforeZeroAreClipped(t *testing.T) {
	p := synth.DefaultParams()
	env := synth.NewEnvelope(flat(-0.1, 0.1, 0.5), 44100, p)
	if got := env.Audible(); got != 4411 {
		t.Fatalf("expected 4411 audible samples, got %v", got)
	}
}

func TestTempoAwareLength(t *testing.T) {
	p := synth.DefaultParams()
	p.BPM = 120
	p.Beats = 4
	m := synth.Render([]notepainter.Stroke{flat(0, 0.25, 0.5)}, p)
	if got, expected := m.Len(), 22051; got != expected {
		t.Fatalf("expected %v samples, got %v", expected, got)
	}
	buf := notepainter.Render(m, 0)
	if len(buf) != 22051 {
		t.Fatalf("expected the mixer to produce 22051 samples, got %v", len(buf))
	}
}

func TestOscillatorPhase(t *testing.T) {
	p := synth.DefaultParams()
	p.Detune = false
	env := make(synth.Envelope, 200)
	for i := range env {
		env[i] = synth.Tone{Frequency: 441, Amplitude: 0.5}
	}
	o := synth.NewOscillator(env, p)
	var samples []float32
	for {
		s, a, ok := o.Next()
		if !ok {
			break
		}
		if a != 0.5 {
			t.Fatalf("expected amplitude 0.5, got %v", a)
		}
		samples = append(samples, s)
	}
	if len(samples) != 200 {
		t.Fatalf("expected 200 samples, got %v", len(samples))
	}
	// 441 Hz at 44100 Hz has a period of exactly 100 samples
	if math.Abs(float64(samples[25])-0.5) > 1e-4 {
		t.Fatalf("expected the peak at sample 25, got %v", samples[25])
	}
	if math.Abs(float64(samples[125])-0.5) > 1e-4 {
		t.Fatalf("expected the peak at sample 125, got %v", samples[125])
	}
	if _, _, ok := o.Next(); ok {
		t.Fatalf("expected the oscillator to stay exhausted")
	}
}

func TestOscillatorPhaseIsContinuous(t *testing.T) {
	p := synth.DefaultParams()
	p.Detune = false
	env := make(synth.Envelope, 1000)
	for i := range env {
		f := float32(300)
		if i >= 500 {
			f = 900
		}
		env[i] = synth.Tone{Frequency: f, Amplitude: 1}
	}
	o := synth.NewOscillator(env, p)
	prev, _, _ := o.Next()
	maxStep := 2 * math.Pi * 900 / 44100 * 1.01
	for i := 1; i < len(env); i++ {
		s, _, _ := o.Next()
		if d := math.Abs(float64(s - prev)); d > maxStep {
			t.Fatalf("sample %v jumps by %v, more than %v", i, d, maxStep)
		}
		prev = s
	}
}

func TestMixingKeepsLoudness(t *testing.T) {
	p := synth.DefaultParams()
	p.Detune = false
	single := notepainter.Render(synth.Render([]notepainter.Stroke{flat(0, 0.5, 0.5)}, p), 0)
	double := notepainter.Render(synth.Render([]notepainter.Stroke{flat(0, 0.5, 0.5), flat(0, 0.5, 0.25)}, p), 0)
	if len(single) != len(double) {
		t.Fatalf("expected equal lengths, got %v and %v", len(single), len(double))
	}
	a := single[:22050].Levels().RMS
	b := double[:22050].Levels().RMS
	if math.Abs(float64(a-b))/float64(a) > 0.02 {
		t.Fatalf("expected equal RMS levels, got %v for one stroke and %v for two", a, b)
	}
	if rest := single[22051:].Levels(); rest.Peak != 0 {
		t.Fatalf("expected silence after the stroke, got peak %v", rest.Peak)
	}
}

func TestEmptyRender(t *testing.T) {
	p := synth.DefaultParams()
	m := synth.Render(nil, p)
	if _, ok := m.NextSample(); ok {
		t.Fatalf("expected a render of no strokes to be exhausted immediately")
	}
	if m.Duration() != 0 {
		t.Fatalf("expected zero duration, got %v", m.Duration())
	}
	m = synth.Render([]notepainter.Stroke{{}}, p)
	buf := notepainter.Render(m, 0)
	if len(buf) != 44100 {
		t.Fatalf("expected the fixed buffer length, got %v", len(buf))
	}
	if l := buf.Levels(); l.Peak != 0 {
		t.Fatalf("expected silence, got peak %v", l.Peak)
	}
}

func TestRowNote(t *testing.T) {
	p := synth.DefaultParams()
	for row := 0; row < p.Rows; row++ {
		y := 1 - (float32(row)+0.5)/float32(p.Rows)
		note := p.RowNote(row)
		expected := 440 * math.Pow(2, float64(note-69)/12)
		if got := float64(p.Frequency(y)); math.Abs(got-expected) > 0.01 {
			t.Fatalf("row %v: note %v should be %v Hz, row centre plays %v Hz", row, note, expected, got)
		}
	}
}

func TestIsBlackKey(t *testing.T) {
	cases := map[int]bool{60: false, 61: true, 62: false, 63: true, 64: false, 65: false, 66: true, 70: true, 71: false, -1: false, -2: true}
	for note, expected := range cases {
		if got := synth.IsBlackKey(note); got != expected {
			t.Errorf("IsBlackKey(%v) = %v, expected %v", note, got, expected)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := synth.DefaultParams().Validate(); err != nil {
		t.Fatalf("default params should be valid: %v", err)
	}
	p := synth.DefaultParams()
	p.SampleRate = 0
	if err := p.Validate(); err == nil {
		t.Fatalf("expected an error for zero sample rate")
	}
	p.SampleRate = 22050
	if err := p.Validate(); err == nil {
		t.Fatalf("expected an error for a sample rate other than the output rate")
	}
	p = synth.DefaultParams()
	p.BPM = 120
	p.Beats = 0
	if err := p.Validate(); err == nil {
		t.Fatalf("expected an error for zero beats")
	}
}
