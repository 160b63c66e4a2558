package synth

import (
	"math"
	"time"

	"github.com/notepainter/notepainter"
)

// Mixer sums a set of oscillators and divides the sum by the square root of
// their summed amplitudes, so that overlapping strokes keep a roughly
// constant loudness. A Mixer is single use: build a new one to play again.
type Mixer struct {
	oscillators []Oscillator
	length      int
	sampleRate  int
}

var _ notepainter.AudioSource = (*Mixer)(nil)

func NewMixer(envelopes []Envelope, p Params) *Mixer {
	m := &Mixer{
		oscillators: make([]Oscillator, len(envelopes)),
		sampleRate:  p.SampleRate,
	}
	for i, e := range envelopes {
		m.oscillators[i] = NewOscillator(e, p)
		m.length = max(m.length, len(e))
	}
	return m
}

// Render builds the envelopes of all strokes and returns a mixer playing
// them.
func Render(strokes []notepainter.Stroke, p Params) *Mixer {
	d := notepainter.Drawing{Strokes: strokes}
	length := p.EnvelopeLength(d.Extent())
	envelopes := make([]Envelope, len(strokes))
	for i, s := range strokes {
		envelopes[i] = NewEnvelope(s, length, p)
	}
	return NewMixer(envelopes, p)
}

// NextSample implements notepainter.AudioSource.
func (m *Mixer) NextSample() (float32, bool) {
	var num, den float32
	active := false
	for i := range m.oscillators {
		s, a, ok := m.oscillators[i].Next()
		if !ok {
			continue
		}
		active = true
		num += s
		den += a
	}
	if !active {
		return 0, false
	}
	if den > 0 {
		return num / float32(math.Sqrt(float64(den))), true
	}
	return 0, true
}

// Len returns the total number of samples the mixer produces.
func (m *Mixer) Len() int { return m.length }

// Duration returns the play time of the mixer.
func (m *Mixer) Duration() time.Duration {
	if m.sampleRate <= 0 {
		return 0
	}
	return time.Duration(m.length) * time.Second / time.Duration(m.sampleRate)
}
