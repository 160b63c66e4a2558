package synth

import (
	"github.com/notepainter/notepainter"
)

type (
	// Tone is the frequency (Hz) and amplitude of one sample of an envelope.
	// Amplitude 0 means silence.
	Tone struct {
		Frequency float32
		Amplitude float32
	}

	// Envelope has one Tone per output sample.
	Envelope []Tone
)

// NewEnvelope builds the envelope of one stroke. length is the number of
// samples, shared by all strokes of a render; samples that no segment covers
// stay silent.
func NewEnvelope(stroke notepainter.Stroke, length int, p Params) Envelope {
	ret := make(Envelope, length)
	samplesPerUnit := p.SecondsPerUnit() * float64(p.SampleRate)
	for _, seg := range stroke {
		lo, hi := seg.MinX(), seg.MaxX()
		span := float64(hi.X) - float64(lo.X)
		first := int(float64(lo.X) * samplesPerUnit)
		last := first + int(span*samplesPerUnit)
		for i := max(first, 0); i <= last && i < length; i++ {
			var ratio float64
			if span > 0 {
				t := float64(i) / samplesPerUnit
				ratio = min(max((t-float64(lo.X))/span, 0), 1)
			}
			y := float64(lo.Y) + (float64(hi.Y)-float64(lo.Y))*ratio
			ret[i] = Tone{Frequency: p.Frequency(float32(y)), Amplitude: p.Amplitude}
		}
	}
	return ret
}

// Audible returns the number of samples with a nonzero amplitude.
func (e Envelope) Audible() int {
	ret := 0
	for _, t := range e {
		if t.Amplitude > 0 {
			ret++
		}
	}
	return ret
}
