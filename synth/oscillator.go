package synth

import "math"

// Oscillator plays an Envelope, keeping the phase continuous across
// frequency changes. The phase is never wrapped.
type Oscillator struct {
	envelope Envelope
	cursor   int
	phase    float64
	step     float64 // radians per Hz per sample
	detune   bool
}

func NewOscillator(envelope Envelope, p Params) Oscillator {
	return Oscillator{
		envelope: envelope,
		step:     2 * math.Pi / float64(p.SampleRate),
		detune:   p.Detune,
	}
}

// Next returns the next sample and the amplitude it was produced with. ok is
// false once the envelope has been played in full.
func (o *Oscillator) Next() (sample, amplitude float32, ok bool) {
	if o.cursor >= len(o.envelope) {
		return 0, 0, false
	}
	tone := o.envelope[o.cursor]
	var s float64
	if o.detune {
		s = (math.Sin(o.phase) + math.Sin(o.phase*detuneRatio)) * 0.5
	} else {
		s = math.Sin(o.phase)
	}
	o.phase += o.step * float64(tone.Frequency)
	o.cursor++
	return float32(s) * tone.Amplitude, tone.Amplitude, true
}

// Len returns the total number of samples the oscillator produces.
func (o *Oscillator) Len() int { return len(o.envelope) }
