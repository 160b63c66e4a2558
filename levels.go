package notepainter

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// Levels describes the loudness of a rendered buffer.
type Levels struct {
	Peak float32 // largest absolute sample value
	RMS  float32 // root mean square of the samples
}

// Levels computes the peak and RMS level of the buffer. An empty buffer has
// zero levels.
func (b AudioBuffer) Levels() Levels {
	if len(b) == 0 {
		return Levels{}
	}
	abs := vek32.Abs(b)
	return Levels{
		Peak: vek32.Max(abs),
		RMS:  float32(math.Sqrt(float64(vek32.Dot(b, b) / float32(len(b))))),
	}
}

// PeakDB returns the peak level in decibels relative to full scale. Silence
// gives -Inf.
func (l Levels) PeakDB() float64 {
	return 20 * math.Log10(float64(l.Peak))
}

// RMSDB returns the RMS level in decibels relative to full scale.
func (l Levels) RMSDB() float64 {
	return 20 * math.Log10(float64(l.RMS))
}
