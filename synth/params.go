package synth

import (
	"errors"
	"fmt"
	"math"

	"github.com/notepainter/notepainter"
)

// Params control how strokes are turned into sound. The zero value is not
// usable; start from DefaultParams.
type Params struct {
	// SampleRate must be notepainter.SampleRate, the rate of playback and
	// export.
	SampleRate int

	// Rows is the number of pitch rows the drawing surface is divided into;
	// one row is one semitone.
	Rows int

	// RowBias is added to the row value so that the pitch of a row is taken
	// at its centre.
	RowBias float32

	// ReferenceOffset shifts the pitch relative to A4 = 440 Hz, in
	// semitones.
	ReferenceOffset float32

	// Amplitude of every sample covered by a segment.
	Amplitude float32

	// Detune adds a second oscillator running at 1.01 times the phase rate.
	Detune bool

	// BPM > 0 makes the synthesizer tempo aware: the width of the surface is
	// Beats beats at BPM, and the rendered length follows the extent of the
	// drawing. BPM = 0 uses a fixed buffer of Length seconds.
	BPM    float32
	Beats  float32
	Length float32
}

const detuneRatio = 1.01

// DefaultParams returns the parameters of the reference design: 16 rows,
// 44100 Hz, a one second tempo agnostic buffer and the detuned timbre.
func DefaultParams() Params {
	return Params{
		SampleRate:      notepainter.SampleRate,
		Rows:            16,
		RowBias:         0.5,
		ReferenceOffset: 3,
		Amplitude:       0.33,
		Detune:          true,
		Beats:           4,
		Length:          1,
	}
}

// Validate returns an error describing the first invalid parameter.
func (p Params) Validate() error {
	switch {
	case p.SampleRate != notepainter.SampleRate:
		return fmt.Errorf("sample rate must be %d, got %d", notepainter.SampleRate, p.SampleRate)
	case p.Rows <= 0:
		return fmt.Errorf("number of rows must be positive, got %d", p.Rows)
	case p.Amplitude < 0:
		return fmt.Errorf("amplitude cannot be negative, got %v", p.Amplitude)
	case p.BPM < 0:
		return fmt.Errorf("bpm cannot be negative, got %v", p.BPM)
	case p.BPM > 0 && p.Beats <= 0:
		return errors.New("beats must be positive when bpm is set")
	case p.BPM == 0 && p.Length <= 0:
		return errors.New("length must be positive when bpm is not set")
	}
	return nil
}

// SecondsPerUnit returns how many seconds one unit of X spans.
func (p Params) SecondsPerUnit() float64 {
	if p.BPM > 0 {
		return float64(p.Beats) * 60 / float64(p.BPM)
	}
	return float64(p.Length)
}

// EnvelopeLength returns the number of samples in every envelope of a
// drawing whose largest X is extent.
func (p Params) EnvelopeLength(extent float32) int {
	if p.BPM > 0 {
		return int(float64(extent)*p.SecondsPerUnit()*float64(p.SampleRate)) + 1
	}
	return int(p.SecondsPerUnit() * float64(p.SampleRate))
}

// Frequency converts a Y coordinate to a frequency in Hz using the equal
// tempered scale.
func (p Params) Frequency(y float32) float32 {
	pitch := (1-float64(y))*float64(p.Rows) + float64(p.RowBias)
	return float32(440 * math.Pow(2, (pitch+float64(p.ReferenceOffset))/12))
}

// RowNote returns the MIDI note number sounding at the centre of a row. Rows
// are counted from the bottom of the surface.
func (p Params) RowNote(row int) int {
	pitch := float64(row) + 0.5 + float64(p.RowBias) + float64(p.ReferenceOffset)
	return 69 + int(math.Round(pitch))
}

// IsBlackKey reports if the MIDI note is a sharp/flat in C major.
func IsBlackKey(note int) bool {
	switch ((note % 12) + 12) % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}
