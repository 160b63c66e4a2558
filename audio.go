package notepainter

import "time"

// SampleRate is the sample rate of all audio produced by Note Painter. The
// audio is always mono.
const SampleRate = 44100

type (
	// AudioBuffer is a fully rendered mono buffer of samples, nominally in
	// the range [-1, 1].
	AudioBuffer []float32

	// AudioSource is a pull-based producer of mono samples at SampleRate.
	// NextSample returns ok = false once the source is exhausted; after that,
	// it keeps returning ok = false. Implementations must not allocate or
	// lock in NextSample, as it is called from the audio thread.
	AudioSource interface {
		NextSample() (sample float32, ok bool)
	}

	// AudioSink plays one AudioSource at a time. Play stops whatever was
	// playing before and takes exclusive ownership of the source. Stop is
	// idempotent and discards the remaining samples.
	AudioSink interface {
		Play(source AudioSource) error
		Stop()
	}

	// AudioContext is the audio backend, giving access to an output.
	AudioContext interface {
		Output() AudioSink
		Close() error
	}
)

// Render pulls all samples out of the source into a buffer. sizeHint is used
// for the initial capacity and can be zero.
func Render(source AudioSource, sizeHint int) AudioBuffer {
	ret := make(AudioBuffer, 0, sizeHint)
	for {
		s, ok := source.NextSample()
		if !ok {
			return ret
		}
		ret = append(ret, s)
	}
}

// Duration returns the play time of the buffer.
func (b AudioBuffer) Duration() time.Duration {
	return SamplesToDuration(len(b))
}

// SamplesToDuration converts a number of samples at SampleRate to a duration.
func SamplesToDuration(samples int) time.Duration {
	return time.Duration(samples) * time.Second / SampleRate
}

// Source returns an AudioSource playing the buffer from the beginning.
func (b AudioBuffer) Source() AudioSource {
	return &bufferSource{buffer: b}
}

type bufferSource struct {
	buffer AudioBuffer
	pos    int
}

func (s *bufferSource) NextSample() (float32, bool) {
	if s.pos >= len(s.buffer) {
		return 0, false
	}
	s.pos++
	return s.buffer[s.pos-1], true
}
