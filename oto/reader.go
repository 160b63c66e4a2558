package oto

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/notepainter/notepainter"
)

// Reader adapts an AudioSource to the io.Reader oto pulls from, encoding the
// samples as little-endian float32. It is used on the audio goroutine only,
// and does not allocate.
type Reader struct {
	source   notepainter.AudioSource
	sample   [4]byte
	buffered []byte // tail of a sample that did not fit in the last read
	done     bool
}

func NewReader(source notepainter.AudioSource) *Reader {
	return &Reader{source: source}
}

// Read fills p with samples. A sample split by the end of p is continued on
// the next call. It returns io.EOF once the source is exhausted and all its
// bytes have been returned.
func (r *Reader) Read(p []byte) (int, error) {
	n := copy(p, r.buffered)
	r.buffered = r.buffered[n:]
	for !r.done && n < len(p) {
		s, ok := r.source.NextSample()
		if !ok {
			r.done = true
			break
		}
		if len(p)-n >= 4 {
			binary.LittleEndian.PutUint32(p[n:], math.Float32bits(s))
			n += 4
			continue
		}
		binary.LittleEndian.PutUint32(r.sample[:], math.Float32bits(s))
		c := copy(p[n:], r.sample[:])
		r.buffered = r.sample[c:]
		n += c
	}
	if n == 0 && r.done && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}
