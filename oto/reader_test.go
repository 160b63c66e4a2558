package oto_test

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/notepainter/notepainter/oto"
)

type sliceSource struct {
	samples []float32
	pos     int
}

func (s *sliceSource) NextSample() (float32, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	s.pos++
	return s.samples[s.pos-1], true
}

func readAll(t *testing.T, r io.Reader, size int) []byte {
	t.Helper()
	buf := make([]byte, size)
	var ret []byte
	for {
		n, err := r.Read(buf)
		ret = append(ret, buf[:n]...)
		if err == io.EOF {
			return ret
		}
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if n == 0 {
			t.Fatalf("Read returned no bytes and no error")
		}
	}
}

func TestReader(t *testing.T) {
	samples := []float32{0, 0.5, -1, 0.25, 1}
	// 16 holds whole samples, 10 and 3 split samples across reads
	for _, size := range []int{16, 10, 3, 1} {
		r := oto.NewReader(&sliceSource{samples: samples})
		b := readAll(t, r, size)
		if len(b) != 4*len(samples) {
			t.Fatalf("read size %v: expected %v bytes, got %v", size, 4*len(samples), len(b))
		}
		for i := range samples {
			if got := math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:])); got != samples[i] {
				t.Fatalf("read size %v, sample %v: expected %v, got %v", size, i, samples[i], got)
			}
		}
		if n, err := r.Read(make([]byte, size)); n != 0 || err != io.EOF {
			t.Fatalf("expected io.EOF after exhaustion, got %v, %v", n, err)
		}
	}
}

func TestReaderEmptySource(t *testing.T) {
	r := oto.NewReader(&sliceSource{})
	if n, err := r.Read(make([]byte, 16)); n != 0 || err != io.EOF {
		t.Fatalf("expected io.EOF, got %v, %v", n, err)
	}
}
