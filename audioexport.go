package notepainter

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Wav encodes the buffer as a mono 16-bit PCM .wav file. The encoder needs to
// seek back to patch the header sizes, hence io.WriteSeeker.
func (b AudioBuffer) Wav(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, SampleRate, 16, 1, 1) // 1 = PCM
	intBuf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  SampleRate,
		},
		Data:           make([]int, len(b)),
		SourceBitDepth: 16,
	}
	for i, v := range b {
		intBuf.Data[i] = int(ToPCM16(v))
	}
	if err := enc.Write(intBuf); err != nil {
		return fmt.Errorf("could not encode wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("could not finish wav file: %w", err)
	}
	return nil
}

// WavBytes returns the buffer encoded as by Wav.
func (b AudioBuffer) WavBytes() ([]byte, error) {
	var ws memWriteSeeker
	if err := b.Wav(&ws); err != nil {
		return nil, err
	}
	return ws.buf, nil
}

// Raw returns the buffer as headerless little-endian data, either float32 or
// int16 samples.
func (b AudioBuffer) Raw(pcm16 bool) ([]byte, error) {
	buf := new(bytes.Buffer)
	var err error
	if pcm16 {
		int16data := make([]int16, len(b))
		for i, v := range b {
			int16data[i] = ToPCM16(v)
		}
		err = binary.Write(buf, binary.LittleEndian, int16data)
	} else {
		err = binary.Write(buf, binary.LittleEndian, []float32(b))
	}
	if err != nil {
		return nil, fmt.Errorf("could not binary write data to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// ToPCM16 converts a sample to a signed 16-bit integer, clamping it to
// [-1, 1] first.
func ToPCM16(v float32) int16 {
	if v != v { // NaN
		return 0
	}
	v = min(max(v, -1), 1)
	return int16(v * math.MaxInt16)
}

type memWriteSeeker struct {
	buf []byte
	pos int
}

func (m *memWriteSeeker) Write(p []byte) (int, error) {
	if end := m.pos + len(p); end > len(m.buf) {
		m.buf = append(m.buf, make([]byte, end-len(m.buf))...)
	}
	n := copy(m.buf[m.pos:], p)
	m.pos += n
	return n, nil
}

func (m *memWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(m.pos) + offset
	case io.SeekEnd:
		pos = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("negative position %d", pos)
	}
	m.pos = int(pos)
	return pos, nil
}
