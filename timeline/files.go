package timeline

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/notepainter/notepainter"
	"github.com/notepainter/notepainter/synth"
	"gopkg.in/yaml.v3"
)

// ReadDrawing loads a drawing file, replacing the history. Problems are
// reported as alerts; the return value tells if the drawing was loaded.
func (m *Model) ReadDrawing(r io.ReadCloser) bool {
	m.dialog = NoDialog
	b, err := io.ReadAll(r)
	r.Close() // if we can't close the file, it's not a big deal, so ignore the error
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Error reading a drawing file: %v", err), Error)
		return false
	}
	d, err := UnmarshalDrawing(b)
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Error unmarshaling a drawing file: %v", err), Error)
		return false
	}
	m.History().Load(d)
	m.filePath = ""
	if f, ok := r.(*os.File); ok {
		m.filePath = f.Name()
	}
	m.changedSinceSave = false
	return true
}

// WriteDrawing saves the history to w, closing it afterwards.
func (m *Model) WriteDrawing(w io.WriteCloser) bool {
	m.dialog = NoDialog
	contents, err := MarshalDrawing(m.history.Drawing())
	if err != nil {
		w.Close()
		m.Alerts().Add(fmt.Sprintf("Error marshaling a drawing file: %v", err), Error)
		return false
	}
	if _, err := w.Write(contents); err != nil {
		w.Close()
		m.Alerts().Add(fmt.Sprintf("Error writing to file: %v", err), Error)
		return false
	}
	if err := w.Close(); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error closing the drawing file: %v", err), Error)
		return false
	}
	if f, ok := w.(*os.File); ok {
		// when the drawing is saved to a file, we are quite confident that
		// the file is persisted
		m.filePath = f.Name()
		m.changedSinceSave = false
	}
	return true
}

// SaveFile writes the drawing to the given path.
func (m *Model) SaveFile(path string) bool {
	f, err := os.Create(path)
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Error creating file: %v", err), Error)
		return false
	}
	return m.WriteDrawing(f)
}

// OpenFile reads the drawing from the given path.
func (m *Model) OpenFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Error opening file: %v", err), Error)
		return false
	}
	return m.ReadDrawing(f)
}

// ExportWav renders the history and writes it to w as a 16-bit .wav file in
// the background. w needs to support seeking. The outcome is reported as an
// alert through the broker.
func (m *Model) ExportWav(w io.WriteCloser) {
	m.dialog = NoDialog
	ws, ok := w.(io.WriteSeeker)
	if !ok {
		w.Close()
		m.Alerts().Add("Error exporting: the target does not support seeking", Error)
		return
	}
	mixer := synth.Render(m.history.Strokes(), m.params)
	go func() {
		buf := notepainter.Render(mixer, mixer.Len())
		err := buf.Wav(ws)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			m.sendAlert("Export", fmt.Sprintf("Error exporting .wav: %v", err), Error)
			return
		}
		txt := fmt.Sprintf("Exported %s (%s)", notepainter.FormatDuration(buf.Duration()), notepainter.FormatBytes(notepainter.WavSize(len(buf))))
		m.sendAlert("Export", txt, Info)
	}()
}

// sendAlert is safe to call from any goroutine.
func (m *Model) sendAlert(name, message string, priority AlertPriority) {
	TrySend(m.broker.ToModel, MsgToModel{Data: Alert{
		Name:     name,
		Priority: priority,
		Message:  message,
		Duration: defaultAlertDuration,
	}})
}

// MarshalDrawing encodes a drawing in the .yml file format.
func MarshalDrawing(d notepainter.Drawing) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalDrawing decodes a drawing file. Unknown fields are errors.
func UnmarshalDrawing(b []byte) (notepainter.Drawing, error) {
	var d notepainter.Drawing
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && err != io.EOF {
		return notepainter.Drawing{}, err
	}
	return d, nil
}

// ReadDrawingFile reads a drawing file without a model, e.g. for batch
// rendering.
func ReadDrawingFile(path string) (notepainter.Drawing, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return notepainter.Drawing{}, fmt.Errorf("could not read drawing: %w", err)
	}
	d, err := UnmarshalDrawing(b)
	if err != nil {
		return notepainter.Drawing{}, fmt.Errorf("could not parse %v: %w", path, err)
	}
	return d, nil
}
