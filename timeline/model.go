package timeline

import (
	"fmt"
	"time"

	"github.com/notepainter/notepainter"
	"github.com/notepainter/notepainter/canvas"
	"github.com/notepainter/notepainter/synth"
	"golang.org/x/time/rate"
)

// Model implements the mutable state of the editor: the stroke history, the
// canvas rasterized from it, playback and file handling. It is owned by one
// goroutine, usually the GUI event loop; background work reports back through
// the Broker.
type (
	Model struct {
		history  History
		canvas   *canvas.Canvas
		params   synth.Params
		view     View
		sink     notepainter.AudioSink
		playback playback
		pointer  pointerState
		alerts   []Alert
		broker   *Broker
		dialog   Dialog

		showRows   bool
		confirmNew bool
		quitted    bool

		filePath             string
		changedSinceSave     bool
		changedSinceRecovery bool
		recoveryFilePath     string
		recoveryLimiter      *rate.Limiter
	}

	// Dialog tells the GUI which file dialog the model is waiting for.
	Dialog int

	nullSink struct{}
)

const (
	NoDialog Dialog = iota
	OpenExplorer
	SaveAsExplorer
	ExportExplorer
)

// NewModel creates a model with an empty history. sink can be nil, in which
// case playback is silent. dev can be nil for a headless canvas.
// recoveryFilePath can be empty to disable recovery files.
func NewModel(broker *Broker, sink notepainter.AudioSink, dev canvas.Device, cfg Config, recoveryFilePath string) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := canvas.New(dev, cfg.Canvas.Width, cfg.Canvas.Height)
	if err != nil {
		return nil, fmt.Errorf("could not create canvas: %w", err)
	}
	if sink == nil {
		sink = nullSink{}
	}
	if broker == nil {
		broker = NewBroker()
	}
	interval := cfg.Recovery.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Model{
		canvas:           c,
		params:           cfg.Synth,
		view:             DefaultView(),
		sink:             sink,
		broker:           broker,
		showRows:         true,
		recoveryFilePath: recoveryFilePath,
		recoveryLimiter:  rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// Close stops playback and releases the canvas texture.
func (m *Model) Close() {
	m.Play().Stop().Do()
	m.canvas.Close()
}

func (m *Model) Broker() *Broker        { return m.broker }
func (m *Model) Canvas() *canvas.Canvas { return m.canvas }
func (m *Model) Params() synth.Params   { return m.params }
func (m *Model) View() View             { return m.view }
func (m *Model) FilePath() string       { return m.filePath }
func (m *Model) ChangedSinceSave() bool { return m.changedSinceSave }
func (m *Model) Dialog() Dialog         { return m.dialog }
func (m *Model) Quitted() bool          { return m.quitted }
func (m *Model) SetView(v View)         { m.view = v }

func (m *Model) SetSink(s notepainter.AudioSink) {
	m.Play().Stop().Do()
	if s == nil {
		s = nullSink{}
	}
	m.sink = s
}

// Resize changes the resolution of the canvas, replaying the history if the
// size actually changed.
func (m *Model) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == m.canvas.Width() && height == m.canvas.Height() {
		return
	}
	m.canvas.Resize(width, height, m.history.Strokes())
}

// Update advances playback and the alerts by d. It returns true if the
// caller should update again soon, e.g. to move the play cursor.
func (m *Model) Update(d time.Duration) bool {
	playing := m.Play().update(d)
	animating := m.Alerts().Update(d)
	return playing || animating
}

// ProcessMsg handles a message sent through the broker.
func (m *Model) ProcessMsg(msg MsgToModel) {
	switch e := msg.Data.(type) {
	case Alert:
		m.Alerts().AddAlert(e)
	case func():
		e()
	case nil:
	default:
		panic(fmt.Sprintf("unknown message type %T", e))
	}
}

// Render synthesizes the current history into a buffer.
func (m *Model) Render() notepainter.AudioBuffer {
	mixer := synth.Render(m.history.Strokes(), m.params)
	return notepainter.Render(mixer, mixer.Len())
}

func (m *Model) changed(redraw bool) {
	if redraw {
		m.canvas.Redraw(m.history.Strokes())
	}
	m.changedSinceSave = true
	m.changedSinceRecovery = true
	m.confirmNew = false
}

// NewDrawing returns an Action clearing the history. If there are unsaved
// changes, the first Do only warns and a second Do is needed.
func (m *Model) NewDrawing() Action { return MakeAction((*newDrawing)(m)) }

type newDrawing Model

func (m *newDrawing) Do() {
	if m.changedSinceSave && !m.confirmNew {
		m.confirmNew = true
		(*Model)(m).Alerts().AddNamed("NewDrawing", "Unsaved changes. Press again to discard them.", Warning)
		return
	}
	(*Model)(m).Play().Stop().Do()
	m.history.Load(notepainter.Drawing{})
	m.canvas.Redraw(nil)
	m.filePath = ""
	m.changedSinceSave = false
	m.changedSinceRecovery = true
	m.confirmNew = false
	(*Model)(m).Alerts().ClearNamed("NewDrawing")
}

func (m *Model) OpenDrawing() Action { return MakeAction((*openDrawing)(m)) }

type openDrawing Model

func (m *openDrawing) Do() { m.dialog = OpenExplorer }

// SaveDrawing returns an Action saving to the current file, or asking for a
// file if there is none.
func (m *Model) SaveDrawing() Action { return MakeAction((*saveDrawing)(m)) }

type saveDrawing Model

func (m *saveDrawing) Do() {
	if m.filePath == "" {
		m.dialog = SaveAsExplorer
		return
	}
	(*Model)(m).SaveFile(m.filePath)
}

func (m *Model) SaveDrawingAs() Action { return MakeAction((*saveDrawingAs)(m)) }

type saveDrawingAs Model

func (m *saveDrawingAs) Do() { m.dialog = SaveAsExplorer }

func (m *Model) Export() Action { return MakeAction((*exportAction)(m)) }

type exportAction Model

func (m *exportAction) Enabled() bool { return m.history.SegmentCount() > 0 }
func (m *exportAction) Do()           { m.dialog = ExportExplorer }

// Cancel closes the pending dialog without doing anything.
func (m *Model) Cancel() Action { return MakeAction((*cancel)(m)) }

type cancel Model

func (m *cancel) Do() { m.dialog = NoDialog }

func (m *Model) Quit() Action { return MakeAction((*quit)(m)) }

type quit Model

func (m *quit) Do() { m.quitted = true }

func (nullSink) Play(notepainter.AudioSource) error { return nil }
func (nullSink) Stop()                              {}
