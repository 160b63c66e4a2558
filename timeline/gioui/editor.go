package gioui

import (
	"fmt"
	"image"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/x/explorer"
	"github.com/notepainter/notepainter/timeline"
)

type (
	// Editor is the window of the application: a toolbar above the drawing
	// surface, with alerts floating at the bottom.
	Editor struct {
		Theme     *Theme
		Toolbar   *Toolbar
		Explorer  *explorer.Explorer
		Exploring bool

		surface     Surface
		device      *Device
		preferences Preferences
		prevFrame   time.Time

		*timeline.Model
	}

	C = layout.Context
	D = layout.Dimensions
)

// frameInterval is how often the window redraws while something animates.
const frameInterval = 16 * time.Millisecond

// NewEditor creates the window state for model. dev must be the device the
// model's canvas was created with.
func NewEditor(model *timeline.Model, dev *Device) *Editor {
	e := &Editor{
		Toolbar:     NewToolbar(model),
		device:      dev,
		preferences: MakePreferences(),
		Model:       model,
	}
	if err := e.preferences.YmlError; err != nil {
		model.Alerts().AddAlert(timeline.Alert{
			Priority: timeline.Warning,
			Message:  fmt.Sprintf("Error in preferences.yml: %v", err),
			Duration: 10 * time.Second,
		})
	}
	var warn error
	if e.Theme, warn = NewTheme(e.preferences.Theme); warn != nil {
		log.Printf("could not detect dark mode, using the dark theme: %v", warn)
	}
	return e
}

// Main runs the event loop until the window is closed. It blocks, so it
// should run on its own goroutine while app.Main runs on the main one.
func (e *Editor) Main() {
	var ops op.Ops
	titlePath := e.FilePath()
	w := new(app.Window)
	w.Option(app.Title(titleFromPath(titlePath)), app.Size(e.preferences.WindowSize()))
	if e.preferences.Window.Maximized {
		w.Option(app.Maximized.Option())
	}
	e.Explorer = explorer.NewExplorer(w)
	acks := make(chan struct{})
	events := make(chan event.Event)
	go func() {
		for {
			ev := w.Event()
			events <- ev
			<-acks
			if _, ok := ev.(app.DestroyEvent); ok {
				return
			}
		}
	}()
	recoveryTicker := time.NewTicker(time.Second)
	defer recoveryTicker.Stop()
	e.prevFrame = time.Now()
	for {
		select {
		case msg := <-e.Broker().ToModel:
			e.ProcessMsg(msg)
			w.Invalidate()
		case ev := <-events:
			switch ev := ev.(type) {
			case app.DestroyEvent:
				acks <- struct{}{}
				if ev.Err != nil {
					log.Printf("window closed with error: %v", ev.Err)
				}
				e.shutdown()
				return
			case app.FrameEvent:
				if titlePath != e.FilePath() {
					titlePath = e.FilePath()
					w.Option(app.Title(titleFromPath(titlePath)))
				}
				gtx := app.NewContext(&ops, ev)
				e.Layout(gtx)
				ev.Frame(gtx.Ops)
				if e.Quitted() {
					w.Perform(system.ActionClose)
				}
			}
			acks <- struct{}{}
		case <-recoveryTicker.C:
			if err := e.AutoSaveRecovery(); err != nil {
				log.Printf("could not save recovery file: %v", err)
			}
		}
	}
}

// shutdown stops audio and leaves a recovery file behind only if there is
// unsaved work.
func (e *Editor) shutdown() {
	e.Model.Close()
	var err error
	if e.ChangedSinceSave() {
		err = e.SaveRecovery()
	} else {
		err = e.RemoveRecovery()
	}
	if err != nil {
		log.Printf("recovery: %v", err)
	}
}

func titleFromPath(path string) string {
	if path == "" {
		return "Note Painter"
	}
	return fmt.Sprintf("Note Painter - %s", path)
}

func (e *Editor) Layout(gtx C) {
	now := gtx.Now
	if e.Update(now.Sub(e.prevFrame)) {
		gtx.Execute(op.InvalidateCmd{At: now.Add(frameInterval)})
	}
	e.prevFrame = now

	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, e.Theme.Background)
	event.Op(gtx.Ops, e)
	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D { return e.Toolbar.Layout(gtx, e) }),
		layout.Flexed(1, func(gtx C) D { return e.surface.Layout(gtx, e) }),
	)
	alerts := Alerts(e.Alerts(), e.Theme)
	alerts.Layout(gtx)
	e.showDialog()
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "", Optional: key.ModAlt | key.ModCommand | key.ModShift | key.ModShortcut | key.ModSuper},
			transfer.TargetFilter{Target: e, Type: "application/text"},
		)
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case key.Event:
			e.KeyEvent(ev)
		case transfer.DataEvent:
			e.ReadDrawing(ev.Open())
		}
	}
}

func (e *Editor) showDialog() {
	if e.Exploring {
		return
	}
	switch e.Dialog() {
	case timeline.OpenExplorer:
		e.explorerChooseFile(func(r io.ReadCloser) { e.ReadDrawing(r) }, ".yml", ".yaml")
	case timeline.SaveAsExplorer:
		filename := "drawing.yml"
		if p := e.FilePath(); p != "" {
			filename = filepath.Base(p)
		}
		e.explorerCreateFile(func(w io.WriteCloser) { e.WriteDrawing(w) }, filename)
	case timeline.ExportExplorer:
		filename := "drawing.wav"
		if p := e.FilePath(); p != "" {
			filename = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)) + ".wav"
		}
		e.explorerCreateFile(e.ExportWav, filename)
	}
}

func (e *Editor) explorerChooseFile(success func(io.ReadCloser), extensions ...string) {
	e.Exploring = true
	go func() {
		file, err := e.Explorer.ChooseFile(extensions...)
		e.Broker().ToModel <- timeline.MsgToModel{Data: func() {
			e.Exploring = false
			if err == nil {
				success(file)
			} else {
				e.Cancel().Do()
				if err != explorer.ErrUserDecline {
					e.Alerts().Add(err.Error(), timeline.Error)
				}
			}
		}}
	}()
}

func (e *Editor) explorerCreateFile(success func(io.WriteCloser), filename string) {
	e.Exploring = true
	go func() {
		file, err := e.Explorer.CreateFile(filename)
		e.Broker().ToModel <- timeline.MsgToModel{Data: func() {
			e.Exploring = false
			if err == nil {
				success(file)
			} else {
				e.Cancel().Do()
				if err != explorer.ErrUserDecline {
					e.Alerts().Add(err.Error(), timeline.Error)
				}
			}
		}}
	}()
}
