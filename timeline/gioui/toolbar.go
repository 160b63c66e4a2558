package gioui

import (
	"fmt"
	"path/filepath"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/notepainter/notepainter"
	"github.com/notepainter/notepainter/timeline"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

// Toolbar is the row of buttons above the drawing surface.
type Toolbar struct {
	NewBtn    *ActionClickable
	OpenBtn   *ActionClickable
	SaveBtn   *ActionClickable
	ExportBtn *ActionClickable
	UndoBtn   *ActionClickable
	RedoBtn   *ActionClickable
	PlayBtn   *BoolClickable
	RowsBtn   *BoolClickable
	DetuneBtn *BoolClickable
	QuitBtn   *ActionClickable
}

func NewToolbar(model *timeline.Model) *Toolbar {
	return &Toolbar{
		NewBtn:    NewActionClickable(model.NewDrawing()),
		OpenBtn:   NewActionClickable(model.OpenDrawing()),
		SaveBtn:   NewActionClickable(model.SaveDrawing()),
		ExportBtn: NewActionClickable(model.Export()),
		UndoBtn:   NewActionClickable(model.History().Undo()),
		RedoBtn:   NewActionClickable(model.History().Redo()),
		PlayBtn:   NewBoolClickable(model.Play().Playing()),
		RowsBtn:   NewBoolClickable(model.ShowRows()),
		DetuneBtn: NewBoolClickable(model.Detune()),
		QuitBtn:   NewActionClickable(model.Quit()),
	}
}

func (t *Toolbar) Layout(gtx C, e *Editor) D {
	th := e.Theme
	newBtn := ActionIcon(gtx, th, t.NewBtn, icons.ContentAdd, "NewDrawing")
	openBtn := ActionIcon(gtx, th, t.OpenBtn, icons.FileFolderOpen, "OpenDrawing")
	saveBtn := ActionIcon(gtx, th, t.SaveBtn, icons.ContentSave, "SaveDrawing")
	exportBtn := ActionIcon(gtx, th, t.ExportBtn, icons.ImageAudiotrack, "ExportWav")
	undoBtn := ActionIcon(gtx, th, t.UndoBtn, icons.ContentUndo, "Undo")
	redoBtn := ActionIcon(gtx, th, t.RedoBtn, icons.ContentRedo, "Redo")
	playBtn := ToggleIcon(gtx, th, t.PlayBtn, icons.AVPlayArrow, icons.AVStop, "PlayingToggle")
	rowsBtn := ToggleIcon(gtx, th, t.RowsBtn, icons.ToggleCheckBoxOutlineBlank, icons.ToggleCheckBox, "ShowRowsToggle")
	detuneBtn := ToggleIcon(gtx, th, t.DetuneBtn, icons.ToggleStarBorder, icons.ToggleStar, "DetuneToggle")
	quitBtn := ActionIcon(gtx, th, t.QuitBtn, icons.ActionExitToApp, "Quit")

	bg := func(gtx C) D {
		paint.FillShape(gtx.Ops, th.Toolbar, clip.Rect{Max: gtx.Constraints.Min}.Op())
		return D{Size: gtx.Constraints.Min}
	}
	buttons := func(gtx C) D {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(newBtn.Layout),
			layout.Rigid(openBtn.Layout),
			layout.Rigid(saveBtn.Layout),
			layout.Rigid(exportBtn.Layout),
			layout.Rigid(undoBtn.Layout),
			layout.Rigid(redoBtn.Layout),
			layout.Rigid(playBtn.Layout),
			layout.Rigid(rowsBtn.Layout),
			layout.Rigid(detuneBtn.Layout),
			layout.Flexed(1, func(gtx C) D {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return layout.Inset{Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx, Label(t.status(e), th.Text, th.Material.Shaper))
			}),
			layout.Rigid(quitBtn.Layout),
		)
	}
	return layout.Stack{}.Layout(gtx, layout.Expanded(bg), layout.Stacked(buttons))
}

func (t *Toolbar) status(e *Editor) string {
	name := "untitled"
	if p := e.FilePath(); p != "" {
		name = filepath.Base(p)
	}
	if e.ChangedSinceSave() {
		name += "*"
	}
	if e.Play().IsPlaying() {
		return fmt.Sprintf("%s  %s / %s", name,
			notepainter.FormatDuration(e.Play().Position()),
			notepainter.FormatDuration(e.Play().Duration()))
	}
	return fmt.Sprintf("%s  %d strokes", name, e.History().Len())
}
