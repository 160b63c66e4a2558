package timeline

import "github.com/notepainter/notepainter"

// HistoryModel is the view of the model for undoing and redoing strokes.
type HistoryModel Model

// History returns the History view of the model.
func (m *Model) History() *HistoryModel { return (*HistoryModel)(m) }

// Undo returns an Action to undo the last stroke.
func (m *HistoryModel) Undo() Action { return MakeAction((*historyUndo)(m)) }

type historyUndo HistoryModel

func (m *historyUndo) Enabled() bool { return m.history.CanUndo() }
func (m *historyUndo) Do() {
	if m.history.Undo() {
		m.pointer = pointerState{}
		(*Model)(m).changed(true)
	}
}

// Redo returns an Action to redo the last undone stroke.
func (m *HistoryModel) Redo() Action { return MakeAction((*historyRedo)(m)) }

type historyRedo HistoryModel

func (m *historyRedo) Enabled() bool { return m.history.CanRedo() }
func (m *historyRedo) Do() {
	if m.history.Redo() {
		m.pointer = pointerState{}
		(*Model)(m).changed(true)
	}
}

func (m *HistoryModel) Strokes() []notepainter.Stroke { return m.history.Strokes() }
func (m *HistoryModel) Drawing() notepainter.Drawing  { return m.history.Drawing() }
func (m *HistoryModel) Len() int                      { return m.history.Len() }
func (m *HistoryModel) SegmentCount() int             { return m.history.SegmentCount() }

// Load replaces the history with the drawing and redraws the canvas.
func (m *HistoryModel) Load(d notepainter.Drawing) {
	(*Model)(m).Play().Stop().Do()
	m.history.Load(d)
	m.pointer = pointerState{}
	(*Model)(m).changed(true)
}
