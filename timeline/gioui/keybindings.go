package gioui

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"gioui.org/io/key"
	"github.com/notepainter/notepainter/timeline"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type (
	KeyAction string

	KeyBinding struct {
		Key                                        string
		Shortcut, Ctrl, Command, Shift, Alt, Super bool
		Action                                     string
	}
)

var keyBindingMap = map[key.Event]string{}
var keyActionMap = map[KeyAction]string{} // holds an informative string of the last key bound to an action

//go:embed keybindings.yml
var defaultKeyBindings []byte

var hintCaser = cases.Title(language.English)

func init() {
	var keyBindings, userKeyBindings []KeyBinding
	if err := decodeKeyBindings(defaultKeyBindings, &keyBindings); err != nil {
		panic(fmt.Errorf("failed to unmarshal default keybindings: %w", err))
	}
	if exists, err := readCustomKeyBindings(&userKeyBindings); exists && err == nil {
		keyBindings = append(keyBindings, userKeyBindings...)
	}
	bindKeys(keyBindings)
}

func decodeKeyBindings(b []byte, target *[]KeyBinding) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	return dec.Decode(target)
}

func readCustomKeyBindings(target *[]KeyBinding) (exists bool, err error) {
	raw, exists, err := readCustomConfig("keybindings.yml")
	if !exists {
		return false, err
	}
	return true, decodeKeyBindings(raw, target)
}

// bindKeys adds the bindings to the global maps. Later bindings of the same
// key replace earlier ones; an empty action unbinds the key.
func bindKeys(keyBindings []KeyBinding) {
	for _, kb := range keyBindings {
		var mods key.Modifiers
		if kb.Shortcut {
			mods |= key.ModShortcut
		}
		if kb.Ctrl {
			mods |= key.ModCtrl
		}
		if kb.Command {
			mods |= key.ModCommand
		}
		if kb.Shift {
			mods |= key.ModShift
		}
		if kb.Alt {
			mods |= key.ModAlt
		}
		if kb.Super {
			mods |= key.ModSuper
		}
		keyEvent := key.Event{Name: key.Name(kb.Key), Modifiers: mods, State: key.Press}
		if action, ok := keyBindingMap[keyEvent]; ok {
			delete(keyActionMap, KeyAction(action))
		}
		if kb.Action == "" {
			delete(keyBindingMap, keyEvent)
			continue
		}
		keyBindingMap[keyEvent] = kb.Action
		modString := strings.Replace(mods.String(), "-", "+", -1)
		text := kb.Key
		if modString != "" {
			text = modString + "+" + text
		}
		keyActionMap[KeyAction(kb.Action)] = text
	}
}

// actionHint turns an action name into a tooltip, e.g. "SaveDrawingAs"
// becomes "Save Drawing As (Ctrl+Shift+S)".
func actionHint(action string) string {
	var words []string
	start := 0
	for i, r := range action {
		if i > start && unicode.IsUpper(r) {
			words = append(words, action[start:i])
			start = i
		}
	}
	words = append(words, action[start:])
	hint := hintCaser.String(strings.ToLower(strings.Join(words, " ")))
	if k := keyActionMap[KeyAction(action)]; k != "" {
		hint += fmt.Sprintf(" (%s)", k)
	}
	return hint
}

// KeyEvent performs the action bound to a key press.
func (e *Editor) KeyEvent(ev key.Event) {
	if ev.State != key.Press {
		return
	}
	action, ok := keyBindingMap[ev]
	if !ok {
		return
	}
	switch action {
	case "Undo":
		e.History().Undo().Do()
	case "Redo":
		e.History().Redo().Do()
	case "PlayingToggle":
		e.Play().Playing().Toggle()
	case "NewDrawing":
		e.NewDrawing().Do()
	case "OpenDrawing":
		e.OpenDrawing().Do()
	case "SaveDrawing":
		e.SaveDrawing().Do()
	case "SaveDrawingAs":
		e.SaveDrawingAs().Do()
	case "ExportWav":
		e.Export().Do()
	case "Quit":
		e.Quit().Do()
	case "Cancel":
		e.Cancel().Do()
	case "ShowRowsToggle":
		e.ShowRows().Toggle()
	case "DetuneToggle":
		e.Detune().Toggle()
	case "ZoomIn":
		e.surface.zoom(1)
	case "ZoomOut":
		e.surface.zoom(-1)
	case "ResetView":
		e.SetView(timeline.DefaultView())
	}
}
