package gioui

import (
	"log"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"github.com/notepainter/notepainter/timeline"
)

type (
	// ActionClickable is a clickable that performs an Action when clicked.
	ActionClickable struct {
		Clickable widget.Clickable
		Action    timeline.Action
		TipArea   component.TipArea
	}

	// BoolClickable is a clickable that toggles a Bool when clicked.
	BoolClickable struct {
		Clickable widget.Clickable
		Bool      timeline.Bool
		TipArea   component.TipArea
	}

	TipIconButtonStyle struct {
		IconButtonStyle material.IconButtonStyle
		Tooltip         component.Tooltip
		tipArea         *component.TipArea
	}
)

var iconCache = map[*byte]*widget.Icon{}

// widgetForIcon returns the icon widget for IconVG data, decoding it only
// the first time.
func widgetForIcon(icon []byte) *widget.Icon {
	if w, ok := iconCache[&icon[0]]; ok {
		return w
	}
	w, err := widget.NewIcon(icon)
	if err != nil {
		log.Fatal(err)
	}
	iconCache[&icon[0]] = w
	return w
}

func NewActionClickable(a timeline.Action) *ActionClickable {
	return &ActionClickable{Action: a}
}

func NewBoolClickable(b timeline.Bool) *BoolClickable {
	return &BoolClickable{Bool: b}
}

func IconButton(th *Theme, w *widget.Clickable, icon []byte, description string, enabled bool) material.IconButtonStyle {
	ret := material.IconButton(th.Material, w, widgetForIcon(icon), description)
	ret.Background = transparent
	ret.Inset = layout.UniformInset(unit.Dp(6))
	if enabled {
		ret.Color = th.Ink
	} else {
		ret.Color = th.Disabled
	}
	return ret
}

// ActionIcon returns a button performing the action of a, grayed out when
// the action is disabled. Clicks are consumed here.
func ActionIcon(gtx C, th *Theme, a *ActionClickable, icon []byte, action string) TipIconButtonStyle {
	for a.Clickable.Clicked(gtx) {
		a.Action.Do()
	}
	return TipIconButtonStyle{
		IconButtonStyle: IconButton(th, &a.Clickable, icon, action, a.Action.Enabled()),
		Tooltip:         component.PlatformTooltip(th.Material, actionHint(action)),
		tipArea:         &a.TipArea,
	}
}

// ToggleIcon returns a button showing onIcon when b is true and offIcon when
// it is false.
func ToggleIcon(gtx C, th *Theme, b *BoolClickable, offIcon, onIcon []byte, action string) TipIconButtonStyle {
	for b.Clickable.Clicked(gtx) {
		b.Bool.Toggle()
	}
	icon := offIcon
	if b.Bool.Value() {
		icon = onIcon
	}
	return TipIconButtonStyle{
		IconButtonStyle: IconButton(th, &b.Clickable, icon, action, b.Bool.Enabled()),
		Tooltip:         component.PlatformTooltip(th.Material, actionHint(action)),
		tipArea:         &b.TipArea,
	}
}

func (t *TipIconButtonStyle) Layout(gtx C) D {
	return t.tipArea.Layout(gtx, t.Tooltip, t.IconButtonStyle.Layout)
}
