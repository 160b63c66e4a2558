package gioui

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/notepainter/notepainter/timeline"
)

type (
	AlertStyle struct {
		Bg   color.NRGBA
		Text color.NRGBA
	}

	AlertStyles struct {
		Info    AlertStyle
		Warning AlertStyle
		Error   AlertStyle
	}

	AlertsWidget struct {
		Theme *Theme
		Model *timeline.Alerts
	}
)

var alertMargin = layout.UniformInset(unit.Dp(6))
var alertInset = layout.UniformInset(unit.Dp(6))

func Alerts(m *timeline.Alerts, th *Theme) AlertsWidget {
	return AlertsWidget{
		Theme: th,
		Model: m,
	}
}

// Layout stacks the alerts at the bottom of the constraints, sliding them in
// and out as they fade. The fading itself is advanced by Model.Update.
func (a *AlertsWidget) Layout(gtx C) D {
	var totalY float64 = float64(gtx.Dp(38))
	for _, alert := range a.Model.Iterate {
		var style *AlertStyle
		switch alert.Priority {
		case timeline.Warning:
			style = &a.Theme.Alert.Warning
		case timeline.Error:
			style = &a.Theme.Alert.Error
		default:
			style = &a.Theme.Alert.Info
		}
		bg := func(gtx C) D {
			paint.FillShape(gtx.Ops, style.Bg, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return D{Size: gtx.Constraints.Min}
		}
		label := LabelStyle{
			Text:      alert.Message,
			Color:     style.Text,
			Alignment: layout.Center,
			Font:      labelDefaultFont,
			FontSize:  unit.Sp(14),
			Shaper:    a.Theme.Material.Shaper,
		}
		alertMargin.Layout(gtx, func(gtx C) D {
			return layout.S.Layout(gtx, func(gtx C) D {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				recording := op.Record(gtx.Ops)
				dims := layout.Stack{Alignment: layout.Center}.Layout(gtx,
					layout.Expanded(bg),
					layout.Stacked(func(gtx C) D {
						return alertInset.Layout(gtx, label.Layout)
					}),
				)
				macro := recording.Stop()
				delta := float64(dims.Size.Y + gtx.Dp(alertMargin.Bottom))
				op.Offset(image.Point{0, int(-totalY*alert.FadeLevel + delta*(1-alert.FadeLevel))}).Add(gtx.Ops)
				totalY += delta
				macro.Add(gtx.Ops)
				return dims
			})
		})
	}
	return D{}
}
