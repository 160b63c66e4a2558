package gioui

import (
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	dark "github.com/thiagokokada/dark-mode-go"
)

type Theme struct {
	Material *material.Theme

	Background color.NRGBA
	Ink        color.NRGBA
	WhiteRow   color.NRGBA
	BlackRow   color.NRGBA
	Playline   color.NRGBA
	Toolbar    color.NRGBA
	Text       color.NRGBA
	Disabled   color.NRGBA
	Alert      AlertStyles
}

var fontCollection = gofont.Collection()

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
var black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
var transparent = color.NRGBA{A: 0}

var primaryColor = color.NRGBA{R: 206, G: 147, B: 216, A: 255}
var secondaryColor = color.NRGBA{R: 128, G: 222, B: 234, A: 255}

var highEmphasisTextColor = color.NRGBA{R: 222, G: 222, B: 222, A: 222}
var disabledTextColor = color.NRGBA{R: 255, G: 255, B: 255, A: 97}

var labelDefaultFont = fontCollection[6].Font
var labelDefaultFontSize = unit.Sp(16)

var errorColor = color.NRGBA{R: 207, G: 102, B: 121, A: 255}
var warningColor = color.NRGBA{R: 251, G: 192, B: 45, A: 255}

var darkBackgroundColor = color.NRGBA{R: 18, G: 18, B: 18, A: 255}
var darkToolbarColor = color.NRGBA{R: 37, G: 37, B: 38, A: 255}
var darkWhiteRowColor = color.NRGBA{R: 31, G: 37, B: 38, A: 255}
var darkBlackRowColor = color.NRGBA{R: 24, G: 26, B: 27, A: 255}
var darkPlaylineColor = color.NRGBA{R: 252, G: 186, B: 3, A: 255}

var lightBackgroundColor = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
var lightToolbarColor = color.NRGBA{R: 224, G: 224, B: 226, A: 255}
var lightWhiteRowColor = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
var lightBlackRowColor = color.NRGBA{R: 228, G: 232, B: 236, A: 255}
var lightInkColor = color.NRGBA{R: 106, G: 27, B: 154, A: 255}
var lightTextColor = color.NRGBA{R: 33, G: 33, B: 33, A: 222}
var lightDisabledTextColor = color.NRGBA{R: 0, G: 0, B: 0, A: 97}

// NewTheme returns the dark or the light theme. mode is "dark", "light" or
// "auto"; auto asks the desktop and falls back to dark if it cannot tell.
func NewTheme(mode string) (*Theme, error) {
	var err error
	useDark := true
	switch mode {
	case "light":
		useDark = false
	case "dark":
	default:
		var isDark bool
		if isDark, err = dark.IsDarkMode(); err == nil {
			useDark = isDark
		}
	}
	th := darkTheme()
	if !useDark {
		th = lightTheme()
	}
	th.Material.Shaper = text.NewShaper(text.WithCollection(fontCollection))
	th.Material.TextSize = labelDefaultFontSize
	th.Alert = AlertStyles{
		Info:    AlertStyle{Bg: color.NRGBA{R: 50, G: 50, B: 51, A: 255}, Text: highEmphasisTextColor},
		Warning: AlertStyle{Bg: warningColor, Text: black},
		Error:   AlertStyle{Bg: errorColor, Text: black},
	}
	return th, err
}

func darkTheme() *Theme {
	m := material.NewTheme()
	m.Palette = material.Palette{
		Bg:         darkBackgroundColor,
		Fg:         highEmphasisTextColor,
		ContrastBg: primaryColor,
		ContrastFg: black,
	}
	return &Theme{
		Material:   m,
		Background: darkBackgroundColor,
		Ink:        primaryColor,
		WhiteRow:   darkWhiteRowColor,
		BlackRow:   darkBlackRowColor,
		Playline:   darkPlaylineColor,
		Toolbar:    darkToolbarColor,
		Text:       highEmphasisTextColor,
		Disabled:   disabledTextColor,
	}
}

func lightTheme() *Theme {
	m := material.NewTheme()
	m.Palette = material.Palette{
		Bg:         lightBackgroundColor,
		Fg:         lightTextColor,
		ContrastBg: lightInkColor,
		ContrastFg: white,
	}
	return &Theme{
		Material:   m,
		Background: lightBackgroundColor,
		Ink:        lightInkColor,
		WhiteRow:   lightWhiteRowColor,
		BlackRow:   lightBlackRowColor,
		Playline:   secondaryColor,
		Toolbar:    lightToolbarColor,
		Text:       lightTextColor,
		Disabled:   lightDisabledTextColor,
	}
}
