package gioui

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"gioui.org/unit"
	"github.com/notepainter/notepainter/timeline"
)

type (
	Preferences struct {
		Window WindowPreferences
		// Theme is "auto", "dark" or "light".
		Theme    string
		YmlError error `yaml:"-"`
	}

	WindowPreferences struct {
		Width     int
		Height    int
		Maximized bool `yaml:",omitempty"`
	}
)

//go:embed preferences.yml
var defaultPreferencesYaml []byte

func loadDefaultPreferences() Preferences {
	var preferences Preferences
	err := yaml.UnmarshalStrict(defaultPreferencesYaml, &preferences)
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal preferences: %w", err))
	}
	return preferences
}

// ReadCustomConfigYml modifies the target argument, i.e. needs a pointer
func ReadCustomConfigYml(filename string, target interface{}) (exists bool, err error) {
	bytes, exists, err := readCustomConfig(filename)
	if !exists {
		return false, err
	}
	return true, yaml.UnmarshalStrict(bytes, target)
}

func readCustomConfig(filename string) (b []byte, exists bool, err error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, false, err
	}
	b, err = os.ReadFile(filepath.Join(configDir, timeline.ConfigDirName, filename))
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func MakePreferences() Preferences {
	preferences := loadDefaultPreferences()
	exists, err := ReadCustomConfigYml("preferences.yml", &preferences)
	if exists {
		preferences.YmlError = err
	}
	return preferences
}

func (p Preferences) WindowSize() (unit.Dp, unit.Dp) {
	return unit.Dp(p.Window.Width), unit.Dp(p.Window.Height)
}
