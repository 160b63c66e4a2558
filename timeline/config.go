package timeline

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/notepainter/notepainter/synth"
	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Synth    synth.Params
		Canvas   CanvasConfig
		Recovery RecoveryConfig
	}

	// CanvasConfig is the resolution of the bitmap before the window has
	// told its size, and of headless renders.
	CanvasConfig struct {
		Width  int
		Height int
	}

	RecoveryConfig struct {
		// Interval is the minimum time between two automatic recovery saves.
		Interval time.Duration
	}
)

// ConfigDirName is the subdirectory of the user config directory holding the
// user's configuration and the recovery file.
const ConfigDirName = "notepainter"

//go:embed config.yml
var defaultConfigYaml []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	var ret Config
	if err := decodeConfig(defaultConfigYaml, &ret); err != nil {
		panic(fmt.Errorf("failed to unmarshal default config: %w", err))
	}
	return ret
}

// ReadConfig returns the built-in configuration overridden by the user's
// config.yml, if it exists. path overrides the location of the user's file.
func ReadConfig(path string) (Config, error) {
	ret := DefaultConfig()
	if path == "" {
		if err := ReadCustomConfig("config.yml", &ret); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return ret, err
		}
	} else {
		b, err := os.ReadFile(path)
		if err != nil {
			return ret, fmt.Errorf("could not read config: %w", err)
		}
		if err := decodeConfig(b, &ret); err != nil {
			return ret, fmt.Errorf("could not parse %v: %w", path, err)
		}
	}
	if err := ret.Validate(); err != nil {
		return ret, err
	}
	return ret, nil
}

func (c Config) Validate() error {
	if err := c.Synth.Validate(); err != nil {
		return fmt.Errorf("invalid synth config: %w", err)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	return nil
}

// ReadCustomConfig decodes the named file from the user config directory
// into target, which needs to be a pointer. Fields missing from the file
// keep their values.
func ReadCustomConfig(filename string, target any) error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return err
	}
	path := filepath.Join(configDir, ConfigDirName, filename)
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := decodeConfig(b, target); err != nil {
		return fmt.Errorf("could not parse %v: %w", path, err)
	}
	return nil
}

// RecoveryFilePath returns the default location of the recovery file, or ""
// if the user config directory is not known.
func RecoveryFilePath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, "recovery.yml")
}

func decodeConfig(b []byte, target any) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
