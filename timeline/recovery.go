package timeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/notepainter/notepainter"
	"gopkg.in/yaml.v3"
)

// recoveryData is what gets saved to the recovery file, so that unsaved work
// survives a crash.
type recoveryData struct {
	Drawing          notepainter.Drawing
	FilePath         string `yaml:",omitempty"`
	ChangedSinceSave bool
}

// SaveRecovery writes the recovery file if there are changes since the last
// time it was written.
func (m *Model) SaveRecovery() error {
	if !m.changedSinceRecovery {
		return nil
	}
	if m.recoveryFilePath == "" {
		return errors.New("no recovery file path")
	}
	out, err := yaml.Marshal(recoveryData{
		Drawing:          m.history.Drawing(),
		FilePath:         m.filePath,
		ChangedSinceSave: m.changedSinceSave,
	})
	if err != nil {
		return fmt.Errorf("could not marshal recovery data: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.recoveryFilePath), os.ModePerm); err != nil {
		return fmt.Errorf("could not create recovery directory: %w", err)
	}
	if err := os.WriteFile(m.recoveryFilePath, out, 0o644); err != nil {
		return fmt.Errorf("could not write recovery file: %w", err)
	}
	m.changedSinceRecovery = false
	return nil
}

// AutoSaveRecovery is SaveRecovery rate limited to the configured interval.
// It is meant to be called often, e.g. once per frame.
func (m *Model) AutoSaveRecovery() error {
	if !m.changedSinceRecovery || m.recoveryFilePath == "" {
		return nil
	}
	if !m.recoveryLimiter.Allow() {
		return nil
	}
	return m.SaveRecovery()
}

// LoadRecovery loads the recovery file, if there is one. ok tells if a
// drawing was recovered.
func (m *Model) LoadRecovery() (ok bool, err error) {
	if m.recoveryFilePath == "" {
		return false, nil
	}
	b, err := os.ReadFile(m.recoveryFilePath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not read recovery file: %w", err)
	}
	var data recoveryData
	if err := yaml.Unmarshal(b, &data); err != nil {
		return false, fmt.Errorf("could not unmarshal recovery file: %w", err)
	}
	m.History().Load(data.Drawing)
	m.filePath = data.FilePath
	m.changedSinceSave = data.ChangedSinceSave
	m.changedSinceRecovery = false
	return true, nil
}

// RemoveRecovery deletes the recovery file; used when quitting with all work
// saved.
func (m *Model) RemoveRecovery() error {
	if m.recoveryFilePath == "" {
		return nil
	}
	if err := os.Remove(m.recoveryFilePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not remove recovery file: %w", err)
	}
	return nil
}
