package timeline

import (
	"fmt"
	"time"

	"github.com/notepainter/notepainter/synth"
)

type (
	// Play is the view of the model controlling playback.
	Play Model

	PlayState int

	playback struct {
		state    PlayState
		elapsed  time.Duration
		duration time.Duration
	}
)

const (
	Idle PlayState = iota
	Playing
)

func (m *Model) Play() *Play { return (*Play)(m) }

func (m *Play) State() PlayState        { return m.playback.state }
func (m *Play) IsPlaying() bool         { return m.playback.state == Playing }
func (m *Play) Position() time.Duration { return m.playback.elapsed }
func (m *Play) Duration() time.Duration { return m.playback.duration }

// X returns the play position in canvas coordinates.
func (m *Play) X() float32 {
	spu := m.params.SecondsPerUnit()
	if spu <= 0 {
		return 0
	}
	return float32(m.playback.elapsed.Seconds() / spu)
}

// Start returns an Action rendering the current history and playing it from
// the beginning, stopping whatever was playing before.
func (m *Play) Start() Action { return MakeAction((*playStart)(m)) }

type playStart Play

func (m *playStart) Do() {
	mixer := synth.Render(m.history.Strokes(), m.params)
	m.sink.Stop()
	m.playback = playback{}
	if mixer.Len() == 0 {
		return
	}
	if err := m.sink.Play(mixer); err != nil {
		(*Model)(m).Alerts().AddNamed("Playback", fmt.Sprintf("Could not start playback: %v", err), Error)
		return
	}
	m.playback = playback{state: Playing, duration: mixer.Duration()}
}

// Stop returns an Action to stop playback. Stopping when idle does nothing.
func (m *Play) Stop() Action { return MakeAction((*playStop)(m)) }

type playStop Play

func (m *playStop) Do() {
	if m.playback.state == Idle {
		return
	}
	m.sink.Stop()
	m.playback = playback{}
}

// Toggle returns an Action starting playback when idle and stopping it when
// playing.
func (m *Play) Toggle() Action { return MakeAction((*playToggle)(m)) }

type playToggle Play

func (m *playToggle) Do() {
	if m.playback.state == Playing {
		(*Play)(m).Stop().Do()
		return
	}
	(*Play)(m).Start().Do()
}

// Playing returns a Bool that is true while playing; setting it starts or
// stops playback.
func (m *Play) Playing() Bool { return MakeBool((*playPlaying)(m)) }

type playPlaying Play

func (m *playPlaying) Value() bool { return m.playback.state == Playing }
func (m *playPlaying) SetValue(val bool) {
	if val {
		(*Play)(m).Start().Do()
	} else {
		(*Play)(m).Stop().Do()
	}
}

func (m *Play) update(d time.Duration) bool {
	if m.playback.state != Playing {
		return false
	}
	m.playback.elapsed += d
	if m.playback.elapsed >= m.playback.duration {
		m.playback = playback{}
	}
	return true
}
