package oto

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/notepainter/notepainter"
)

type (
	OtoContext struct {
		context *oto.Context
	}

	// OtoOutput plays one source at a time. Stopping pauses the player and
	// drops it together with its source.
	OtoOutput struct {
		context *oto.Context
		player  *oto.Player
	}
)

const otoBufferSize = 50 * time.Millisecond

var (
	_ notepainter.AudioContext = (*OtoContext)(nil)
	_ notepainter.AudioSink    = (*OtoOutput)(nil)
)

// NewContext creates the oto context, waiting until the audio device is
// ready. oto allows only one context per process.
func NewContext() (*OtoContext, error) {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   notepainter.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   otoBufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context}, nil
}

func (c *OtoContext) Output() notepainter.AudioSink {
	return &OtoOutput{context: c.context}
}

// Close suspends the audio device; oto contexts cannot be destroyed.
func (c *OtoContext) Close() error {
	if err := c.context.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

// Play implements notepainter.AudioSink.
func (o *OtoOutput) Play(source notepainter.AudioSource) error {
	o.Stop()
	o.player = o.context.NewPlayer(NewReader(source))
	o.player.Play()
	if err := o.player.Err(); err != nil {
		o.player = nil
		return fmt.Errorf("cannot start oto player: %w", err)
	}
	return nil
}

// Stop implements notepainter.AudioSink.
func (o *OtoOutput) Stop() {
	if o.player == nil {
		return
	}
	o.player.Pause()
	o.player = nil
}

// IsPlaying reports if the player still has samples to play.
func (o *OtoOutput) IsPlaying() bool {
	return o.player != nil && o.player.IsPlaying()
}
