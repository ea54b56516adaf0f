package chiptune

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Player plays a Stream through the ebiten audio context.
type Player struct {
	stream *Stream
	player *audio.Player
}

// NewPlayer creates a paused player. Only one audio.Context may exist per
// process, so the caller owns ctx.
func NewPlayer(ctx *audio.Context, seed uint64, volume float64) (*Player, error) {
	stream := NewStream(seed)
	p, err := ctx.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("create music player: %w", err)
	}
	p.SetVolume(volume)
	return &Player{stream: stream, player: p}, nil
}

// Toggle starts or pauses playback and reports whether music is now playing.
func (p *Player) Toggle() bool {
	if p.player.IsPlaying() {
		p.player.Pause()
		return false
	}
	p.player.Play()
	return true
}

func (p *Player) Playing() bool       { return p.player.IsPlaying() }
func (p *Player) SetVolume(v float64) { p.player.SetVolume(v) }

func (p *Player) Close() error { return p.player.Close() }
