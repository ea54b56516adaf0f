// Package gamemode holds the scenes the game switches between.
package gamemode

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"odootoor/internal/entity"
)

// Clock is the playback time handed to a mode each tick.
type Clock struct {
	Elapsed float64 // seconds since playback started
	DT      float64 // length of this tick in seconds
}

// Input is the keyboard state a mode reacts to.
type Input struct {
	Move       entity.Movement
	ToggleHold bool
	FontDown   bool
	FontUp     bool
	Restart    bool
}

// ReadInput polls the keyboard.
func ReadInput() Input {
	return Input{
		Move: entity.Movement{
			Up:     ebiten.IsKeyPressed(ebiten.KeyArrowUp),
			Down:   ebiten.IsKeyPressed(ebiten.KeyArrowDown),
			Left:   ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
			Right:  ebiten.IsKeyPressed(ebiten.KeyArrowRight),
			Faster: ebiten.IsKeyPressed(ebiten.KeyComma),
			Slower: ebiten.IsKeyPressed(ebiten.KeyPeriod),
		},
		ToggleHold: inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		FontDown:   inpututil.IsKeyJustPressed(ebiten.KeyD),
		FontUp:     inpututil.IsKeyJustPressed(ebiten.KeyI),
		Restart:    inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
}

// Mode is one scene of the game.
type Mode interface {
	Name() string
	Update(in Input, clock Clock) error
	Draw(screen *ebiten.Image)
}

// Recorder receives gameplay events worth counting.
type Recorder interface {
	RecordPunchLoop()
	RecordCharPunched()
	RecordRunLoop()
	RecordMessageDone()
}
