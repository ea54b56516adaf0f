package entity

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"odootoor/internal/anim"
	"odootoor/internal/config"
)

var defaultFace = text.NewGoXFace(basicfont.Face7x13)

// Hand offset of the punch sprite relative to the character, in pixels.
const (
	handOffsetX = -16
	handOffsetY = 3
)

var (
	colCurrentChar = color.RGBA{0xe6, 0x29, 0x37, 0xff}
	colDoneChar    = color.RGBA{0x70, 0x70, 0x70, 0xff}
	colPunch       = color.RGBA{0x00, 0xe4, 0x30, 0xff}
	colDebugHand   = color.RGBA{0x00, 0xff, 0x00, 0xff}
	colDebugChar   = color.RGBA{0xff, 0x6d, 0xc2, 0xff}
)

// PunchEvent describes what one Update did.
type PunchEvent struct {
	Changed  bool // the visible frame changed
	Punched  bool // the strip wrapped back to its first frame
	Advanced bool // the punched character moved on
	Finished bool // the whole message was punched
}

// Puncher punches its way through a message one character per loop of the
// punch strip.
type Puncher struct {
	// Hold keeps punching the same character.
	Hold bool

	anim      *anim.Animator
	message   []rune
	charIndex int
	loop      bool
}

func NewPuncher(atlas *ebiten.Image, sheet config.Sheet, message string, loop bool) (*Puncher, error) {
	a, err := anim.New(atlas, sheet.AnimConfig())
	if err != nil {
		return nil, err
	}
	return &Puncher{
		anim:    a,
		message: []rune(message),
		loop:    loop,
	}, nil
}

// Update advances the punch strip to elapsed seconds of playback.
func (p *Puncher) Update(elapsed float64) PunchEvent {
	var ev PunchEvent
	if len(p.message) == 0 {
		return ev
	}

	ev.Changed = p.anim.Advance(elapsed)
	if !ev.Changed || p.anim.Index() != 0 {
		return ev
	}

	ev.Punched = true
	if p.Hold {
		return ev
	}

	p.charIndex++
	ev.Advanced = true
	if p.charIndex >= len(p.message) {
		ev.Finished = true
		if p.loop {
			p.charIndex -= len(p.message)
		} else {
			p.charIndex = len(p.message) - 1
			p.anim.Stop()
		}
	}
	return ev
}

// SetMessage replaces the message and starts again from its first character.
func (p *Puncher) SetMessage(message string) {
	p.message = []rune(message)
	p.charIndex = 0
	p.anim.Resume()
}

// SetLoop chooses between wrapping to the first character and stopping on
// the last one when the message ends.
func (p *Puncher) SetLoop(loop bool) { p.loop = loop }

// Restart replays a finished message from its first character.
func (p *Puncher) Restart() {
	p.charIndex = 0
	p.anim.Resume()
}

func (p *Puncher) Animator() *anim.Animator { return p.anim }
func (p *Puncher) CharIndex() int           { return p.charIndex }
func (p *Puncher) Done() bool               { return p.anim.Stopped() }

// Char returns the character being punched.
func (p *Puncher) Char() string {
	if len(p.message) == 0 {
		return ""
	}
	return string(p.message[p.charIndex])
}

// Draw renders the message starting at (x, y) with the punch sprite next to
// the current character. fontSize is in pixels.
func (p *Puncher) Draw(screen *ebiten.Image, x, y float64, fontSize int, debug bool) {
	if len(p.message) == 0 {
		return
	}
	scale := float64(fontSize) / float64(basicfont.Face7x13.Height)

	for i, r := range p.message {
		clr := colDoneChar
		if i == p.charIndex {
			clr = colCurrentChar
		}
		op := &text.DrawOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x+float64(fontSize*i), y)
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, string(r), defaultFace, op)
	}

	if p.anim.Stopped() {
		return
	}

	charX := x + float64(fontSize*p.charIndex)
	w, h := text.Measure(p.Char(), defaultFace, 0)
	w, h = w*scale, h*scale
	cw, ch := p.anim.CellSize()
	handX := charX + w + float64(cw)/2 + handOffsetX
	handY := y + h/2 + handOffsetY

	if debug {
		vector.StrokeRect(screen, float32(charX), float32(y), float32(w), float32(h), 1, colDebugChar, false)
		vector.StrokeRect(screen, float32(handX)-float32(cw)/2, float32(handY)-float32(ch)/2, float32(cw), float32(ch), 1, colDebugHand, false)
	}

	p.anim.Draw(screen, anim.DrawOptions{X: handX, Y: handY, Tint: colPunch})
}
