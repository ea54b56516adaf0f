// Package anim steps through the frames of a horizontal sprite strip.
//
// An Animator is driven once per rendered frame with the elapsed playback
// time. Whenever floor(elapsed * frames * speed) changes, the visible frame
// advances by one and wraps back to zero after the last frame.
package anim

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrInvalidConfiguration is returned when an animator cannot be built from
// the given geometry or speed.
var ErrInvalidConfiguration = errors.New("invalid animation configuration")

// MaxSpeed is the largest playback multiplier New and SetSpeed accept.
const MaxSpeed = 1e9

// tickWrap keeps ticks representable as int. Only tick changes matter, so
// wrapping does not alter playback.
const tickWrap = 1 << 53

// Config describes one sprite strip.
type Config struct {
	CellWidth  int     // width of one frame in pixels
	CellHeight int     // height of one frame in pixels
	FrameCount int     // frames in the strip
	Speed      float64 // playback multiplier
	Mirrored   bool    // sample the strip flipped horizontally
}

// Validate reports whether c can build an Animator.
func (c Config) Validate() error {
	if c.FrameCount <= 0 {
		return fmt.Errorf("%w: frame count %d", ErrInvalidConfiguration, c.FrameCount)
	}
	if c.CellWidth <= 0 {
		return fmt.Errorf("%w: cell width %d", ErrInvalidConfiguration, c.CellWidth)
	}
	if c.CellHeight <= 0 {
		return fmt.Errorf("%w: cell height %d", ErrInvalidConfiguration, c.CellHeight)
	}
	return validateSpeed(c.Speed)
}

func validateSpeed(speed float64) error {
	if !(speed > 0) || speed > MaxSpeed {
		return fmt.Errorf("%w: speed %v", ErrInvalidConfiguration, speed)
	}
	return nil
}

// Rect is the region of the atlas to sample for the current frame.
type Rect struct {
	X, Y          int
	Width, Height int
	Mirrored      bool // draw flipped horizontally
}

// Bounds returns r as an image.Rectangle suitable for SubImage.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Animator holds the playback state of one strip. The atlas is borrowed:
// the caller loads and disposes it.
type Animator struct {
	atlas *ebiten.Image

	cellWidth  int
	cellHeight int
	frameCount int
	speed      float64
	mirrored   bool

	index     int
	tick      int
	prevTick  int
	loopCount int
	stopped   bool
}

// New builds an Animator over atlas. atlas may be nil when nothing is drawn.
func New(atlas *ebiten.Image, cfg Config) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Animator{
		atlas:      atlas,
		cellWidth:  cfg.CellWidth,
		cellHeight: cfg.CellHeight,
		frameCount: cfg.FrameCount,
		speed:      cfg.Speed,
		mirrored:   cfg.Mirrored,
	}, nil
}

// Advance updates the frame index for the given elapsed playback time in
// seconds and reports whether the visible frame changed. Elapsed times must
// be non-decreasing across calls.
func (a *Animator) Advance(elapsed float64) bool {
	if a.stopped {
		return false
	}

	a.tick = int(math.Mod(math.Floor(elapsed*float64(a.frameCount)*a.speed), tickWrap))
	changed := a.tick != a.prevTick
	if changed {
		a.index++
		a.prevTick = a.tick
	}

	if a.index == a.frameCount {
		a.index -= a.frameCount
		a.loopCount++
	}
	return changed
}

// SourceRect returns the atlas region of the current frame.
func (a *Animator) SourceRect() Rect {
	return Rect{
		X:        a.index * a.cellWidth,
		Y:        0,
		Width:    a.cellWidth,
		Height:   a.cellHeight,
		Mirrored: a.mirrored,
	}
}

// Frame returns the atlas sub-image of the current frame, or nil without an atlas.
func (a *Animator) Frame() *ebiten.Image {
	if a.atlas == nil {
		return nil
	}
	return a.atlas.SubImage(a.SourceRect().Bounds()).(*ebiten.Image)
}

func (a *Animator) Index() int      { return a.index }
func (a *Animator) LoopCount() int  { return a.loopCount }
func (a *Animator) FrameCount() int { return a.frameCount }
func (a *Animator) Tick() int       { return a.tick }
func (a *Animator) Speed() float64  { return a.speed }

// CellSize returns the pixel size of one frame.
func (a *Animator) CellSize() (int, int) { return a.cellWidth, a.cellHeight }

// SetSpeed changes the playback multiplier. The same rules as New apply.
func (a *Animator) SetSpeed(speed float64) error {
	if err := validateSpeed(speed); err != nil {
		return err
	}
	a.speed = speed
	return nil
}

// SetMirrored flips the sampled frame horizontally.
func (a *Animator) SetMirrored(mirrored bool) { a.mirrored = mirrored }

// Stop freezes the animator on its current frame; Advance becomes a no-op.
func (a *Animator) Stop()         { a.stopped = true }
func (a *Animator) Resume()       { a.stopped = false }
func (a *Animator) Stopped() bool { return a.stopped }

// Reset returns to frame zero with no loops played. The next Advance
// measures ticks from zero again.
func (a *Animator) Reset() {
	a.index = 0
	a.tick = 0
	a.prevTick = 0
	a.loopCount = 0
	a.stopped = false
}
