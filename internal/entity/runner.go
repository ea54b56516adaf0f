package entity

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"odootoor/internal/anim"
	"odootoor/internal/config"
)

// Movement is the directional input for one tick.
type Movement struct {
	Up, Down, Left, Right bool
	Faster, Slower        bool
}

func (m Movement) moving() bool { return m.Up || m.Down || m.Left || m.Right }

// Runner is a figure steered with the arrow keys. Its run strip only plays
// while it moves.
type Runner struct {
	X, Y     float64
	RunSpeed float64

	anim          *anim.Animator
	run           config.Run
	mirrored      bool
	facingLeft    bool
	width, height float64
}

// NewRunner places a runner in the middle of a width x height screen.
func NewRunner(atlas *ebiten.Image, sheet config.Sheet, run config.Run, width, height int) (*Runner, error) {
	a, err := anim.New(atlas, sheet.AnimConfig())
	if err != nil {
		return nil, err
	}
	r := &Runner{
		X:        float64(width) / 2,
		Y:        float64(height) / 2,
		RunSpeed: run.MinSpeed,
		anim:     a,
		run:      run,
		mirrored: sheet.Mirrored,
		width:    float64(width),
		height:   float64(height),
	}
	if err := r.anim.SetSpeed(run.BaseSpeed * r.RunSpeed); err != nil {
		return nil, err
	}
	return r, nil
}

// Update applies one tick of input. dt is the tick length in seconds and
// elapsed the playback time fed to the run strip. It reports whether the
// strip completed a loop.
func (r *Runner) Update(m Movement, elapsed, dt float64) (bool, error) {
	step := r.run.Step * dt
	if m.Faster {
		r.RunSpeed = math.Min(r.RunSpeed+step, r.run.MaxSpeed)
	}
	if m.Slower {
		r.RunSpeed = math.Max(r.RunSpeed-step, r.run.MinSpeed)
	}
	if err := r.anim.SetSpeed(r.run.BaseSpeed * r.RunSpeed); err != nil {
		return false, err
	}

	if !m.moving() {
		return false, nil
	}

	norm := 1.0
	if (m.Up || m.Down) && (m.Left || m.Right) {
		norm = math.Sqrt2 / 2
	}
	d := r.run.Move * norm * r.RunSpeed

	if m.Up {
		r.Y -= d
	}
	if m.Down {
		r.Y += d
	}
	if m.Left {
		r.X -= d
		r.facingLeft = true
	}
	if m.Right {
		r.X += d
		r.facingLeft = false
	}
	r.X = wrap(r.X, r.width)
	r.Y = wrap(r.Y, r.height)
	r.anim.SetMirrored(r.mirrored != r.facingLeft)

	loops := r.anim.LoopCount()
	r.anim.Advance(elapsed)
	return r.anim.LoopCount() > loops, nil
}

// wrap keeps v inside [0, size] by stepping one screen length.
func wrap(v, size float64) float64 {
	if v < 0 {
		v += size
	}
	if v > size {
		v -= size
	}
	return v
}

// SetRun swaps the movement settings, clamping RunSpeed into the new range.
func (r *Runner) SetRun(run config.Run) error {
	r.run = run
	r.RunSpeed = math.Min(math.Max(r.RunSpeed, run.MinSpeed), run.MaxSpeed)
	return r.anim.SetSpeed(run.BaseSpeed * r.RunSpeed)
}

// Resize updates the area the runner wraps around in.
func (r *Runner) Resize(width, height int) {
	r.width, r.height = float64(width), float64(height)
	r.X = math.Min(r.X, r.width)
	r.Y = math.Min(r.Y, r.height)
}

func (r *Runner) Animator() *anim.Animator { return r.anim }
func (r *Runner) FacingLeft() bool         { return r.facingLeft }

var runnerTint = color.RGBA{0x40, 0x80, 0xff, 0xff}

func (r *Runner) Draw(screen *ebiten.Image, debug bool) {
	r.anim.Draw(screen, anim.DrawOptions{X: r.X, Y: r.Y, Tint: runnerTint})

	if debug {
		w, h := r.anim.CellSize()
		vector.StrokeRect(screen, float32(r.X)-float32(w)/2, float32(r.Y)-float32(h)/2, float32(w), float32(h), 1, color.RGBA{0x00, 0xff, 0x00, 0xff}, false)
	}
}
