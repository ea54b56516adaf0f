package anim

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// DrawOptions places the current frame on screen.
type DrawOptions struct {
	X, Y  float64 // center of the frame on the destination
	Scale float64 // 0 means 1
	Tint  color.Color
}

// Draw renders the current frame centered at (opts.X, opts.Y). Mirrored
// frames are flipped around their vertical center line.
func (a *Animator) Draw(dst *ebiten.Image, opts DrawOptions) {
	frame := a.Frame()
	if frame == nil {
		return
	}

	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	w, h := float64(a.cellWidth), float64(a.cellHeight)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	if a.mirrored {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(opts.X, opts.Y)
	if opts.Tint != nil {
		op.ColorScale.ScaleWithColor(opts.Tint)
	}
	op.Filter = ebiten.FilterNearest

	dst.DrawImage(frame, op)
}
