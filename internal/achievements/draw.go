package achievements

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	popupWidth  = 260
	popupHeight = 56
)

var (
	colPopupBg     = color.RGBA{0x28, 0x50, 0x28, 0xdc}
	colPopupBorder = color.RGBA{0x78, 0xc8, 0x78, 0xff}
)

// DrawPopup draws the current unlock notice centered near the top of screen.
func (t *Tracker) DrawPopup(screen *ebiten.Image) {
	p, ok := t.Popup()
	if !ok {
		return
	}
	alpha := p.Alpha()
	w := screen.Bounds().Dx()
	x := float32(w-popupWidth) / 2
	y := float32(40)

	vector.DrawFilledRect(screen, x, y, popupWidth, popupHeight, fade(colPopupBg, alpha), false)
	vector.StrokeRect(screen, x, y, popupWidth, popupHeight, 2, fade(colPopupBorder, alpha), false)
	ebitenutil.DebugPrintAt(screen, "ACHIEVEMENT UNLOCKED!\n"+p.Name+"\n"+p.Description, int(x)+10, int(y)+6)
}

// fade scales a premultiplied color by alpha.
func fade(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
