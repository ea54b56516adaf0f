package chiptune

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colMeter = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	colBeat  = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// Meter sizes, in pixels.
const (
	meterWidth  = 12
	meterGap    = 4
	meterHzUnit = 10 // Hz per pixel of bar height
)

// MeterHeight is the bar height drawn for freq.
func MeterHeight(freq float64) float32 { return float32(freq) / meterHzUnit }

// DrawMeter draws two note bars standing on (x, y) and a dot that lights on
// each new note. Nothing is drawn while paused.
func (p *Player) DrawMeter(screen *ebiten.Image, x, y float32) {
	if !p.Playing() {
		return
	}
	h := MeterHeight(p.stream.Freq())
	vector.DrawFilledRect(screen, x, y-h, meterWidth, h, colMeter, false)
	vector.DrawFilledRect(screen, x+meterWidth+meterGap, y-h, meterWidth, h, colMeter, false)

	if p.stream.OnBeat() {
		vector.DrawFilledCircle(screen, x+meterWidth+meterGap/2, y-h-8, 3, colBeat, false)
	}
}
