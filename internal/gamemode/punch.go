package gamemode

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"odootoor/internal/config"
	"odootoor/internal/entity"
)

// Where the message starts on screen.
const (
	messageX = 80
	messageY = 200
)

// PunchMode punches through the configured message.
type PunchMode struct {
	puncher  *entity.Puncher
	atlas    *ebiten.Image
	sheet    config.Sheet
	text     config.Text
	fontSize int
	debug    bool
	rec      Recorder
	logger   *zap.Logger
}

func NewPunchMode(atlas *ebiten.Image, cfg config.Config, rec Recorder, logger *zap.Logger) (*PunchMode, error) {
	sheet := cfg.Sheets[config.SheetPunch]
	p, err := entity.NewPuncher(atlas, sheet, cfg.Text.Message, cfg.Text.Loop)
	if err != nil {
		return nil, fmt.Errorf("punch mode: %w", err)
	}
	return &PunchMode{
		puncher:  p,
		atlas:    atlas,
		sheet:    sheet,
		text:     cfg.Text,
		fontSize: cfg.Text.FontSize,
		debug:    cfg.DebugBoxes,
		rec:      rec,
		logger:   logger.Named("punch"),
	}, nil
}

func (m *PunchMode) Name() string { return "PUNCH" }

func (m *PunchMode) Update(in Input, clock Clock) error {
	if in.FontDown {
		m.fontSize = max(m.fontSize-m.text.FontStep, m.text.MinFontSize)
	}
	if in.FontUp {
		m.fontSize = min(m.fontSize+m.text.FontStep, m.text.MaxFontSize)
	}
	if in.ToggleHold {
		m.puncher.Hold = !m.puncher.Hold
		m.logger.Debug("hold toggled", zap.Bool("hold", m.puncher.Hold))
	}
	if in.Restart && m.puncher.Done() {
		m.puncher.Restart()
	}

	ev := m.puncher.Update(clock.Elapsed)
	if ev.Punched {
		m.rec.RecordPunchLoop()
	}
	if ev.Advanced {
		m.rec.RecordCharPunched()
	}
	if ev.Finished {
		m.rec.RecordMessageDone()
		m.logger.Debug("message finished", zap.Bool("looping", m.text.Loop))
	}
	return nil
}

func (m *PunchMode) Draw(screen *ebiten.Image) {
	m.puncher.Draw(screen, messageX, messageY, m.fontSize, m.debug)

	hold := ""
	if m.puncher.Hold {
		hold = " (HOLD)"
	}
	msg := fmt.Sprintf("MODE: PUNCH%s\nfont: %d  [D/I]\nENTER hold  R restart", hold, m.fontSize)
	if m.puncher.Done() {
		msg += "\nDONE!"
	}
	ebitenutil.DebugPrint(screen, msg)
}

// Reconfigure applies a reloaded config. The puncher is kept unless its sheet
// or atlas changed, so a new message restarts from its first character but
// font size and hold survive.
func (m *PunchMode) Reconfigure(atlas *ebiten.Image, cfg config.Config) error {
	sheet := cfg.Sheets[config.SheetPunch]
	if sheet != m.sheet || atlas != m.atlas {
		p, err := entity.NewPuncher(atlas, sheet, cfg.Text.Message, cfg.Text.Loop)
		if err != nil {
			return fmt.Errorf("punch mode: %w", err)
		}
		p.Hold = m.puncher.Hold
		m.puncher, m.atlas, m.sheet = p, atlas, sheet
		m.logger.Debug("punch sheet replaced", zap.String("image", sheet.Image))
	} else {
		if cfg.Text.Message != m.text.Message {
			m.puncher.SetMessage(cfg.Text.Message)
		}
		m.puncher.SetLoop(cfg.Text.Loop)
	}
	m.text = cfg.Text
	m.fontSize = min(max(m.fontSize, cfg.Text.MinFontSize), cfg.Text.MaxFontSize)
	return nil
}

func (m *PunchMode) SetDebug(on bool) { m.debug = on }
