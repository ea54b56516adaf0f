package gamemode

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"odootoor/internal/config"
	"odootoor/internal/entity"
)

// RunMode lets the player steer a running figure around the screen.
type RunMode struct {
	runner *entity.Runner
	atlas  *ebiten.Image
	sheet  config.Sheet
	debug  bool
	rec    Recorder
	logger *zap.Logger
}

func NewRunMode(atlas *ebiten.Image, cfg config.Config, rec Recorder, logger *zap.Logger) (*RunMode, error) {
	sheet := cfg.Sheets[config.SheetRun]
	r, err := entity.NewRunner(atlas, sheet, cfg.Run, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return nil, fmt.Errorf("run mode: %w", err)
	}
	return &RunMode{
		runner: r,
		atlas:  atlas,
		sheet:  sheet,
		debug:  cfg.DebugBoxes,
		rec:    rec,
		logger: logger.Named("run"),
	}, nil
}

func (m *RunMode) Name() string { return "RUN" }

func (m *RunMode) Update(in Input, clock Clock) error {
	looped, err := m.runner.Update(in.Move, clock.Elapsed, clock.DT)
	if err != nil {
		return fmt.Errorf("run mode: %w", err)
	}
	if looped {
		m.rec.RecordRunLoop()
	}
	return nil
}

func (m *RunMode) Draw(screen *ebiten.Image) {
	m.runner.Draw(screen, m.debug)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("MODE: RUN\nrs: %.2f  [,/.]\narrows to move", m.runner.RunSpeed))
}

// Reconfigure applies a reloaded config. The runner keeps its position and
// run speed; a new sheet or atlas rebuilds its strip.
func (m *RunMode) Reconfigure(atlas *ebiten.Image, cfg config.Config) error {
	sheet := cfg.Sheets[config.SheetRun]
	if sheet != m.sheet || atlas != m.atlas {
		r, err := entity.NewRunner(atlas, sheet, cfg.Run, cfg.Window.Width, cfg.Window.Height)
		if err != nil {
			return fmt.Errorf("run mode: %w", err)
		}
		r.X, r.Y, r.RunSpeed = m.runner.X, m.runner.Y, m.runner.RunSpeed
		m.runner, m.atlas, m.sheet = r, atlas, sheet
		m.logger.Debug("run sheet replaced", zap.String("image", sheet.Image))
	}
	if err := m.runner.SetRun(cfg.Run); err != nil {
		return fmt.Errorf("run mode: %w", err)
	}
	m.runner.Resize(cfg.Window.Width, cfg.Window.Height)
	return nil
}

func (m *RunMode) SetDebug(on bool) { m.debug = on }
