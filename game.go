package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"odootoor/internal/achievements"
	"odootoor/internal/assets"
	"odootoor/internal/chiptune"
	"odootoor/internal/config"
	"odootoor/internal/gamemode"
	"odootoor/internal/stats"
)

// Define Modes
type GameMode int

const (
	ModePunch GameMode = iota
	ModeRun
	ModeStats
	modeCount

	modeNone GameMode = -1
)

const (
	autosaveEvery = 10.0 // seconds
	musicSeed     = 0x0d007002
)

var colBg = color.RGBA{0x20, 0x3a, 0x8c, 0xff}

// modeKeys maps the number row to modes.
var modeKeys = map[ebiten.Key]GameMode{
	ebiten.Key1: ModePunch,
	ebiten.Key2: ModeRun,
	ebiten.Key3: ModeStats,
}

// modeSheets names the sprite sheet each animated mode draws from.
var modeSheets = map[GameMode]string{
	ModePunch: config.SheetPunch,
	ModeRun:   config.SheetRun,
}

// debugDrawer is implemented by modes that can outline their sprites.
type debugDrawer interface {
	SetDebug(bool)
}

// reconfigurer is implemented by modes that take a reloaded config in place.
type reconfigurer interface {
	Reconfigure(atlas *ebiten.Image, cfg config.Config) error
}

// statsStore is the part of stats.Store the loop drives.
type statsStore interface {
	gamemode.Recorder
	gamemode.StatsSource
	AddPlayTime(seconds float64)
	Save() error
}

// atlasSource hands out sprite atlases by file name.
type atlasSource interface {
	Get(name string) (*ebiten.Image, error)
	Retain(keep ...string)
	Release()
}

// windowSystem receives window settings from reloaded configs.
type windowSystem interface {
	SetSize(width, height int)
	SetTitle(title string)
	SetTPS(tps int)
}

type ebitenWindow struct{}

func (ebitenWindow) SetSize(width, height int) { ebiten.SetWindowSize(width, height) }
func (ebitenWindow) SetTitle(title string)     { ebiten.SetWindowTitle(title) }
func (ebitenWindow) SetTPS(tps int)            { ebiten.SetTPS(tps) }

// frameInput is the host-level keyboard state for one tick.
type frameInput struct {
	Select      GameMode // modeNone when no mode key was pressed
	ToggleDebug bool
	ToggleMusic bool
	Mode        gamemode.Input
}

func readFrameInput() frameInput {
	in := frameInput{
		Select:      modeNone,
		ToggleDebug: inpututil.IsKeyJustPressed(ebiten.KeyF1),
		ToggleMusic: inpututil.IsKeyJustPressed(ebiten.KeyM),
		Mode:        gamemode.ReadInput(),
	}
	for key, mode := range modeKeys {
		if inpututil.IsKeyJustPressed(key) {
			in.Select = mode
		}
	}
	return in
}

// Game holds global state
type Game struct {
	cfg          config.Config
	logger       *zap.Logger
	atlases      atlasSource
	window       windowSystem
	store        statsStore
	achievements *achievements.Tracker
	reloads      <-chan config.Config
	done         <-chan struct{}

	audioCtx *audio.Context
	music    *chiptune.Player

	modes       [modeCount]gamemode.Mode
	currentMode GameMode
	elapsed     float64
	lastSave    float64
	debug       bool
}

// NewGame builds every mode from cfg. reloads may be nil.
func NewGame(cfg config.Config, store *stats.Store, tracker *achievements.Tracker, reloads <-chan config.Config, logger *zap.Logger) (*Game, error) {
	return newGame(cfg, store, tracker, reloads, assets.NewLibrary(logger), ebitenWindow{}, logger)
}

func newGame(cfg config.Config, store statsStore, tracker *achievements.Tracker, reloads <-chan config.Config,
	atlases atlasSource, window windowSystem, logger *zap.Logger) (*Game, error) {
	g := &Game{
		cfg:          cfg.Clone(),
		logger:       logger.Named("game"),
		atlases:      atlases,
		window:       window,
		store:        store,
		achievements: tracker,
		reloads:      reloads,
		debug:        cfg.DebugBoxes,
	}
	if err := g.buildModes(g.cfg); err != nil {
		return nil, err
	}
	if cfg.Music.Enabled {
		if err := g.toggleMusic(); err != nil {
			g.logger.Warn("music unavailable", zap.Error(err))
		}
	}
	return g, nil
}

func (g *Game) buildModes(cfg config.Config) error {
	punchAtlas, err := g.atlases.Get(cfg.Sheets[config.SheetPunch].Image)
	if err != nil {
		return err
	}
	runAtlas, err := g.atlases.Get(cfg.Sheets[config.SheetRun].Image)
	if err != nil {
		return err
	}

	punch, err := gamemode.NewPunchMode(punchAtlas, cfg, g.store, g.logger)
	if err != nil {
		return err
	}
	run, err := gamemode.NewRunMode(runAtlas, cfg, g.store, g.logger)
	if err != nil {
		return err
	}

	g.modes[ModePunch] = punch
	g.modes[ModeRun] = run
	g.modes[ModeStats] = gamemode.NewStatsMode(g.store, g.achievements)
	g.setDebug(g.debug)
	return nil
}

func (g *Game) setDebug(on bool) {
	g.debug = on
	for _, m := range g.modes {
		if d, ok := m.(debugDrawer); ok {
			d.SetDebug(on)
		}
	}
}

// sheetImages lists the atlas files cfg draws from.
func sheetImages(cfg config.Config) []string {
	names := make([]string, 0, len(modeSheets))
	for _, sheet := range modeSheets {
		names = append(names, cfg.Sheets[sheet].Image)
	}
	return names
}

// applyConfig swaps in a reloaded config. Modes keep their play state; on
// failure nothing changes.
func (g *Game) applyConfig(cfg config.Config) {
	if err := g.reconfigure(cfg); err != nil {
		g.atlases.Retain(sheetImages(g.cfg)...)
		g.logger.Warn("reloaded config rejected", zap.Error(err))
		return
	}

	old := g.cfg
	g.cfg = cfg.Clone()
	if cfg.Window.Width != old.Window.Width || cfg.Window.Height != old.Window.Height || cfg.Window.Scale != old.Window.Scale {
		g.window.SetSize(cfg.Window.Width*cfg.Window.Scale, cfg.Window.Height*cfg.Window.Scale)
	}
	g.window.SetTitle(cfg.Window.Title)
	g.window.SetTPS(cfg.TPS)
	if cfg.DebugBoxes != old.DebugBoxes {
		g.setDebug(cfg.DebugBoxes)
	}
	if g.music != nil {
		g.music.SetVolume(cfg.Music.Volume)
	}
	g.atlases.Retain(sheetImages(cfg)...)
	g.logger.Info("config applied", zap.String("title", cfg.Window.Title))
}

// reconfigure validates cfg and loads its atlases before touching any mode.
func (g *Game) reconfigure(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	atlases := make(map[GameMode]*ebiten.Image, len(modeSheets))
	for mode, sheet := range modeSheets {
		img, err := g.atlases.Get(cfg.Sheets[sheet].Image)
		if err != nil {
			return err
		}
		atlases[mode] = img
	}
	for mode, atlas := range atlases {
		if r, ok := g.modes[mode].(reconfigurer); ok {
			if err := r.Reconfigure(atlas, cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Game) toggleMusic() error {
	if g.music == nil {
		if g.audioCtx == nil {
			g.audioCtx = audio.NewContext(chiptune.SampleRate)
		}
		p, err := chiptune.NewPlayer(g.audioCtx, musicSeed, g.cfg.Music.Volume)
		if err != nil {
			return err
		}
		g.music = p
	}
	g.logger.Debug("music toggled", zap.Bool("playing", g.music.Toggle()))
	return nil
}

func (g *Game) save() error {
	return errors.Join(g.store.Save(), g.achievements.Save())
}

// Update: Logic (TPS from config)
func (g *Game) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}
	return g.step(readFrameInput(), 1/float64(ebiten.TPS()))
}

// step runs one tick of dt seconds.
func (g *Game) step(in frameInput, dt float64) error {
	g.elapsed += dt
	g.store.AddPlayTime(dt)
	g.achievements.Update(dt)

	if g.elapsed-g.lastSave >= autosaveEvery {
		g.lastSave = g.elapsed
		if err := g.save(); err != nil {
			g.logger.Warn("autosave failed", zap.Error(err))
		}
	}

	select {
	case cfg := <-g.reloads:
		g.applyConfig(cfg)
	default:
	}

	if in.Select != modeNone && in.Select != g.currentMode {
		g.currentMode = in.Select
		g.logger.Debug("mode switched", zap.String("mode", g.modes[in.Select].Name()))
	}
	if in.ToggleDebug {
		g.setDebug(!g.debug)
	}
	if in.ToggleMusic {
		if err := g.toggleMusic(); err != nil {
			g.logger.Warn("music unavailable", zap.Error(err))
		}
	}

	clock := gamemode.Clock{Elapsed: g.elapsed, DT: dt}
	if err := g.modes[g.currentMode].Update(in.Mode, clock); err != nil {
		return fmt.Errorf("update %s: %w", g.modes[g.currentMode].Name(), err)
	}
	g.achievements.Check(g.store.Stats())
	return nil
}

// Draw: Rendering (VSync)
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBg)
	g.modes[g.currentMode].Draw(screen)
	if g.music != nil {
		g.music.DrawMeter(screen, float32(g.cfg.Window.Width-40), float32(g.cfg.Window.Height-10))
	}
	g.achievements.DrawPopup(screen)
}

// Layout: render at the configured size and let Ebiten scale it
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Close saves stats and frees the atlases and audio.
func (g *Game) Close() error {
	var errs []error
	if g.music != nil {
		errs = append(errs, g.music.Close())
	}
	g.atlases.Release()
	errs = append(errs, g.save())
	return errors.Join(errs...)
}
