package main

import (
	"fmt"
	"sort"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"odootoor/internal/achievements"
	"odootoor/internal/config"
	"odootoor/internal/gamemode"
	"odootoor/internal/stats"
)

type fakeStore struct {
	stats stats.Stats
	saves int
}

func (s *fakeStore) Stats() stats.Stats          { return s.stats }
func (s *fakeStore) AddPlayTime(seconds float64) { s.stats.PlaySeconds += seconds }
func (s *fakeStore) RecordPunchLoop()            { s.stats.PunchLoops++ }
func (s *fakeStore) RecordCharPunched()          { s.stats.CharsPunched++ }
func (s *fakeStore) RecordRunLoop()              { s.stats.RunLoops++ }
func (s *fakeStore) RecordMessageDone()          { s.stats.MessagesDone++ }

func (s *fakeStore) Save() error {
	s.saves++
	return nil
}

// fakeAtlases serves nil atlases for known names.
type fakeAtlases struct {
	known    map[string]bool
	retained []string
	released bool
}

func newFakeAtlases(names ...string) *fakeAtlases {
	a := &fakeAtlases{known: map[string]bool{}}
	for _, n := range names {
		a.known[n] = true
	}
	return a
}

func (a *fakeAtlases) Get(name string) (*ebiten.Image, error) {
	if !a.known[name] {
		return nil, fmt.Errorf("image %q not embedded", name)
	}
	return nil, nil
}

func (a *fakeAtlases) Retain(keep ...string) {
	a.retained = append([]string(nil), keep...)
	sort.Strings(a.retained)
}

func (a *fakeAtlases) Release() { a.released = true }

type fakeWindow struct {
	width, height int
	title         string
	tps           int
}

func (w *fakeWindow) SetSize(width, height int) { w.width, w.height = width, height }
func (w *fakeWindow) SetTitle(title string)     { w.title = title }
func (w *fakeWindow) SetTPS(tps int)            { w.tps = tps }

type fakeMode struct {
	name         string
	updates      int
	debug        bool
	reconfigured []config.Config
}

func (m *fakeMode) Name() string       { return m.name }
func (m *fakeMode) Draw(*ebiten.Image) {}
func (m *fakeMode) SetDebug(on bool)   { m.debug = on }

func (m *fakeMode) Update(gamemode.Input, gamemode.Clock) error {
	m.updates++
	return nil
}

func (m *fakeMode) Reconfigure(_ *ebiten.Image, cfg config.Config) error {
	m.reconfigured = append(m.reconfigured, cfg)
	return nil
}

type testGame struct {
	*Game
	store   *fakeStore
	atlases *fakeAtlases
	window  *fakeWindow
	reloads chan config.Config
}

func newTestGame(t *testing.T) *testGame {
	t.Helper()
	tg := &testGame{
		store:   &fakeStore{},
		atlases: newFakeAtlases("Punch-Sheet.png", "Run-Sheet.png", "Alt-Sheet.png"),
		window:  &fakeWindow{},
		reloads: make(chan config.Config, 1),
	}
	g, err := newGame(config.Default(), tg.store, achievements.NewTracker(nil, zap.NewNop()), tg.reloads, tg.atlases, tg.window, zap.NewNop())
	require.NoError(t, err)
	tg.Game = g
	return tg
}

// useFakeModes swaps every mode for a recording fake.
func (tg *testGame) useFakeModes() [modeCount]*fakeMode {
	var fakes [modeCount]*fakeMode
	for m := GameMode(0); m < modeCount; m++ {
		fakes[m] = &fakeMode{name: fmt.Sprintf("mode%d", m)}
		tg.modes[m] = fakes[m]
	}
	return fakes
}

func idle() frameInput { return frameInput{Select: modeNone} }

func TestStep_AutosavesEveryTenSeconds(t *testing.T) {
	tg := newTestGame(t)

	for i := 0; i < 19; i++ {
		require.NoError(t, tg.step(idle(), 0.5))
	}
	assert.Equal(t, 0, tg.store.saves)

	require.NoError(t, tg.step(idle(), 0.5))
	assert.Equal(t, 1, tg.store.saves)

	for i := 0; i < 19; i++ {
		require.NoError(t, tg.step(idle(), 0.5))
	}
	assert.Equal(t, 1, tg.store.saves)

	require.NoError(t, tg.step(idle(), 0.5))
	assert.Equal(t, 2, tg.store.saves)
	assert.Equal(t, 20.0, tg.store.stats.PlaySeconds)
}

func TestStep_ModeKeysSwitchMode(t *testing.T) {
	tg := newTestGame(t)
	fakes := tg.useFakeModes()
	require.Equal(t, ModePunch, tg.currentMode)

	in := idle()
	in.Select = ModeRun
	require.NoError(t, tg.step(in, 0.1))
	assert.Equal(t, ModeRun, tg.currentMode)
	assert.Equal(t, 1, fakes[ModeRun].updates)
	assert.Equal(t, 0, fakes[ModePunch].updates)

	require.NoError(t, tg.step(idle(), 0.1))
	assert.Equal(t, ModeRun, tg.currentMode)
	assert.Equal(t, 2, fakes[ModeRun].updates)
}

func TestStep_DebugToggleReachesEveryMode(t *testing.T) {
	tg := newTestGame(t)
	fakes := tg.useFakeModes()

	in := idle()
	in.ToggleDebug = true
	require.NoError(t, tg.step(in, 0.1))
	for _, f := range fakes {
		assert.True(t, f.debug, f.name)
	}

	require.NoError(t, tg.step(in, 0.1))
	for _, f := range fakes {
		assert.False(t, f.debug, f.name)
	}
}

func TestStep_UnlocksAchievements(t *testing.T) {
	tg := newTestGame(t)
	tg.store.stats.RunLoops = 1

	require.NoError(t, tg.step(idle(), 0.1))
	assert.True(t, tg.achievements.Unlocked("first_lap"))
	p, ok := tg.achievements.Popup()
	require.True(t, ok)
	assert.Equal(t, "first_lap", p.ID)
}

func TestApplyConfig_RejectedReloadKeepsModes(t *testing.T) {
	tests := []struct {
		name string
		edit func(*config.Config)
	}{
		{"missing atlas", func(c *config.Config) {
			s := c.Sheets[config.SheetRun]
			s.Image = "Missing.png"
			c.Sheets[config.SheetRun] = s
		}},
		{"invalid sheet", func(c *config.Config) {
			s := c.Sheets[config.SheetPunch]
			s.Frames = 0
			c.Sheets[config.SheetPunch] = s
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := newTestGame(t)
			fakes := tg.useFakeModes()
			cfgBefore := tg.cfg

			cfg := config.Default()
			cfg.Window.Title = "Reloaded"
			tt.edit(&cfg)
			tg.reloads <- cfg
			require.NoError(t, tg.step(idle(), 0.1))

			for _, f := range fakes {
				assert.Empty(t, f.reconfigured, f.name)
			}
			assert.Equal(t, cfgBefore, tg.cfg)
			assert.Empty(t, tg.window.title)
			assert.Equal(t, []string{"Punch-Sheet.png", "Run-Sheet.png"}, tg.atlases.retained)
		})
	}
}

func TestApplyConfig_ReconfiguresInPlace(t *testing.T) {
	tg := newTestGame(t)
	fakes := tg.useFakeModes()

	cfg := config.Default()
	cfg.Window.Title = "Reloaded"
	cfg.Window.Width, cfg.Window.Height, cfg.Window.Scale = 640, 480, 2
	cfg.TPS = 30
	cfg.DebugBoxes = true
	s := cfg.Sheets[config.SheetRun]
	s.Image = "Alt-Sheet.png"
	cfg.Sheets[config.SheetRun] = s
	tg.reloads <- cfg
	require.NoError(t, tg.step(idle(), 0.1))

	require.Len(t, fakes[ModePunch].reconfigured, 1)
	require.Len(t, fakes[ModeRun].reconfigured, 1)
	assert.Empty(t, fakes[ModeStats].reconfigured)
	assert.Equal(t, "Alt-Sheet.png", fakes[ModeRun].reconfigured[0].Sheets[config.SheetRun].Image)

	assert.Equal(t, 1280, tg.window.width)
	assert.Equal(t, 960, tg.window.height)
	assert.Equal(t, "Reloaded", tg.window.title)
	assert.Equal(t, 30, tg.window.tps)
	for _, f := range fakes {
		assert.True(t, f.debug, f.name)
	}
	assert.Equal(t, []string{"Alt-Sheet.png", "Punch-Sheet.png"}, tg.atlases.retained)
	assert.Equal(t, 640, tg.cfg.Window.Width)
}

func TestApplyConfig_SameSizeKeepsWindow(t *testing.T) {
	tg := newTestGame(t)

	cfg := config.Default()
	cfg.Text.Message = "Fresh"
	tg.reloads <- cfg
	require.NoError(t, tg.step(idle(), 0.1))

	assert.Zero(t, tg.window.width)
	assert.Equal(t, "Fresh", tg.cfg.Text.Message)
}

func TestClose_SavesAndReleases(t *testing.T) {
	tg := newTestGame(t)

	require.NoError(t, tg.Close())
	assert.Equal(t, 1, tg.store.saves)
	assert.True(t, tg.atlases.released)
}
