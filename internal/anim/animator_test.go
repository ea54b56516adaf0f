package anim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punchConfig() Config {
	return Config{CellWidth: 64, CellHeight: 64, FrameCount: 10, Speed: 8}
}

func TestNew_InitialState(t *testing.T) {
	a, err := New(nil, punchConfig())
	require.NoError(t, err)

	assert.Equal(t, 0, a.Index())
	assert.Equal(t, 0, a.LoopCount())
	assert.Equal(t, 0, a.Tick())
	assert.Equal(t, 10, a.FrameCount())
	assert.False(t, a.Stopped())
	assert.Nil(t, a.Frame())
}

func TestNew_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"zero frames", func(c *Config) { c.FrameCount = 0 }},
		{"negative frames", func(c *Config) { c.FrameCount = -3 }},
		{"zero speed", func(c *Config) { c.Speed = 0 }},
		{"negative speed", func(c *Config) { c.Speed = -1 }},
		{"nan speed", func(c *Config) { c.Speed = math.NaN() }},
		{"infinite speed", func(c *Config) { c.Speed = math.Inf(1) }},
		{"speed above max", func(c *Config) { c.Speed = MaxSpeed * 10 }},
		{"zero cell width", func(c *Config) { c.CellWidth = 0 }},
		{"zero cell height", func(c *Config) { c.CellHeight = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := punchConfig()
			tt.edit(&cfg)

			a, err := New(nil, cfg)
			assert.Nil(t, a)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestAdvance_FirstCallAtZeroDoesNotChange(t *testing.T) {
	a, err := New(nil, punchConfig())
	require.NoError(t, err)

	assert.False(t, a.Advance(0))
	assert.Equal(t, 0, a.Index())
}

// frameCount=10, speed=8 gives 80 ticks per second, so every 0.02s step
// crosses at least one tick boundary.
func TestAdvance_LoopsThroughStrip(t *testing.T) {
	a, err := New(nil, punchConfig())
	require.NoError(t, err)

	a.Advance(0)
	for k := 1; k <= 25; k++ {
		changed := a.Advance(float64(k) * 0.02)
		require.True(t, changed, "step %d", k)
		assert.Equal(t, k%10, a.Index(), "step %d", k)
		assert.Equal(t, k/10, a.LoopCount(), "step %d", k)
	}
}

func TestAdvance_LoopCountOnWrapFromLastFrame(t *testing.T) {
	a, err := New(nil, punchConfig())
	require.NoError(t, err)

	for k := 1; k <= 9; k++ {
		a.Advance(float64(k) * 0.02)
	}
	require.Equal(t, 9, a.Index())
	require.Equal(t, 0, a.LoopCount())

	a.Advance(0.2)
	assert.Equal(t, 0, a.Index())
	assert.Equal(t, 1, a.LoopCount())
}

func TestAdvance_SameTickDoesNotChange(t *testing.T) {
	a, err := New(nil, Config{CellWidth: 8, CellHeight: 8, FrameCount: 4, Speed: 1})
	require.NoError(t, err)

	// 4 ticks per second: 0.3s and 0.4s are both tick 1.
	assert.True(t, a.Advance(0.3))
	assert.False(t, a.Advance(0.4))
	assert.Equal(t, 1, a.Index())
	assert.Equal(t, 1, a.Tick())
}

func TestAdvance_SkippedTicksAdvanceOneFrame(t *testing.T) {
	a, err := New(nil, Config{CellWidth: 8, CellHeight: 8, FrameCount: 4, Speed: 1})
	require.NoError(t, err)

	assert.True(t, a.Advance(10))
	assert.Equal(t, 1, a.Index())
	assert.Equal(t, 40, a.Tick())
}

func TestSourceRect(t *testing.T) {
	a, err := New(nil, Config{CellWidth: 32, CellHeight: 48, FrameCount: 3, Speed: 1, Mirrored: true})
	require.NoError(t, err)

	want := []int{0, 32, 64, 0}
	for i, x := range want {
		if i > 0 {
			a.Advance(float64(i))
		}
		r := a.SourceRect()
		assert.Equal(t, x, r.X)
		assert.Equal(t, 0, r.Y)
		assert.Equal(t, 32, r.Width)
		assert.Equal(t, 48, r.Height)
		assert.True(t, r.Mirrored)
	}

	b := a.SourceRect().Bounds()
	assert.Equal(t, 32, b.Dx())
	assert.Equal(t, 48, b.Dy())
}

func TestSetSpeed(t *testing.T) {
	a, err := New(nil, punchConfig())
	require.NoError(t, err)

	require.NoError(t, a.SetSpeed(2.5))
	assert.Equal(t, 2.5, a.Speed())

	assert.ErrorIs(t, a.SetSpeed(0), ErrInvalidConfiguration)
	assert.Equal(t, 2.5, a.Speed())
}

// At the top speed, a billion seconds of playback puts the raw tick past
// the int64 range. Each step must still advance one frame.
func TestAdvance_HugeTicksKeepAdvancing(t *testing.T) {
	cfg := punchConfig()
	cfg.Speed = MaxSpeed
	a, err := New(nil, cfg)
	require.NoError(t, err)

	start := 1e9
	a.Advance(start)
	first := a.Index()
	for k := 1; k <= 12; k++ {
		require.True(t, a.Advance(start+float64(k)), "step %d", k)
		assert.Equal(t, (first+k)%10, a.Index(), "step %d", k)
	}
	assert.Equal(t, (first+12)/10, a.LoopCount())
}

func TestStopResume(t *testing.T) {
	a, err := New(nil, punchConfig())
	require.NoError(t, err)

	a.Advance(0.02)
	a.Stop()
	assert.False(t, a.Advance(0.04))
	assert.Equal(t, 1, a.Index())

	a.Resume()
	assert.True(t, a.Advance(0.04))
	assert.Equal(t, 2, a.Index())
}

func TestReset(t *testing.T) {
	a, err := New(nil, punchConfig())
	require.NoError(t, err)

	for k := 1; k <= 12; k++ {
		a.Advance(float64(k) * 0.02)
	}
	a.Stop()
	a.Reset()

	assert.Equal(t, 0, a.Index())
	assert.Equal(t, 0, a.LoopCount())
	assert.Equal(t, 0, a.Tick())
	assert.False(t, a.Stopped())
	assert.False(t, a.Advance(0))
}
