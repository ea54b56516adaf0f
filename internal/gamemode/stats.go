package gamemode

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"odootoor/internal/achievements"
	"odootoor/internal/stats"
)

// StatsSource exposes the persisted counters.
type StatsSource interface {
	Stats() stats.Stats
}

// AchievementSource lists achievements with their unlock state.
type AchievementSource interface {
	List() []achievements.Status
}

// StatsMode shows the play statistics and achievements.
type StatsMode struct {
	src StatsSource
	ach AchievementSource
}

func NewStatsMode(src StatsSource, ach AchievementSource) *StatsMode {
	return &StatsMode{src: src, ach: ach}
}

func (m *StatsMode) Name() string { return "STATS" }

func (m *StatsMode) Update(Input, Clock) error { return nil }

func (m *StatsMode) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, m.Text())
}

// Text is the stats page as printed on screen.
func (m *StatsMode) Text() string {
	s := m.src.Stats()
	var b strings.Builder
	fmt.Fprintf(&b, "MODE: STATS\nTotal Play: %dm\nPunches: %d\nChars Punched: %d\nMessages: %d\nRun Loops: %d",
		int(s.PlaySeconds)/60, s.PunchLoops, s.CharsPunched, s.MessagesDone, s.RunLoops)

	list := m.ach.List()
	unlocked := 0
	for _, st := range list {
		if st.Unlocked {
			unlocked++
		}
	}
	fmt.Fprintf(&b, "\n\nAchievements %d/%d", unlocked, len(list))
	for _, st := range list {
		mark := "[ ]"
		if st.Unlocked {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "\n%s %s - %s", mark, st.Name, st.Description)
	}
	return b.String()
}
