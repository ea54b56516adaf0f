// Package achievements unlocks named milestones from the play counters and
// remembers them across sessions.
package achievements

import (
	"fmt"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"odootoor/internal/stats"
)

const (
	achievementsObject   = "achievements"
	achievementsProperty = "unlocked"
)

// DisplayTime is how long an unlock popup stays up, in seconds. It fades
// out during the last second.
const DisplayTime = 3.0

// Achievement is a milestone over the play counters.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Reached     func(stats.Stats) bool
}

// Catalog lists every achievement in display order.
var Catalog = []Achievement{
	{"first_punch", "First Punch", "Finish one punch loop", func(s stats.Stats) bool { return s.PunchLoops >= 1 }},
	{"brawler", "Brawler", "Finish 100 punch loops", func(s stats.Stats) bool { return s.PunchLoops >= 100 }},
	{"typist", "Typist", "Punch 50 characters", func(s stats.Stats) bool { return s.CharsPunched >= 50 }},
	{"wordsmith", "Wordsmith", "Punch 500 characters", func(s stats.Stats) bool { return s.CharsPunched >= 500 }},
	{"delivered", "Delivered", "Punch through a whole message", func(s stats.Stats) bool { return s.MessagesDone >= 1 }},
	{"postmaster", "Postmaster", "Punch through 10 messages", func(s stats.Stats) bool { return s.MessagesDone >= 10 }},
	{"first_lap", "First Lap", "Finish one run loop", func(s stats.Stats) bool { return s.RunLoops >= 1 }},
	{"marathon", "Marathon", "Finish 250 run loops", func(s stats.Stats) bool { return s.RunLoops >= 250 }},
	{"regular", "Regular", "Play for 10 minutes", func(s stats.Stats) bool { return s.PlaySeconds >= 600 }},
}

// Status is an achievement and whether it is unlocked.
type Status struct {
	Achievement
	Unlocked bool
}

// Popup is an unlock notice on screen.
type Popup struct {
	Achievement
	Remaining float64 // seconds left on screen
}

// Alpha is the popup opacity in [0, 1].
func (p Popup) Alpha() float64 {
	return min(max(p.Remaining, 0), 1)
}

// Tracker checks the catalog against the counters. A nil manager keeps
// unlocks in memory only.
type Tracker struct {
	manager  *gdata.Manager
	logger   *zap.Logger
	catalog  []Achievement
	unlocked map[string]bool
	popups   []Popup
	dirty    bool
}

// NewTracker loads any saved unlocks for Catalog.
func NewTracker(manager *gdata.Manager, logger *zap.Logger) *Tracker {
	t := &Tracker{
		manager:  manager,
		logger:   logger.Named("achievements"),
		catalog:  Catalog,
		unlocked: make(map[string]bool),
	}
	if err := t.Load(); err != nil {
		t.logger.Warn("failed to load achievements, starting fresh", zap.Error(err))
	}
	return t
}

// Load replaces the unlocked set with the saved one. Unknown IDs are kept so
// a downgrade does not lose them.
func (t *Tracker) Load() error {
	t.unlocked = make(map[string]bool)
	t.popups = nil
	t.dirty = false
	if t.manager == nil || !t.manager.ObjectPropExists(achievementsObject, achievementsProperty) {
		return nil
	}

	data, err := t.manager.LoadObjectProp(achievementsObject, achievementsProperty)
	if err != nil {
		return fmt.Errorf("load achievements: %w", err)
	}
	var ids []string
	if err := yaml.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("unmarshal achievements: %w", err)
	}
	for _, id := range ids {
		t.unlocked[id] = true
	}
	return nil
}

// Save writes the unlocked set if it changed since the last save.
func (t *Tracker) Save() error {
	if t.manager == nil || !t.dirty {
		return nil
	}
	ids := make([]string, 0, len(t.unlocked))
	for id := range t.unlocked {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := yaml.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal achievements: %w", err)
	}
	if err := t.manager.SaveObjectProp(achievementsObject, achievementsProperty, data); err != nil {
		return fmt.Errorf("save achievements: %w", err)
	}
	t.dirty = false
	return nil
}

// Check unlocks every achievement s has reached and returns the new ones.
// Each new unlock gets a popup.
func (t *Tracker) Check(s stats.Stats) []Achievement {
	var fresh []Achievement
	for _, a := range t.catalog {
		if t.unlocked[a.ID] || !a.Reached(s) {
			continue
		}
		t.unlocked[a.ID] = true
		t.dirty = true
		t.popups = append(t.popups, Popup{Achievement: a, Remaining: DisplayTime})
		t.logger.Info("achievement unlocked", zap.String("id", a.ID), zap.String("name", a.Name))
		fresh = append(fresh, a)
	}
	return fresh
}

// Update counts the popup on screen down by dt seconds. Popups are queued:
// the next one starts when the current one expires.
func (t *Tracker) Update(dt float64) {
	if len(t.popups) == 0 {
		return
	}
	t.popups[0].Remaining -= dt
	if t.popups[0].Remaining <= 0 {
		t.popups = t.popups[1:]
	}
}

// Popup returns the oldest popup still on screen.
func (t *Tracker) Popup() (Popup, bool) {
	if len(t.popups) == 0 {
		return Popup{}, false
	}
	return t.popups[0], true
}

func (t *Tracker) Unlocked(id string) bool { return t.unlocked[id] }

// List returns the catalog with unlock state, in catalog order.
func (t *Tracker) List() []Status {
	out := make([]Status, len(t.catalog))
	for i, a := range t.catalog {
		out[i] = Status{Achievement: a, Unlocked: t.unlocked[a.ID]}
	}
	return out
}
