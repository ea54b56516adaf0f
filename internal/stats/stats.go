// Package stats keeps play statistics across sessions.
package stats

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	statsObject   = "stats"
	statsProperty = "global"
)

// Stats are the persisted counters.
type Stats struct {
	PlaySeconds  float64 `yaml:"play_seconds"`
	PunchLoops   int     `yaml:"punch_loops"`
	CharsPunched int     `yaml:"chars_punched"`
	RunLoops     int     `yaml:"run_loops"`
	MessagesDone int     `yaml:"messages_done"`
}

// Store loads and saves Stats through gdata. A nil manager keeps stats in
// memory only.
type Store struct {
	manager *gdata.Manager
	logger  *zap.Logger
	stats   Stats
	dirty   bool
}

// Open opens the gdata storage for appName. Storage failures are logged and
// the store falls back to memory.
func Open(appName string, logger *zap.Logger) *Store {
	logger = logger.Named("stats")
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("persistent storage unavailable, stats kept in memory", zap.Error(err))
		m = nil
	}
	return NewStore(m, logger)
}

// NewStore wraps manager and loads any saved stats.
func NewStore(manager *gdata.Manager, logger *zap.Logger) *Store {
	s := &Store{manager: manager, logger: logger}
	if err := s.Load(); err != nil {
		s.logger.Warn("failed to load stats, starting fresh", zap.Error(err))
	}
	return s
}

// Load replaces the in-memory stats with the saved ones. Missing data
// leaves zero stats.
func (s *Store) Load() error {
	s.stats = Stats{}
	s.dirty = false
	if s.manager == nil || !s.manager.ObjectPropExists(statsObject, statsProperty) {
		return nil
	}

	data, err := s.manager.LoadObjectProp(statsObject, statsProperty)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	var loaded Stats
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("unmarshal stats: %w", err)
	}
	s.stats = loaded
	s.logger.Debug("stats loaded", zap.Float64("play_seconds", loaded.PlaySeconds))
	return nil
}

// Save writes the stats if they changed since the last save.
func (s *Store) Save() error {
	if s.manager == nil || !s.dirty {
		return nil
	}
	data, err := yaml.Marshal(s.stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := s.manager.SaveObjectProp(statsObject, statsProperty, data); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	s.dirty = false
	s.logger.Debug("stats saved")
	return nil
}

func (s *Store) Stats() Stats { return s.stats }

// Manager is the storage backing s, or nil when stats live in memory only.
func (s *Store) Manager() *gdata.Manager { return s.manager }

func (s *Store) AddPlayTime(seconds float64) {
	s.stats.PlaySeconds += seconds
	s.dirty = true
}

func (s *Store) RecordPunchLoop() {
	s.stats.PunchLoops++
	s.dirty = true
}

func (s *Store) RecordCharPunched() {
	s.stats.CharsPunched++
	s.dirty = true
}

func (s *Store) RecordRunLoop() {
	s.stats.RunLoops++
	s.dirty = true
}

func (s *Store) RecordMessageDone() {
	s.stats.MessagesDone++
	s.dirty = true
}
