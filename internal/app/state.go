// Package app provides application state and events for the UI layer.
package app

import (
	"fmt"
	"sync"

	"scoreboard-tracker/internal/anchor"
	"scoreboard-tracker/internal/config"
	"scoreboard-tracker/internal/ocr"
	"scoreboard-tracker/internal/session"
)

// EventType identifies application events.
type EventType int

const (
	EventConfigChanged EventType = iota
	EventSessionComplete
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds shared application state: the loaded config, the last
// session's rows, and the capture-in-flight guard. The UI disables
// re-entrant captures, but the guard here makes it safe regardless.
type State struct {
	mu sync.RWMutex

	ConfigPath string
	DataDir    string

	cfg       *config.Config
	lastRows  []session.PlayerRow
	capturing bool

	listeners map[EventType][]EventListener
}

// NewState creates application state rooted at a config file and data dir.
func NewState(configPath, dataDir string) *State {
	return &State{
		ConfigPath: configPath,
		DataDir:    dataDir,
		listeners:  make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// LoadConfig (re)loads the config file and emits EventConfigChanged.
func (s *State) LoadConfig() error {
	cfg, err := config.Load(s.ConfigPath)
	if err != nil {
		return err
	}
	s.SetConfig(cfg)
	return nil
}

// SetConfig swaps in an already-parsed config and emits EventConfigChanged.
func (s *State) SetConfig(cfg *config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.Emit(EventConfigChanged, cfg)
}

// Config returns the current config, or nil before the first load.
func (s *State) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SetPlayerName persists the tracked player name and reloads the config.
func (s *State) SetPlayerName(name string) error {
	if err := config.SavePlayerName(s.ConfigPath, name); err != nil {
		return err
	}
	return s.LoadConfig()
}

// LastRows returns the most recent session's rows.
func (s *State) LastRows() []session.PlayerRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRows
}

// Paths returns the on-disk layout for the configured data root.
func (s *State) Paths() session.Paths {
	return session.Paths{DataDir: s.DataDir}
}

// Capture runs one full session against the live screen. Only one session
// may be in flight at a time; overlapping calls fail fast.
func (s *State) Capture() ([]session.PlayerRow, error) {
	s.mu.Lock()
	if s.capturing {
		s.mu.Unlock()
		return nil, fmt.Errorf("a capture session is already in flight")
	}
	if s.cfg == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("no config loaded")
	}
	s.capturing = true
	cfg := s.cfg
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.capturing = false
		s.mu.Unlock()
	}()

	engine, err := ocr.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("start OCR engine: %w", err)
	}
	defer engine.Close()

	locator := anchor.NewLocator(cfg.AnchorTemplates, cfg.AnchorThreshold)
	pipeline := session.NewPipeline(cfg, s.Paths(), engine, locator, session.Options{
		SaveDebugImages: true,
	})

	rows, err := pipeline.ProcessScreenshot(cfg.PlayerName)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastRows = rows
	s.mu.Unlock()
	s.Emit(EventSessionComplete, rows)
	return rows, nil
}
