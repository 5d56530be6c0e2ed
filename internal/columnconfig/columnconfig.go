// Package columnconfig remembers column choices made during a session.
package columnconfig

import (
	"sync"
)

// ColumnConfig stores the user-chosen visible field ids for one record kind.
type ColumnConfig struct {
	Visible []string // field ids in display order
}

// Store holds per-kind column configs. Thread-safe.
type Store struct {
	mu      sync.RWMutex
	configs map[string]ColumnConfig // keyed by fields.Registry.Name()
}

func NewStore() *Store {
	return &Store{configs: make(map[string]ColumnConfig)}
}

var defaultStore = NewStore()

// Default returns the package-level shared store.
func Default() *Store {
	return defaultStore
}

// Get returns the active field ids for a record kind, or defaults when the
// user has not picked any.
func (s *Store) Get(kind string, defaults []string) []string {
	s.mu.RLock()
	config, exists := s.configs[kind]
	s.mu.RUnlock()

	if !exists || len(config.Visible) == 0 {
		return append([]string(nil), defaults...)
	}
	return append([]string(nil), config.Visible...)
}

// Set stores user-chosen field ids for a record kind. An empty list resets.
func (s *Store) Set(kind string, visible []string) {
	if len(visible) == 0 {
		s.Reset(kind)
		return
	}
	s.mu.Lock()
	s.configs[kind] = ColumnConfig{Visible: append([]string(nil), visible...)}
	s.mu.Unlock()
}

// Reset removes user config for kind, reverting to defaults.
func (s *Store) Reset(kind string) {
	s.mu.Lock()
	delete(s.configs, kind)
	s.mu.Unlock()
}

// IsCustom reports whether the user has a non-default config for kind.
func (s *Store) IsCustom(kind string) bool {
	s.mu.RLock()
	_, exists := s.configs[kind]
	s.mu.RUnlock()
	return exists
}
