// Package config loads the JSON bot options file and keeps a live,
// hot-reloadable snapshot of it.
package config

import (
	"sync"

	"github.com/meetrec/recording-bot/internal/domain"
)

// Store holds the current bot options. Reload swaps the whole options value
// under a mutex, so an in-flight request that took a Snapshot never observes
// a partially applied reload.
type Store struct {
	mu      sync.RWMutex
	options domain.Options
}

func NewStore(options domain.Options) *Store {
	return &Store{options: options}
}

// Snapshot returns the current options by value.
func (s *Store) Snapshot() domain.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options
}

// Reload atomically replaces the live options. It is the synchronous entry
// point for any external trigger: file watcher, timer, or manual signal.
func (s *Store) Reload(options domain.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = options
}
