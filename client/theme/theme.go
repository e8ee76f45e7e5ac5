// Package theme tracks the binary dark/light presentation preference. It is
// fully independent of the session: logging out does not reset it.
package theme

import "sync"

type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

const storageKey = "theme"

// Storage matches the session store's durable KV contract. The theme store
// exclusively owns the "theme" key.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Applier receives the mode as a side effect on every change so all visual
// surfaces reflect it without each reading the store.
type Applier func(Mode)

type Store struct {
	mu      sync.Mutex
	storage Storage
	mode    Mode
	apply   Applier
}

// New loads the persisted preference, defaulting to dark, and immediately
// applies it to the presentation root.
func New(storage Storage, apply Applier) *Store {
	mode := Dark
	if raw, ok := storage.Get(storageKey); ok && Mode(raw) == Light {
		mode = Light
	}
	s := &Store{storage: storage, mode: mode, apply: apply}
	if apply != nil {
		apply(mode)
	}
	return s
}

// Mode returns the current preference.
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// IsDark reports whether the dark mode is active.
func (s *Store) IsDark() bool { return s.Mode() == Dark }

// Toggle flips the preference, persists it immediately and reapplies it.
func (s *Store) Toggle() Mode {
	s.mu.Lock()
	if s.mode == Dark {
		s.mode = Light
	} else {
		s.mode = Dark
	}
	mode := s.mode
	s.storage.Set(storageKey, string(mode))
	apply := s.apply
	s.mu.Unlock()
	if apply != nil {
		apply(mode)
	}
	return mode
}
