// Package theme stores a client's dark/light preference.
package theme

import (
	"context"
	"fmt"

	"github.com/sujalbistaa/zevina/internal/storage"
)

const (
	Key = "zevina_theme"

	Dark  = "dark"
	Light = "light"
)

// Store is the only writer of the theme preference.
type Store struct {
	store storage.Storage
	dark  bool
}

// Open reads the stored preference. Anything other than "dark" is light.
func Open(ctx context.Context, store storage.Storage) (*Store, error) {
	v, _, err := store.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	return &Store{store: store, dark: v == Dark}, nil
}

func (s *Store) IsDark() bool { return s.dark }

// Value is the persisted form, "dark" or "light".
func (s *Store) Value() string {
	if s.dark {
		return Dark
	}
	return Light
}

// RootClass is the class to set on the document root.
func (s *Store) RootClass() string {
	if s.dark {
		return Dark
	}
	return ""
}

// Toggle flips the preference and persists it.
func (s *Store) Toggle(ctx context.Context) (bool, error) {
	next := !s.dark
	v := Light
	if next {
		v = Dark
	}
	if err := s.store.Set(ctx, Key, v); err != nil {
		return s.dark, fmt.Errorf("save theme: %w", err)
	}
	s.dark = next
	return s.dark, nil
}
