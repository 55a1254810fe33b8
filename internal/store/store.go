// Package store holds the UI preferences shared by the grid and table views:
// view mode, sort keys and column filters. Every mutation goes through Reduce
// and is written to a Persister before the call returns.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robby/dex/internal/domain"
)

var (
	// ErrInvalidView indicates a view mode other than grid or table.
	ErrInvalidView = errors.New("invalid view mode")
	// ErrNoPersister indicates Open was called without a Persister.
	ErrNoPersister = errors.New("no persister configured")
)

// Persister loads and saves preferences across sessions.
type Persister interface {
	// Load returns the stored preferences and whether anything was stored.
	Load(ctx context.Context) (domain.Preferences, bool, error)
	Save(ctx context.Context, p domain.Preferences) error
}

// Store manages the preference state.
type Store struct {
	mu        sync.Mutex
	prefs     domain.Preferences
	persister Persister
}

// Open rehydrates a Store from p. Defaults are used when nothing is stored
// or the stored record is corrupt.
func Open(ctx context.Context, p Persister) (*Store, error) {
	if p == nil {
		return nil, ErrNoPersister
	}

	prefs, ok, err := p.Load(ctx)
	switch {
	case errors.Is(err, ErrCorruptState):
		prefs = domain.DefaultPreferences()
	case err != nil:
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	case !ok:
		prefs = domain.DefaultPreferences()
	}

	return &Store{prefs: prefs.Clone(), persister: p}, nil
}

// Preferences returns a copy of the current state.
func (s *Store) Preferences() domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Clone()
}

// View returns the current view mode.
func (s *Store) View() domain.ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.View
}

// Sorting returns a copy of the current sort keys.
func (s *Store) Sorting() []domain.SortSpec {
	return s.Preferences().Sorting
}

// ColumnFilters returns a copy of the current column filters.
func (s *Store) ColumnFilters() domain.ColumnFilters {
	return s.Preferences().ColumnFilters
}

// SetView switches the view mode.
// Returns ErrInvalidView for anything but grid or table.
func (s *Store) SetView(ctx context.Context, v domain.ViewMode) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidView, v)
	}
	return s.Dispatch(ctx, SetView{View: v})
}

// SetSorting replaces the sort keys.
func (s *Store) SetSorting(ctx context.Context, sorting []domain.SortSpec) error {
	return s.Dispatch(ctx, SetSorting{Sorting: sorting})
}

// UpdateSorting derives the sort keys from the current ones.
func (s *Store) UpdateSorting(ctx context.Context, fn func([]domain.SortSpec) []domain.SortSpec) error {
	return s.Dispatch(ctx, SetSorting{Update: fn})
}

// SetColumnFilters replaces the column filters.
func (s *Store) SetColumnFilters(ctx context.Context, filters domain.ColumnFilters) error {
	return s.Dispatch(ctx, SetColumnFilters{Filters: filters})
}

// UpdateColumnFilters derives the column filters from the current ones.
func (s *Store) UpdateColumnFilters(ctx context.Context, fn func(domain.ColumnFilters) domain.ColumnFilters) error {
	return s.Dispatch(ctx, SetColumnFilters{Update: fn})
}

// ResetTable clears sorting and filters, keeping the view mode.
func (s *Store) ResetTable(ctx context.Context) error {
	return s.Dispatch(ctx, ResetTable{})
}

// Dispatch applies a and persists the result. If the save fails the
// in-memory state is left as it was and the error is returned.
func (s *Store) Dispatch(ctx context.Context, a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Reduce(s.prefs, a)
	if err := s.persister.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	s.prefs = next
	return nil
}
