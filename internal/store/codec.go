package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/robby/dex/internal/domain"
)

// StorageKey names the persisted preferences record.
const StorageKey = "pokemon-explorer-ui-storage"

// stateVersion is the envelope version written by Encode.
const stateVersion = 0

// ErrCorruptState indicates persisted preferences that cannot be decoded.
var ErrCorruptState = errors.New("corrupt persisted state")

type envelope struct {
	State   persistedState `json:"state"`
	Version int            `json:"version"`
}

type persistedState struct {
	View          domain.ViewMode   `json:"view"`
	Sorting       []domain.SortSpec `json:"sorting"`
	ColumnFilters []columnFilter    `json:"columnFilters"`
}

type columnFilter struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Encode serializes p into the persisted envelope.
// Filters are written in column ID order so equal states encode identically.
func Encode(p domain.Preferences) ([]byte, error) {
	ids := make([]string, 0, len(p.ColumnFilters))
	for id := range p.ColumnFilters {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	filters := make([]columnFilter, 0, len(ids))
	for _, id := range ids {
		filters = append(filters, columnFilter{ID: id, Value: p.ColumnFilters[id]})
	}

	sorting := p.Sorting
	if sorting == nil {
		sorting = []domain.SortSpec{}
	}

	data, err := json.Marshal(envelope{
		State: persistedState{
			View:          p.View,
			Sorting:       sorting,
			ColumnFilters: filters,
		},
		Version: stateVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode preferences: %w", err)
	}
	return data, nil
}

// Decode parses a persisted envelope. Missing fields take their defaults
// and an unknown view falls back to grid. Malformed JSON or a version
// mismatch yields ErrCorruptState.
func Decode(data []byte) (domain.Preferences, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return domain.DefaultPreferences(), fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if env.Version != stateVersion {
		return domain.DefaultPreferences(), fmt.Errorf("%w: unsupported version %d", ErrCorruptState, env.Version)
	}

	p := domain.DefaultPreferences()
	if env.State.View.Valid() {
		p.View = env.State.View
	}
	if env.State.Sorting != nil {
		p.Sorting = env.State.Sorting
	}
	for _, f := range env.State.ColumnFilters {
		p.ColumnFilters[f.ID] = f.Value
	}
	return p, nil
}
