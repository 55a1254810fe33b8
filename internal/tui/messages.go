// Package tui provides Bubble Tea models for the interactive catalog browser.
package tui

import "github.com/robby/dex/internal/domain"

// CatalogLoadedMsg carries the outcome of a catalog fetch.
type CatalogLoadedMsg struct {
	Records []domain.Pokemon
	Err     error
}

// TypeSelectedMsg is emitted when the user picks a type filter.
// An empty Type clears the filter.
type TypeSelectedMsg struct {
	Type string
}

// Custom messages for overlay transitions.
type (
	openDetailMsg struct {
		pokemon domain.Pokemon
	}

	openTypePickerMsg struct {
		current string
	}

	openColumnPickerMsg struct{}

	closeOverlayMsg struct{}
)
