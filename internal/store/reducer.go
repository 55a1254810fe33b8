package store

import "github.com/robby/dex/internal/domain"

// Action is a state transition understood by Reduce.
type Action interface {
	apply(domain.Preferences) domain.Preferences
}

// SetView switches between the grid and table presentations.
type SetView struct {
	View domain.ViewMode
}

// SetSorting replaces the sort keys. When Update is set it receives the
// current keys and its result is used instead of Sorting.
type SetSorting struct {
	Sorting []domain.SortSpec
	Update  func([]domain.SortSpec) []domain.SortSpec
}

// SetColumnFilters replaces the column filters. When Update is set it
// receives the current filters and its result is used instead of Filters.
type SetColumnFilters struct {
	Filters domain.ColumnFilters
	Update  func(domain.ColumnFilters) domain.ColumnFilters
}

// ResetTable clears sorting and filters. The view mode is kept.
type ResetTable struct{}

// Reduce returns the state that results from applying a to p.
// p is never modified. Invalid view modes leave the state unchanged.
func Reduce(p domain.Preferences, a Action) domain.Preferences {
	if a == nil {
		return p.Clone()
	}
	return a.apply(p.Clone())
}

func (a SetView) apply(p domain.Preferences) domain.Preferences {
	if a.View.Valid() {
		p.View = a.View
	}
	return p
}

func (a SetSorting) apply(p domain.Preferences) domain.Preferences {
	next := a.Sorting
	if a.Update != nil {
		next = a.Update(p.Clone().Sorting)
	}
	sorting := make([]domain.SortSpec, len(next))
	copy(sorting, next)
	p.Sorting = sorting
	return p
}

func (a SetColumnFilters) apply(p domain.Preferences) domain.Preferences {
	next := a.Filters
	if a.Update != nil {
		next = a.Update(p.ColumnFilters.Clone())
	}
	p.ColumnFilters = next.Clone()
	return p
}

func (ResetTable) apply(p domain.Preferences) domain.Preferences {
	p.Sorting = []domain.SortSpec{}
	p.ColumnFilters = domain.ColumnFilters{}
	return p
}
