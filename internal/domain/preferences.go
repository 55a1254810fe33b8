package domain

// ViewMode selects how the catalog is presented.
type ViewMode string

const (
	ViewGrid  ViewMode = "grid"
	ViewTable ViewMode = "table"
)

// Valid reports whether v is a known view mode.
func (v ViewMode) Valid() bool {
	return v == ViewGrid || v == ViewTable
}

// SortSpec is one key of a multi-column sort.
type SortSpec struct {
	ID   string `json:"id"`   // Column ID
	Desc bool   `json:"desc"` // Descending when true
}

// ColumnFilters maps a column ID to its active filter value.
type ColumnFilters map[string]string

// Clone returns an independent copy of f (never nil).
func (f ColumnFilters) Clone() ColumnFilters {
	out := make(ColumnFilters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Preferences is the persisted UI state shared by the grid and table views.
type Preferences struct {
	View          ViewMode
	Sorting       []SortSpec
	ColumnFilters ColumnFilters
}

// DefaultPreferences returns the first-run state: grid view, no sort, no filters.
func DefaultPreferences() Preferences {
	return Preferences{
		View:          ViewGrid,
		Sorting:       []SortSpec{},
		ColumnFilters: ColumnFilters{},
	}
}

// Clone returns a deep copy of p.
func (p Preferences) Clone() Preferences {
	sorting := make([]SortSpec, len(p.Sorting))
	copy(sorting, p.Sorting)
	return Preferences{
		View:          p.View,
		Sorting:       sorting,
		ColumnFilters: p.ColumnFilters.Clone(),
	}
}

// IsFiltered reports whether any sort key or non-empty filter is active.
func (p Preferences) IsFiltered() bool {
	if len(p.Sorting) > 0 {
		return true
	}
	for _, v := range p.ColumnFilters {
		if v != "" {
			return true
		}
	}
	return false
}
