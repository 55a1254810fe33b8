package tabular

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownColumn indicates a column ID that is not in the table.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrNotHideable indicates an attempt to hide a structural column.
	ErrNotHideable = errors.New("column cannot be hidden")
)

// Visibility tracks which columns are shown. It lives for the session only.
type Visibility struct {
	visible map[string]bool
}

// DefaultVisibility returns the initial state: every column visible except
// the special attack and special defense stats.
func DefaultVisibility() *Visibility {
	v := &Visibility{visible: make(map[string]bool, len(columns))}
	for _, c := range columns {
		v.visible[c.ID] = c.DefaultVisible
	}
	return v
}

// IsVisible reports whether the column is shown.
// Unknown IDs are not visible.
func (v *Visibility) IsVisible(id string) bool {
	return v.visible[id]
}

// Set shows or hides a column.
func (v *Visibility) Set(id string, visible bool) error {
	c, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, id)
	}
	if !c.Hideable {
		if visible {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrNotHideable, id)
	}
	v.visible[id] = visible
	return nil
}

// Toggle flips a column's visibility.
func (v *Visibility) Toggle(id string) error {
	return v.Set(id, !v.IsVisible(id))
}

// VisibleColumns returns the shown columns in table order.
func (v *Visibility) VisibleColumns() []Column {
	out := make([]Column, 0, len(columns))
	for _, c := range columns {
		if v.visible[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// Hideable returns the columns the user may toggle.
func Hideable() []Column {
	var out []Column
	for _, c := range columns {
		if c.Hideable {
			out = append(out, c)
		}
	}
	return out
}
