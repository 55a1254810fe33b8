package tabular

import "github.com/robby/dex/internal/domain"

// ToggleSort applies a header activation to the sort keys: an unsorted
// column becomes ascending, an ascending one descending and a descending
// one ascending again. Keys are only cleared by a table reset. Without multi
// the result holds only this column; with multi the other keys are kept and
// a new key is appended. Unsortable or unknown columns leave the keys unchanged.
func ToggleSort(sorting []domain.SortSpec, id string, multi bool) []domain.SortSpec {
	c, ok := Lookup(id)
	if !ok || !c.Sortable() {
		return cloneSorting(sorting)
	}

	pos := -1
	for i, s := range sorting {
		if s.ID == id {
			pos = i
			break
		}
	}

	next := domain.SortSpec{ID: id}
	if pos >= 0 && !sorting[pos].Desc {
		next.Desc = true
	}

	if !multi {
		return []domain.SortSpec{next}
	}

	out := cloneSorting(sorting)
	if pos < 0 {
		return append(out, next)
	}
	out[pos] = next
	return out
}

// SortDirection returns the direction of id in the sort keys.
// ok is false when the column is not sorted.
func SortDirection(sorting []domain.SortSpec, id string) (desc bool, ok bool) {
	for _, s := range sorting {
		if s.ID == id {
			return s.Desc, true
		}
	}
	return false, false
}

func cloneSorting(sorting []domain.SortSpec) []domain.SortSpec {
	out := make([]domain.SortSpec, len(sorting))
	copy(out, sorting)
	return out
}
