package tabular

import (
	"errors"
	"fmt"
	"slices"

	"github.com/robby/dex/internal/domain"
)

var (
	// ErrInvalidPageSize indicates a page size outside PageSizes.
	ErrInvalidPageSize = errors.New("invalid page size")
	// ErrInvalidPageIndex indicates a negative page index.
	ErrInvalidPageIndex = errors.New("invalid page index")
)

// DefaultPageSize is the page size before the user picks one.
const DefaultPageSize = 10

// PageSizes lists the selectable page sizes in ascending order.
var PageSizes = []int{10, 20, 30, 50, 100}

// PageRequest selects a page. A zero Size means DefaultPageSize.
type PageRequest struct {
	Index int
	Size  int
}

// Page is one slice of the filtered and sorted records.
type Page struct {
	Rows      []domain.Pokemon
	TotalRows int // After filtering, before pagination
	PageIndex int
	PageCount int
	PageSize  int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return p.PageIndex > 0
}

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool {
	return p.PageIndex+1 < p.PageCount
}

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// NextPageSize returns the page size after n, wrapping to the smallest.
func NextPageSize(n int) int {
	i := slices.Index(PageSizes, n)
	if i < 0 || i == len(PageSizes)-1 {
		return PageSizes[0]
	}
	return PageSizes[i+1]
}

// Filter returns the records that pass every active column filter.
// Empty values and columns without a predicate are ignored.
func Filter(records []domain.Pokemon, filters domain.ColumnFilters) []domain.Pokemon {
	type active struct {
		col   Column
		value string
	}
	var preds []active
	for _, c := range columns {
		v, ok := filters[c.ID]
		if !ok || v == "" || !c.Filterable() {
			continue
		}
		preds = append(preds, active{col: c, value: v})
	}

	out := make([]domain.Pokemon, 0, len(records))
	for _, r := range records {
		pass := true
		for _, p := range preds {
			if !p.col.Filter(r, p.value) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, r)
		}
	}
	return out
}

// Sort orders records by the sort keys, earlier keys taking precedence.
// Ties keep their input order. Unknown and unsortable keys are skipped.
// The input slice is not modified.
func Sort(records []domain.Pokemon, sorting []domain.SortSpec) []domain.Pokemon {
	type key struct {
		compare func(a, b domain.Pokemon) int
		desc    bool
	}
	var keys []key
	for _, s := range sorting {
		c, ok := Lookup(s.ID)
		if !ok || !c.Sortable() {
			continue
		}
		keys = append(keys, key{compare: c.Compare, desc: s.Desc})
	}

	out := slices.Clone(records)
	if len(keys) == 0 {
		return out
	}

	slices.SortStableFunc(out, func(a, b domain.Pokemon) int {
		for _, k := range keys {
			n := k.compare(a, b)
			if k.desc {
				n = -n
			}
			if n != 0 {
				return n
			}
		}
		return 0
	})
	return out
}

// Paginate slices records into the requested page.
// An index past the last page yields an empty page, not an error.
func Paginate(records []domain.Pokemon, req PageRequest) (Page, error) {
	size := req.Size
	if size == 0 {
		size = DefaultPageSize
	}
	if !ValidPageSize(size) {
		return Page{}, fmt.Errorf("%w: %d", ErrInvalidPageSize, req.Size)
	}
	if req.Index < 0 {
		return Page{}, fmt.Errorf("%w: %d", ErrInvalidPageIndex, req.Index)
	}

	total := len(records)
	page := Page{
		Rows:      []domain.Pokemon{},
		TotalRows: total,
		PageIndex: req.Index,
		PageCount: (total + size - 1) / size,
		PageSize:  size,
	}

	start := req.Index * size
	if start >= total {
		return page, nil
	}
	end := min(start+size, total)
	page.Rows = slices.Clone(records[start:end])
	return page, nil
}

// GetPage runs the full pipeline: filter, sort, paginate.
func GetPage(records []domain.Pokemon, prefs domain.Preferences, req PageRequest) (Page, error) {
	filtered := Filter(records, prefs.ColumnFilters)
	sorted := Sort(filtered, prefs.Sorting)
	return Paginate(sorted, req)
}

// ClampPageIndex returns index limited to the pages available for total rows.
func ClampPageIndex(index, total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	last := (total+size-1)/size - 1
	if index > last {
		index = last
	}
	if index < 0 {
		index = 0
	}
	return index
}
