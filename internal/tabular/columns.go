// Package tabular derives the rows of the table view from the catalog and
// the UI preferences. Columns are described by data, and a single generic
// pipeline applies filter, then sort, then pagination.
package tabular

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/robby/dex/internal/domain"
)

// Column IDs. They double as keys in persisted sort and filter state.
const (
	ColumnSprite         = "sprite"
	ColumnName           = "name"
	ColumnTypes          = "types"
	ColumnWeight         = "weight"
	ColumnHeight         = "height"
	ColumnHP             = "stats_hp"
	ColumnAttack         = "stats_attack"
	ColumnDefense        = "stats_defense"
	ColumnSpecialAttack  = "stats_specialAttack"
	ColumnSpecialDefense = "stats_specialDefense"
	ColumnSpeed          = "stats_speed"
	ColumnActions        = "actions"
)

// Column describes one table column.
type Column struct {
	ID     string
	Header string
	Width  int

	// Cell renders the column value as text.
	Cell func(domain.Pokemon) string

	// Compare orders two records ascending. Nil means the column is not sortable.
	Compare func(a, b domain.Pokemon) int

	// Filter reports whether a record passes the filter value.
	// Nil means the column ignores filters.
	Filter func(p domain.Pokemon, value string) bool

	Hideable       bool
	DefaultVisible bool
}

// Sortable reports whether the column has a comparator.
func (c Column) Sortable() bool {
	return c.Compare != nil
}

// Filterable reports whether the column has a filter predicate.
func (c Column) Filterable() bool {
	return c.Filter != nil
}

var columns = []Column{
	{
		ID:     ColumnSprite,
		Header: "Image",
		Width:  6,
		Cell: func(p domain.Pokemon) string {
			if p.SpriteURL == "" {
				return "-"
			}
			return "[img]"
		},
		DefaultVisible: true,
	},
	{
		ID:      ColumnName,
		Header:  "Name",
		Width:   14,
		Cell:    func(p domain.Pokemon) string { return p.Name },
		Compare: func(a, b domain.Pokemon) int { return strings.Compare(a.Name, b.Name) },
		Filter:  matchName,

		DefaultVisible: true,
	},
	{
		ID:     ColumnTypes,
		Header: "Type",
		Width:  16,
		Cell:   func(p domain.Pokemon) string { return strings.Join(p.Types, "/") },
		Compare: func(a, b domain.Pokemon) int {
			return strings.Compare(a.PrimaryType(), b.PrimaryType())
		},
		Filter:         matchType,
		Hideable:       true,
		DefaultVisible: true,
	},
	numberColumn(ColumnWeight, "Weight (kg)", 11, func(p domain.Pokemon) float64 { return p.WeightKg }),
	numberColumn(ColumnHeight, "Height (m)", 10, func(p domain.Pokemon) float64 { return p.HeightM }),
	statColumn(ColumnHP, "HP", func(s domain.Stats) int { return s.HP }),
	statColumn(ColumnAttack, "Attack", func(s domain.Stats) int { return s.Attack }),
	statColumn(ColumnDefense, "Defense", func(s domain.Stats) int { return s.Defense }),
	hiddenByDefault(statColumn(ColumnSpecialAttack, "Sp. Atk", func(s domain.Stats) int { return s.SpecialAttack })),
	hiddenByDefault(statColumn(ColumnSpecialDefense, "Sp. Def", func(s domain.Stats) int { return s.SpecialDefense })),
	statColumn(ColumnSpeed, "Speed", func(s domain.Stats) int { return s.Speed }),
	{
		ID:     ColumnActions,
		Header: "",
		Width:  9,
		Cell:   func(domain.Pokemon) string { return "Details" },

		DefaultVisible: true,
	},
}

func numberColumn(id, header string, width int, value func(domain.Pokemon) float64) Column {
	return Column{
		ID:     id,
		Header: header,
		Width:  width,
		Cell: func(p domain.Pokemon) string {
			return fmt.Sprintf("%g", value(p))
		},
		Compare: func(a, b domain.Pokemon) int {
			return cmp.Compare(value(a), value(b))
		},
		Hideable:       true,
		DefaultVisible: true,
	}
}

func statColumn(id, header string, value func(domain.Stats) int) Column {
	return Column{
		ID:     id,
		Header: header,
		Width:  8,
		Cell: func(p domain.Pokemon) string {
			return fmt.Sprintf("%d", value(p.Stats))
		},
		Compare: func(a, b domain.Pokemon) int {
			return cmp.Compare(value(a.Stats), value(b.Stats))
		},
		Hideable:       true,
		DefaultVisible: true,
	}
}

func hiddenByDefault(c Column) Column {
	c.DefaultVisible = false
	return c
}

// matchName is a case-insensitive substring match.
func matchName(p domain.Pokemon, value string) bool {
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(value))
}

// matchType requires the value to be one of the record's types exactly.
func matchType(p domain.Pokemon, value string) bool {
	return p.HasType(value)
}

// Columns returns every column in table order.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// Lookup returns the column with the given ID.
func Lookup(id string) (Column, bool) {
	for _, c := range columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}
