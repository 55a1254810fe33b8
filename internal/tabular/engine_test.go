package tabular

import (
	"fmt"
	"testing"

	"github.com/robby/dex/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fixtures
func createTestRecords() []domain.Pokemon {
	return []domain.Pokemon{
		{ID: 1, Name: "bulbasaur", Types: []string{"grass", "poison"}, WeightKg: 6.9, HeightM: 0.7, Stats: domain.Stats{HP: 45, Attack: 49, Speed: 45}},
		{ID: 4, Name: "charmander", Types: []string{"fire"}, WeightKg: 8.5, HeightM: 0.6, Stats: domain.Stats{HP: 39, Attack: 52, Speed: 65}},
		{ID: 6, Name: "charizard", Types: []string{"fire", "flying"}, WeightKg: 90.5, HeightM: 1.7, Stats: domain.Stats{HP: 78, Attack: 84, Speed: 100}},
		{ID: 16, Name: "pidgey", Types: []string{"normal", "flying"}, WeightKg: 1.8, HeightM: 0.3, Stats: domain.Stats{HP: 40, Attack: 45, Speed: 56}},
		{ID: 41, Name: "zubat", Types: []string{"poison", "flying"}, WeightKg: 7.5, HeightM: 0.8, Stats: domain.Stats{HP: 40, Attack: 45, Speed: 55}},
		{ID: 43, Name: "oddish", Types: []string{"grass"}, WeightKg: 5.4, HeightM: 0.5, Stats: domain.Stats{HP: 45, Attack: 50, Speed: 30}},
	}
}

func createTestCatalog(n int) []domain.Pokemon {
	out := make([]domain.Pokemon, n)
	for i := range out {
		out[i] = domain.Pokemon{ID: i + 1, Name: fmt.Sprintf("mon-%03d", i+1), Types: []string{"normal"}}
	}
	return out
}

func ids(records []domain.Pokemon) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	records := createTestRecords()

	tests := []struct {
		name    string
		filters domain.ColumnFilters
		want    []int
	}{
		{"no filters", nil, []int{1, 4, 6, 16, 41, 43}},
		{"name substring", domain.ColumnFilters{"name": "char"}, []int{4, 6}},
		{"name is case-insensitive", domain.ColumnFilters{"name": "CHAR"}, []int{4, 6}},
		{"type membership", domain.ColumnFilters{"types": "flying"}, []int{6, 16, 41}},
		{"type is exact", domain.ColumnFilters{"types": "fly"}, []int{}},
		{"secondary type matches", domain.ColumnFilters{"types": "poison"}, []int{1, 41}},
		{"filters combine", domain.ColumnFilters{"name": "char", "types": "flying"}, []int{6}},
		{"empty value passes all", domain.ColumnFilters{"types": ""}, []int{1, 4, 6, 16, 41, 43}},
		{"unknown column ignored", domain.ColumnFilters{"color": "red"}, []int{1, 4, 6, 16, 41, 43}},
		{"unfilterable column ignored", domain.ColumnFilters{"weight": "90"}, []int{1, 4, 6, 16, 41, 43}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(records, tt.filters)))
		})
	}
}

func TestFilter_PoisonFlying(t *testing.T) {
	zubat := []domain.Pokemon{{ID: 41, Types: []string{"poison", "flying"}}}

	assert.Len(t, Filter(zubat, domain.ColumnFilters{"types": "flying"}), 1)
	assert.Empty(t, Filter(zubat, domain.ColumnFilters{"types": "fly"}))
}

func TestSort(t *testing.T) {
	records := createTestRecords()

	tests := []struct {
		name    string
		sorting []domain.SortSpec
		want    []int
	}{
		{"no keys keeps order", nil, []int{1, 4, 6, 16, 41, 43}},
		{"name ascending", []domain.SortSpec{{ID: "name"}}, []int{1, 6, 4, 43, 16, 41}},
		{"weight descending", []domain.SortSpec{{ID: "weight", Desc: true}}, []int{6, 4, 41, 1, 43, 16}},
		{"height ascending", []domain.SortSpec{{ID: "height"}}, []int{16, 43, 4, 1, 41, 6}},
		{"speed descending", []domain.SortSpec{{ID: "stats_speed", Desc: true}}, []int{6, 4, 16, 41, 1, 43}},
		{
			name:    "multi-column breaks ties",
			sorting: []domain.SortSpec{{ID: "stats_hp"}, {ID: "stats_speed", Desc: true}},
			want:    []int{4, 16, 41, 1, 43, 6},
		},
		{"unknown key ignored", []domain.SortSpec{{ID: "color"}}, []int{1, 4, 6, 16, 41, 43}},
		{"unsortable key ignored", []domain.SortSpec{{ID: "sprite", Desc: true}}, []int{1, 4, 6, 16, 41, 43}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Sort(records, tt.sorting)))
		})
	}
}

func TestSort_Stable(t *testing.T) {
	records := createTestCatalog(50)

	sorted := Sort(records, []domain.SortSpec{{ID: "types"}})
	assert.Equal(t, ids(records), ids(sorted))

	sorted = Sort(records, []domain.SortSpec{{ID: "stats_hp", Desc: true}})
	assert.Equal(t, ids(records), ids(sorted))
}

func TestSort_TypesUseFirstElementOnly(t *testing.T) {
	records := []domain.Pokemon{
		{ID: 1, Types: []string{"grass", "poison"}},
		{ID: 2, Types: []string{"fire"}},
		{ID: 43, Types: []string{"grass"}},
		{ID: 99, Types: []string{}},
	}

	got := ids(Sort(records, []domain.SortSpec{{ID: "types"}}))
	assert.Equal(t, []int{99, 2, 1, 43}, got, "missing type sorts as empty; equal first types keep order")

	got = ids(Sort(records, []domain.SortSpec{{ID: "types", Desc: true}}))
	assert.Equal(t, []int{1, 43, 2, 99}, got)
}

func TestSort_DoesNotModifyInput(t *testing.T) {
	records := createTestRecords()
	_ = Sort(records, []domain.SortSpec{{ID: "name", Desc: true}})
	assert.Equal(t, []int{1, 4, 6, 16, 41, 43}, ids(records))
}

func TestPaginate(t *testing.T) {
	catalog := createTestCatalog(151)

	t.Run("151 rows at 50 per page", func(t *testing.T) {
		page, err := Paginate(catalog, PageRequest{Index: 3, Size: 50})
		require.NoError(t, err)

		assert.Equal(t, 4, page.PageCount)
		assert.Equal(t, 151, page.TotalRows)
		assert.Equal(t, 3, page.PageIndex)
		require.Len(t, page.Rows, 1)
		assert.Equal(t, 151, page.Rows[0].ID)
		assert.True(t, page.HasPrev())
		assert.False(t, page.HasNext())
	})

	t.Run("default size", func(t *testing.T) {
		page, err := Paginate(catalog, PageRequest{})
		require.NoError(t, err)

		assert.Equal(t, DefaultPageSize, page.PageSize)
		assert.Equal(t, 16, page.PageCount)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(page.Rows))
		assert.False(t, page.HasPrev())
		assert.True(t, page.HasNext())
	})

	t.Run("page count for every size", func(t *testing.T) {
		want := map[int]int{10: 16, 20: 8, 30: 6, 50: 4, 100: 2}
		for _, size := range PageSizes {
			page, err := Paginate(catalog, PageRequest{Size: size})
			require.NoError(t, err)
			assert.Equal(t, want[size], page.PageCount, "size %d", size)
		}
	})

	t.Run("index past the end is empty", func(t *testing.T) {
		page, err := Paginate(catalog, PageRequest{Index: 20, Size: 10})
		require.NoError(t, err)
		assert.NotNil(t, page.Rows)
		assert.Empty(t, page.Rows)
		assert.Equal(t, 151, page.TotalRows)
	})

	t.Run("no rows", func(t *testing.T) {
		page, err := Paginate(nil, PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, 0, page.PageCount)
		assert.Empty(t, page.Rows)
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := Paginate(catalog, PageRequest{Size: 25})
		assert.ErrorIs(t, err, ErrInvalidPageSize)
	})

	t.Run("negative index", func(t *testing.T) {
		_, err := Paginate(catalog, PageRequest{Index: -1})
		assert.ErrorIs(t, err, ErrInvalidPageIndex)
	})
}

func TestGetPage(t *testing.T) {
	prefs := domain.Preferences{
		View:          domain.ViewTable,
		Sorting:       []domain.SortSpec{{ID: "weight", Desc: true}},
		ColumnFilters: domain.ColumnFilters{"types": "flying"},
	}

	page, err := GetPage(createTestRecords(), prefs, PageRequest{Size: 10})
	require.NoError(t, err)

	assert.Equal(t, []int{6, 41, 16}, ids(page.Rows))
	assert.Equal(t, 3, page.TotalRows)
	assert.Equal(t, 1, page.PageCount)
}

func TestGetPage_FilterBeforePaginate(t *testing.T) {
	catalog := createTestCatalog(151)
	catalog[149].Types = []string{"psychic"}
	catalog[150].Types = []string{"psychic"}

	prefs := domain.DefaultPreferences()
	prefs.ColumnFilters["types"] = "psychic"

	page, err := GetPage(catalog, prefs, PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []int{150, 151}, ids(page.Rows))
	assert.Equal(t, 2, page.TotalRows)
}

func TestNextPageSize(t *testing.T) {
	assert.Equal(t, 20, NextPageSize(10))
	assert.Equal(t, 100, NextPageSize(50))
	assert.Equal(t, 10, NextPageSize(100))
	assert.Equal(t, 10, NextPageSize(7))
}

func TestClampPageIndex(t *testing.T) {
	assert.Equal(t, 0, ClampPageIndex(5, 0, 10))
	assert.Equal(t, 3, ClampPageIndex(9, 151, 50))
	assert.Equal(t, 2, ClampPageIndex(2, 151, 50))
	assert.Equal(t, 0, ClampPageIndex(-1, 151, 50))
}
