package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/dex/internal/catalog"
	"github.com/robby/dex/internal/domain"
	"github.com/robby/dex/internal/store"
	"github.com/robby/dex/internal/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher serves n detail records, or fails the index request.
type stubFetcher struct {
	n   int
	err error
}

func (f *stubFetcher) ListPokemon(ctx context.Context, limit int) ([]domain.ItemReference, error) {
	if f.err != nil {
		return nil, f.err
	}
	refs := make([]domain.ItemReference, f.n)
	for i := range refs {
		refs[i] = domain.ItemReference{
			Name: fmt.Sprintf("mon%03d", i+1),
			URL:  fmt.Sprintf("https://pokeapi.test/pokemon/%d/", i+1),
		}
	}
	return refs, nil
}

func (f *stubFetcher) GetDetail(ctx context.Context, url string) (*domain.DetailRecord, error) {
	var id int
	if _, err := fmt.Sscanf(url, "https://pokeapi.test/pokemon/%d/", &id); err != nil {
		return nil, err
	}
	return &domain.DetailRecord{
		ID:     id,
		Name:   fmt.Sprintf("mon%03d", id),
		Height: id,
		Weight: id,
		Types:  []domain.TypeDetail{{Slot: 1, Type: domain.NamedRef{Name: "grass"}}},
	}, nil
}

func createTestApp(t *testing.T, f catalog.Fetcher) (AppModel, *store.Store) {
	t.Helper()
	s := createTestStore(t)
	svc := catalog.New(f, catalog.Options{})
	m := NewAppModel(svc, s, context.Background(), nil, tabular.DefaultPageSize)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(AppModel), s
}

// loaded returns the app after a successful catalog load of n records.
func loaded(t *testing.T, n int) (AppModel, *store.Store) {
	t.Helper()
	m, s := createTestApp(t, &stubFetcher{n: n})
	updated, _ := m.Update(m.loadCatalog()())
	app := updated.(AppModel)
	require.Equal(t, ScreenBrowse, app.screen)
	return app, s
}

func send(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(AppModel), cmd
}

func TestAppModel_StartsLoading(t *testing.T) {
	m, _ := createTestApp(t, &stubFetcher{n: 3})

	assert.Equal(t, ScreenLoading, m.screen)
	assert.Contains(t, m.View(), "Loading Pokémon")
	assert.NotNil(t, m.Init())
}

func TestAppModel_LoadSuccess(t *testing.T) {
	m, _ := loaded(t, 12)

	assert.Len(t, m.records, 12)
	assert.Equal(t, 12, m.table.Page().TotalRows)
	view := m.View()
	assert.Contains(t, view, "Pokémon Explorer")
	assert.Contains(t, view, "#001")
}

func TestAppModel_LoadFailure(t *testing.T) {
	m, _ := createTestApp(t, &stubFetcher{err: errors.New("connection refused")})

	m, _ = send(m, m.loadCatalog()())
	assert.Equal(t, ScreenError, m.screen)
	view := m.View()
	assert.Contains(t, view, "Oh no!")
	assert.Contains(t, view, "connection refused")

	// r retries
	m, cmd := send(m, keyRunes("r"))
	assert.Equal(t, ScreenLoading, m.screen)
	assert.NotNil(t, cmd)
}

func TestAppModel_ViewToggle(t *testing.T) {
	m, s := loaded(t, 12)
	require.Equal(t, domain.ViewGrid, s.View())

	m, _ = send(m, keyRunes("t"))
	assert.Equal(t, domain.ViewTable, s.View())
	assert.Contains(t, m.View(), "Rows per page")

	m, _ = send(m, keyRunes("g"))
	assert.Equal(t, domain.ViewGrid, s.View())
	assert.NotContains(t, m.View(), "Rows per page")
}

func TestAppModel_ViewPersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	p := store.NewMemoryPersister()
	s, err := store.Open(ctx, p)
	require.NoError(t, err)

	m := NewAppModel(catalog.New(&stubFetcher{n: 1}, catalog.Options{}), s, ctx, nil, 10)
	m, _ = send(m, m.loadCatalog()())
	_, _ = send(m, keyRunes("t"))

	reopened, err := store.Open(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewTable, reopened.View())
}

func TestAppModel_FilterInputSwallowsGlobalKeys(t *testing.T) {
	m, s := loaded(t, 12)
	m, _ = send(m, keyRunes("t"))
	m, _ = send(m, keyRunes("/"))
	require.True(t, m.table.Capturing())

	m, _ = send(m, keyRunes("g"))
	m, _ = send(m, keyRunes("q"))

	assert.Equal(t, domain.ViewTable, s.View(), "g typed into the filter")
	assert.Equal(t, "gq", s.ColumnFilters()[tabular.ColumnName])
	assert.True(t, m.table.Capturing())
}

func TestAppModel_DetailOverlay(t *testing.T) {
	m, _ := loaded(t, 12)

	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	require.NotNil(t, m.overlay)
	assert.Contains(t, m.View(), "Stats")

	// q closes the overlay instead of quitting
	m, cmd = send(m, keyRunes("q"))
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.Nil(t, m.overlay)
}

func TestAppModel_TypePickerFlow(t *testing.T) {
	m, s := loaded(t, 12)
	m, _ = send(m, keyRunes("t"))

	m, cmd := send(m, keyRunes("y"))
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	require.IsType(t, TypePickerModel{}, m.overlay)

	m, _ = send(m, TypeSelectedMsg{Type: "grass"})
	assert.Nil(t, m.overlay)
	assert.Equal(t, "grass", s.ColumnFilters()[tabular.ColumnTypes])
	assert.Equal(t, 12, m.table.Page().TotalRows)
}

func TestAppModel_ColumnPickerSharesVisibility(t *testing.T) {
	m, _ := loaded(t, 12)
	m, _ = send(m, keyRunes("t"))

	m, cmd := send(m, keyRunes("c"))
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	require.IsType(t, ColumnPickerModel{}, m.overlay)

	first := tabular.Hideable()[0]
	before := m.table.visibility.IsVisible(first.ID)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, !before, m.table.visibility.IsVisible(first.ID))

	m, cmd = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.Nil(t, m.overlay)
}

func TestAppModel_HelpToggle(t *testing.T) {
	m, _ := loaded(t, 3)

	m, _ = send(m, keyRunes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "reload")

	m, cmd := send(m, keyRunes("q"))
	assert.False(t, m.showHelp)
	assert.Nil(t, cmd)
}

func TestAppModel_Quit(t *testing.T) {
	m, _ := loaded(t, 3)

	_, cmd := send(m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAppModel_ReloadInvalidatesCatalog(t *testing.T) {
	f := &stubFetcher{n: 3}
	m, _ := createTestApp(t, f)
	m, _ = send(m, m.loadCatalog()())
	require.Len(t, m.records, 3)

	f.n = 5
	m, _ = send(m, keyRunes("r"))
	require.Equal(t, ScreenLoading, m.screen)

	m, _ = send(m, m.loadCatalog()())
	assert.Len(t, m.records, 5)
}
