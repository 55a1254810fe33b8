package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/robby/dex/internal/domain"
	"github.com/robby/dex/internal/tabular"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// List flags
	listName     string
	listType     string
	listSort     string
	listPage     int
	listPageSize int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch the catalog and print one page of the table",
	Long: `Runs the full fetch pipeline and prints a page of the table view.

Sort keys are column ids separated by commas, each optionally suffixed
with :desc. Column ids: name, types, weight, height, stats_hp,
stats_attack, stats_defense, stats_specialAttack, stats_specialDefense,
stats_speed.

Example:
  dex list --type fire --sort stats_speed:desc,name --page-size 20`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listName, "name", "", "Only names containing this text")
	listCmd.Flags().StringVar(&listType, "type", "", "Only this type")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort keys, e.g. types,stats_hp:desc")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number, starting at 1")
	listCmd.Flags().IntVar(&listPageSize, "page-size", tabular.DefaultPageSize, "Rows per page (10, 20, 30, 50, 100)")
}

func runList(cmd *cobra.Command, args []string) error {
	opts, err := parseListOptions(listName, listType, listSort, listPage, listPageSize)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := newCatalog().Fetch(ctx)
	if err != nil {
		return err
	}
	logger.Debug("catalog fetched for list", zap.Int("records", len(records)))

	return renderList(cmd.OutOrStdout(), records, opts)
}

// listOptions is the validated form of the list flags.
type listOptions struct {
	prefs domain.Preferences
	page  tabular.PageRequest
}

func parseListOptions(name, typ, sortKeys string, page, pageSize int) (listOptions, error) {
	if page < 1 {
		return listOptions{}, fmt.Errorf("invalid --page %d: pages start at 1", page)
	}
	if !tabular.ValidPageSize(pageSize) {
		return listOptions{}, fmt.Errorf("invalid --page-size %d (valid: %v)", pageSize, tabular.PageSizes)
	}

	sorting, err := parseSort(sortKeys)
	if err != nil {
		return listOptions{}, err
	}

	prefs := domain.DefaultPreferences()
	prefs.Sorting = sorting
	if name != "" {
		prefs.ColumnFilters[tabular.ColumnName] = name
	}
	if typ != "" {
		prefs.ColumnFilters[tabular.ColumnTypes] = strings.ToLower(typ)
	}

	return listOptions{
		prefs: prefs,
		page:  tabular.PageRequest{Index: page - 1, Size: pageSize},
	}, nil
}

// parseSort reads "id[:desc],..." into sort keys.
func parseSort(keys string) ([]domain.SortSpec, error) {
	sorting := []domain.SortSpec{}
	if strings.TrimSpace(keys) == "" {
		return sorting, nil
	}

	for _, part := range strings.Split(keys, ",") {
		id, dir, _ := strings.Cut(strings.TrimSpace(part), ":")
		col, ok := tabular.Lookup(id)
		if !ok || !col.Sortable() {
			return nil, fmt.Errorf("cannot sort by %q", id)
		}

		var desc bool
		switch strings.ToLower(dir) {
		case "", "asc":
		case "desc":
			desc = true
		default:
			return nil, fmt.Errorf("invalid sort direction %q for %s (valid: asc, desc)", dir, id)
		}

		for _, s := range sorting {
			if s.ID == id {
				return nil, fmt.Errorf("duplicate sort key %q", id)
			}
		}
		sorting = append(sorting, domain.SortSpec{ID: id, Desc: desc})
	}
	return sorting, nil
}

// renderList prints the requested page as a bordered table.
func renderList(w io.Writer, records []domain.Pokemon, opts listOptions) error {
	page, err := tabular.GetPage(records, opts.prefs, opts.page)
	if err != nil {
		return err
	}

	var cols []tabular.Column
	for _, c := range tabular.DefaultVisibility().VisibleColumns() {
		// Image and actions have no meaning outside the UI.
		if c.ID == tabular.ColumnSprite || c.ID == tabular.ColumnActions {
			continue
		}
		cols = append(cols, c)
	}

	headers := make([]string, 0, len(cols)+1)
	headers = append(headers, "#")
	for _, c := range cols {
		headers = append(headers, c.Header)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, p := range page.Rows {
		row := make([]string, 0, len(cols)+1)
		row = append(row, fmt.Sprintf("%03d", p.ID))
		for _, c := range cols {
			row = append(row, c.Cell(p))
		}
		t.Row(row...)
	}

	if len(page.Rows) > 0 {
		fmt.Fprintln(w, t.String())
	} else {
		fmt.Fprintln(w, "No Pokémon match.")
	}
	_, err = fmt.Fprintf(w, "%d of %d Pokémon, page %d of %d\n",
		page.TotalRows, len(records), page.PageIndex+1, max(page.PageCount, 1))
	return err
}
