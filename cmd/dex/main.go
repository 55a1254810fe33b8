package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/dex/internal/catalog"
	"github.com/robby/dex/internal/config"
	"github.com/robby/dex/internal/domain"
	"github.com/robby/dex/internal/logging"
	"github.com/robby/dex/internal/pokeapi"
	"github.com/robby/dex/internal/storage"
	"github.com/robby/dex/internal/store"
	"github.com/robby/dex/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	verbose    bool
	noPersist  bool

	// Root flags
	viewFlag string

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dex",
	Short: "Terminal Pokémon explorer backed by PokeAPI",
	Long: `dex is a terminal user interface for browsing the first-generation
Pokémon catalog from PokeAPI.

Browse the catalog as a grid of cards, or switch to a table that can be
filtered by name and type, sorted on any column and paginated. The chosen
view, sorting and filters are remembered between sessions.

Configuration is read from $XDG_CONFIG_HOME/dex/config.yaml when present.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")
	rootCmd.PersistentFlags().BoolVar(&noPersist, "no-persist", false, "Keep preferences in memory only")
	rootCmd.Flags().StringVar(&viewFlag, "view", "", "Start in this view: grid or table")

	rootCmd.AddCommand(listCmd, resetCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if viewFlag != "" && !domain.ViewMode(viewFlag).Valid() {
		return fmt.Errorf("invalid --view %q (valid: grid, table)", viewFlag)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if viewFlag != "" {
		if err := s.SetView(ctx, domain.ViewMode(viewFlag)); err != nil {
			return err
		}
	}

	app := tui.NewAppModel(newCatalog(), s, ctx, logger, cfg.UI.PageSize)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}

// newCatalog wires the PokeAPI client into the fetch pipeline.
func newCatalog() *catalog.Service {
	client := pokeapi.New(pokeapi.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.GetTimeout(),
		UserAgent: cfg.API.UserAgent,
		RateLimit: cfg.API.RateLimit,
		Logger:    logger,
	})

	return catalog.New(client, catalog.Options{
		Limit:          cfg.API.Limit,
		DetailTTL:      cfg.GetDetailTTL(),
		MaxConcurrency: cfg.API.MaxConcurrency,
		Logger:         logger,
	})
}

// openStore opens the preference store over sqlite, or over memory when
// persistence is off. The config's ui.view seeds the view on first run.
func openStore(ctx context.Context) (*store.Store, func(), error) {
	if noPersist || !cfg.Storage.Persist {
		s, err := store.Open(ctx, store.NewMemoryPersister())
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, seedView(ctx, s, false)
	}

	db, err := storage.Open(storage.DefaultConfig(cfg.Storage.Path))
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}

	repo := storage.NewPreferenceRepository(db, store.StorageKey)
	_, stored, err := repo.Load(ctx)
	if err != nil {
		logger.Warn("stored preferences unreadable, using defaults", zap.Error(err))
	}

	s, err := store.Open(ctx, repo)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	if err := seedView(ctx, s, stored); err != nil {
		closeDB()
		return nil, nil, err
	}

	logger.Debug("preference store opened",
		zap.String("path", cfg.Storage.Path),
		zap.Bool("stored", stored))

	return s, closeDB, nil
}

func seedView(ctx context.Context, s *store.Store, stored bool) error {
	v := domain.ViewMode(cfg.UI.View)
	if stored || s.View() == v {
		return nil
	}
	return s.SetView(ctx, v)
}
