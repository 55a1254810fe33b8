package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the saved table sorting and filters",
	Long: `Clears the persisted sorting and column filters of the table view.
The selected view (grid or table) is kept.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	if noPersist || !cfg.Storage.Persist {
		return fmt.Errorf("nothing to reset: persistence is disabled")
	}

	ctx := context.Background()
	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := s.ResetTable(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Reset sorting and filters (view: %s)\n", s.View())
	return nil
}
