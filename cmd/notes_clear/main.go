package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hetulpatel/notesdb/internal/config"
	"github.com/hetulpatel/notesdb/internal/logging"
	"github.com/hetulpatel/notesdb/internal/storage/sqlite"
)

func main() {
	err := newRootCmd().ExecuteContext(context.Background())
	if err != nil {
		logging.Fatalf("notes_clear: %v", err)
	}
	logging.Sync()
}

func newRootCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:           "notes_clear",
		Short:         "Delete every row of the notes table so an import can be re-run",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return logging.Init(cfg.Logging.Level, cfg.Logging.Mode)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(dbPath); err != nil {
				return fmt.Errorf("%w: %w", sqlite.ErrOpen, err)
			}
			store, err := sqlite.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			if err := store.CheckSchema(ctx); err != nil {
				return err
			}
			n, err := store.CountRecords(ctx)
			if err != nil {
				return err
			}
			if err := store.ClearTables(ctx); err != nil {
				return err
			}
			logging.Infof("cleared %d rows from %s", n, store.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d notes from %s\n", n, store.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&dbPath, "out", "o", "", "SQLite DB file path")
	return cmd
}
