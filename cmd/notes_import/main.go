package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hetulpatel/notesdb/internal/config"
	"github.com/hetulpatel/notesdb/internal/importer"
	"github.com/hetulpatel/notesdb/internal/logging"
)

func main() {
	err := newRootCmd().ExecuteContext(context.Background())
	if err != nil {
		logging.Fatalf("notes_import: %v", err)
	}
	logging.Sync()
}

func newRootCmd() *cobra.Command {
	var opts importer.Options

	cmd := &cobra.Command{
		Use:   "notes_import",
		Short: "Convert a JSON notes file into a SQLite database",
		Long: `notes_import reads a JSON object whose keys are section names and whose
values are arrays of notes, and appends one row per note to the "notes" table
of a SQLite database, creating the file and table when missing.`,
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
			res, err := importer.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d notes from %d sections into %s (%d rows total)\n",
				res.Inserted, res.Sections, opts.DBPath, res.TotalRows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.JSONPath, "json", "j", "", "Source JSON file path")
	cmd.Flags().StringVarP(&opts.DBPath, "out", "o", "", "Output SQLite DB file path")
	return cmd
}
