package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nsarvani/Statify/internal/adapters/csvfile"
	"github.com/nsarvani/Statify/internal/adapters/sqlite"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a CSV catalog into the SQLite database",
	Long: `Import reads a CSV catalog and replaces the songs table of the SQLite database
with its rows. Serve or query it afterwards with --catalog-driver sqlite.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		path := cfg.Preferences.Path
		if path == "" {
			path = "statify.db"
		}

		rows, err := csvfile.NewSource(from).LoadRows(cmd.Context())
		if err != nil {
			return err
		}

		db, err := sqlite.NewAdapter(path)
		if err != nil {
			return fmt.Errorf("open database %s: %w", path, err)
		}
		defer db.Close()

		n, err := db.ImportRows(cmd.Context(), rows)
		if err != nil {
			return err
		}

		logger.Info().Str("from", from).Str("db", path).Int("rows", n).Msg("catalog imported")
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %s songs into %s\n", humanize.Comma(int64(n)), path)
		return nil
	},
}

func init() {
	importCmd.Flags().String("from", "", "CSV catalog to import")
	_ = importCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(importCmd)
}
