// Package main is the entry point for the statify CLI.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nsarvani/Statify/internal/config"
	"github.com/nsarvani/Statify/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	v      = config.New("")
	cfg    config.Config
	logger zerolog.Logger
)

// rootCmd is the base command for the statify CLI.
var rootCmd = &cobra.Command{
	Use:   "statify",
	Short: "Song catalog statistics and quiz-based recommendations",
	Long: `statify reads a tabular song catalog and derives dashboard statistics
(feature averages, top artists, genre distribution) and recommendations from a
four-question listening quiz, either as a strict result list or as a
genre-diversified playlist.

The catalog comes from a CSV file, a CSV document served over HTTP, or a SQLite
database populated with "statify import".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
			v.SetConfigFile(cfgFile)
		}
		loaded, err := config.Load(v)
		if err != nil {
			return err
		}
		cfg = loaded

		logger = logging.New(logging.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: os.Stderr,
		})
		cmd.SetContext(logging.WithContext(cmd.Context(), logger))
		if used := v.ConfigFileUsed(); used != "" {
			logger.Debug().Str("file", used).Msg("using config file")
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./statify.yaml or ~/.config/statify/statify.yaml)")
	flags.String("catalog-driver", "", "catalog source: csv, http or sqlite")
	flags.String("catalog-path", "", "CSV catalog file for the csv driver")
	flags.String("catalog-url", "", "CSV catalog URL for the http driver")
	flags.String("db", "", "SQLite database for preferences and the sqlite driver")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error")
	flags.String("log-format", "", "log format: json or console")

	for key, name := range map[string]string{
		"catalog.driver":   "catalog-driver",
		"catalog.path":     "catalog-path",
		"catalog.url":      "catalog-url",
		"preferences.path": "db",
		"log.level":        "log-level",
		"log.format":       "log-format",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

