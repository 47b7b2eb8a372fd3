package main

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog statistics",
	Long: `Stats loads the catalog and prints the average of every audio feature, the
top artists by their most-streamed track, and the genre distribution.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		agg, err := a.svc.Aggregate(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if !agg.AudioFeatures.IsDefined() {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"topSongs":      agg.TopSongs,
					"audioFeatures": nil,
					"topArtists":    agg.TopArtists,
					"popularGenres": agg.PopularGenres,
				})
			}
			return writeJSON(cmd.OutOrStdout(), agg)
		}
		return writeStats(cmd.OutOrStdout(), agg)
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "output the full aggregation as JSON")
	rootCmd.AddCommand(statsCmd)
}
