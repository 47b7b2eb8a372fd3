package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsarvani/Statify/internal/core/domain"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend songs from quiz answers",
	Long: `Recommend scores every catalog song against the four quiz answers. By default
it prints up to 50 songs matching at least three answers, most popular first.
With --playlist it prints a 20-song playlist built from songs matching at least
two answers, spread across genres.`,
	Example: `  statify recommend --tempo slow --sound acoustic --mood happy --vocals vocal
  statify recommend --tempo fast --sound electronic --mood energetic --vocals balanced --playlist`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		tempo, _ := flags.GetString("tempo")
		sound, _ := flags.GetString("sound")
		mood, _ := flags.GetString("mood")
		vocals, _ := flags.GetString("vocals")

		p := domain.Preference{
			Tempo:           domain.Tempo(tempo),
			SoundType:       domain.SoundType(sound),
			Mood:            domain.Mood(mood),
			VocalPreference: domain.VocalPreference(vocals),
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("recommend: %w", err)
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		asJSON, _ := flags.GetBool("json")
		if playlist, _ := flags.GetBool("playlist"); playlist {
			songs, err := a.svc.Playlist(cmd.Context(), p)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), songs)
			}
			return writePlaylist(cmd.OutOrStdout(), songs)
		}

		results, err := a.svc.QuizResults(cmd.Context(), p)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), results)
		}
		return writeQuizResults(cmd.OutOrStdout(), results)
	},
}

func init() {
	flags := recommendCmd.Flags()
	flags.String("tempo", "", "slow, medium or fast")
	flags.String("sound", "", "acoustic, electronic or mixed")
	flags.String("mood", "", "happy, melancholic or energetic")
	flags.String("vocals", "", "vocal, instrumental or balanced")
	flags.Bool("playlist", false, "build a genre-diversified playlist instead of the quiz result list")
	flags.Bool("json", false, "output JSON")
	for _, name := range []string{"tempo", "sound", "mood", "vocals"} {
		_ = recommendCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(recommendCmd)
}
