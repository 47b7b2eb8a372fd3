package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"

	"github.com/nsarvani/Statify/internal/core/domain"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeStats prints the dashboard statistics as aligned text.
func writeStats(w io.Writer, agg domain.Aggregation) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Songs\t%s\n\n", humanize.Comma(int64(len(agg.TopSongs))))

	fmt.Fprintln(tw, "AUDIO FEATURE\tAVERAGE")
	for _, f := range domain.Features {
		if !agg.AudioFeatures.IsDefined() {
			fmt.Fprintf(tw, "%s\tn/a\n", f)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.3f\n", f, agg.AudioFeatures.Get(f))
	}

	fmt.Fprintln(tw, "\nARTIST\tTOP TRACK\tSTREAMS\tDANCE\tENERGY")
	for _, a := range agg.TopArtists {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\n",
			a.Name, a.TopTrack, humanize.Comma(int64(a.TotalStreams)), a.AvgDanceability, a.AvgEnergy)
	}

	fmt.Fprintln(tw, "\nGENRE\tSHARE")
	for genre, pct := range agg.PopularGenres.All() {
		fmt.Fprintf(tw, "%s\t%d%%\n", genre, pct)
	}

	return tw.Flush()
}

func writeQuizResults(w io.Writer, results []domain.ScoredCandidate) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No songs match at least three of your answers.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTRACK\tARTIST\tGENRE\tPOPULARITY\tSCORE")
	for i, c := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\n",
			i+1, c.Song.TrackName, c.Song.Artists, c.Song.Genre, c.Song.Popularity, c.Score)
	}
	return tw.Flush()
}

func writePlaylist(w io.Writer, songs []domain.SongRecord) error {
	if len(songs) == 0 {
		_, err := fmt.Fprintln(w, "No songs match at least two of your answers.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTRACK\tARTIST\tGENRE\tBPM\tPOPULARITY")
	for i, s := range songs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.0f\t%d\n",
			i+1, s.TrackName, s.Artists, s.Genre, s.BPM, s.Popularity)
	}
	return tw.Flush()
}
