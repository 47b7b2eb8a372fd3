package domain

import (
	"math"
	"strconv"
	"strings"
)

// Catalog column names as they appear in the source CSV header.
const (
	ColumnTrackID          = "track_id"
	ColumnTrackName        = "track_name"
	ColumnTrackArtist      = "track_artist"
	ColumnReleaseDate      = "track_album_release_date"
	ColumnPopularity       = "track_popularity"
	ColumnTempo            = "tempo"
	ColumnKey              = "key"
	ColumnMode             = "mode"
	ColumnDanceability     = "danceability"
	ColumnValence          = "valence"
	ColumnEnergy           = "energy"
	ColumnAcousticness     = "acousticness"
	ColumnInstrumentalness = "instrumentalness"
	ColumnLiveness         = "liveness"
	ColumnSpeechiness      = "speechiness"
	ColumnGenre            = "playlist_genre"
)

// Columns lists every column the normalizer reads.
var Columns = []string{
	ColumnTrackID,
	ColumnTrackName,
	ColumnTrackArtist,
	ColumnReleaseDate,
	ColumnPopularity,
	ColumnTempo,
	ColumnKey,
	ColumnMode,
	ColumnDanceability,
	ColumnValence,
	ColumnEnergy,
	ColumnAcousticness,
	ColumnInstrumentalness,
	ColumnLiveness,
	ColumnSpeechiness,
	ColumnGenre,
}

// NormalizeRow converts one raw row into a SongRecord. It never fails:
// absent or non-numeric numbers become 0 and missing labels become Unknown,
// so a garbage row turns into a degenerate record rather than an error.
func NormalizeRow(row RawRow) SongRecord {
	popularity := parseInt(row[ColumnPopularity])
	if popularity < 0 {
		popularity = 0
	}

	mode := ModeMinor
	if row[ColumnMode] == "1" {
		mode = ModeMajor
	}

	return SongRecord{
		ID:               parseInt(row[ColumnTrackID]),
		TrackID:          row[ColumnTrackID],
		TrackName:        row[ColumnTrackName],
		Artists:          row[ColumnTrackArtist],
		ReleasedDate:     ParseDate(row[ColumnReleaseDate]),
		Streams:          popularity,
		Popularity:       popularity,
		BPM:              parseFloat(row[ColumnTempo]),
		Key:              labelOrUnknown(row[ColumnKey]),
		Mode:             mode,
		Danceability:     parseFloat(row[ColumnDanceability]),
		Valence:          parseFloat(row[ColumnValence]),
		Energy:           parseFloat(row[ColumnEnergy]),
		Acousticness:     parseFloat(row[ColumnAcousticness]),
		Instrumentalness: parseFloat(row[ColumnInstrumentalness]),
		Liveness:         parseFloat(row[ColumnLiveness]),
		Speechiness:      parseFloat(row[ColumnSpeechiness]),
		Genre:            labelOrUnknown(row[ColumnGenre]),
	}
}

// NormalizeRows converts a whole catalog, preserving row order. Rows whose
// track_id is not numeric are numbered in row order starting after the
// largest numeric track_id, so a generated ID never collides with a numeric
// one. Repeated numeric track_ids in the source are kept as they are.
func NormalizeRows(rows []RawRow) []SongRecord {
	maxID := 0
	for _, row := range rows {
		if n, ok := parseIntStrict(row[ColumnTrackID]); ok && n > maxID {
			maxID = n
		}
	}

	records := make([]SongRecord, 0, len(rows))
	next := maxID + 1
	for _, row := range rows {
		rec := NormalizeRow(row)
		if _, ok := parseIntStrict(row[ColumnTrackID]); !ok {
			rec.ID = next
			next++
		}
		records = append(records, rec)
	}
	return records
}

func parseInt(s string) int {
	n, _ := parseIntStrict(s)
	return n
}

// parseIntStrict parses an integer, truncating real-valued literals such as "85.0".
func parseIntStrict(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f > 1<<53 || f < -(1<<53) {
		return 0, false
	}
	return int(f), true
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func labelOrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}
	return s
}
