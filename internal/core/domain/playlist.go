package domain

import (
	"slices"

	"github.com/elliotchance/orderedmap/v3"
)

// PlaylistSize is the length cap of a diversified playlist.
const PlaylistSize = 20

// Diversify spreads a playlist across the genres present in candidates.
// Every genre may contribute at most ceil(PlaylistSize/G) of its most popular
// songs, where G is the number of distinct genres; the pooled selection is
// then ordered by popularity and cut to PlaylistSize. The per-genre quota only
// biases the mix: a popular genre can still fill most of the list.
func Diversify(candidates []ScoredCandidate) []SongRecord {
	byGenre := orderedmap.NewOrderedMap[string, []SongRecord]()
	for _, c := range candidates {
		songs, _ := byGenre.Get(c.Song.Genre)
		byGenre.Set(c.Song.Genre, append(songs, c.Song))
	}
	if byGenre.Len() == 0 {
		return []SongRecord{}
	}

	quota := GenreQuota(byGenre.Len())
	selected := make([]SongRecord, 0, len(candidates))
	for songs := range byGenre.Values() {
		songs = slices.Clone(songs)
		sortByPopularity(songs, func(s SongRecord) int { return s.Popularity })
		if len(songs) > quota {
			songs = songs[:quota]
		}
		selected = append(selected, songs...)
	}

	sortByPopularity(selected, func(s SongRecord) int { return s.Popularity })
	if len(selected) > PlaylistSize {
		selected = selected[:PlaylistSize]
	}
	return selected
}

// GenreQuota returns ceil(PlaylistSize/genres). It returns PlaylistSize for
// a non-positive genre count.
func GenreQuota(genres int) int {
	if genres <= 0 {
		return PlaylistSize
	}
	return (PlaylistSize + genres - 1) / genres
}

// BuildPlaylist scores records against p and diversifies the matches.
func BuildPlaylist(records []SongRecord, p Preference) []SongRecord {
	return Diversify(PlaylistCandidates(records, p))
}
