package domain

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(name, genre string, popularity int) ScoredCandidate {
	return ScoredCandidate{
		Song:  SongRecord{TrackName: name, Genre: genre, Popularity: popularity, Streams: popularity},
		Score: PlaylistThreshold,
	}
}

func trackNames(songs []SongRecord) []string {
	out := make([]string, 0, len(songs))
	for _, s := range songs {
		out = append(out, s.TrackName)
	}
	return out
}

func TestGenreQuota(t *testing.T) {
	tests := []struct {
		genres int
		want   int
	}{
		{genres: 0, want: 20},
		{genres: 1, want: 20},
		{genres: 2, want: 10},
		{genres: 3, want: 7},
		{genres: 6, want: 4},
		{genres: 20, want: 1},
		{genres: 25, want: 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d genres", tt.genres), func(t *testing.T) {
			assert.Equal(t, tt.want, GenreQuota(tt.genres))
		})
	}
}

func TestDiversify(t *testing.T) {
	tests := []struct {
		name       string
		candidates []ScoredCandidate
		want       []string
	}{
		{
			name:       "no candidates",
			candidates: nil,
			want:       []string{},
		},
		{
			name: "one song per genre is returned by popularity",
			candidates: []ScoredCandidate{
				candidate("pop-song", "pop", 40),
				candidate("rock-song", "rock", 70),
			},
			want: []string{"rock-song", "pop-song"},
		},
		{
			name: "equal popularity keeps genre order",
			candidates: []ScoredCandidate{
				candidate("b", "rock", 50),
				candidate("a", "pop", 50),
			},
			want: []string{"b", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diversify(tt.candidates)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, trackNames(got))
		})
	}
}

func TestDiversify_QuotaCapsDominantGenre(t *testing.T) {
	var candidates []ScoredCandidate
	for i := 0; i < 30; i++ {
		candidates = append(candidates, candidate(fmt.Sprintf("pop-%02d", i), "pop", 100-i))
	}
	for i := 0; i < 3; i++ {
		candidates = append(candidates, candidate(fmt.Sprintf("jazz-%d", i), "jazz", i))
	}

	got := Diversify(candidates)
	require.Len(t, got, 13)

	perGenre := map[string]int{}
	for _, s := range got {
		perGenre[s.Genre]++
	}
	assert.Equal(t, 10, perGenre["pop"])
	assert.Equal(t, 3, perGenre["jazz"])
	assert.Equal(t, "pop-00", got[0].TrackName)
	assert.Equal(t, "jazz-0", got[len(got)-1].TrackName)
}

func TestDiversify_TruncatesToPlaylistSize(t *testing.T) {
	var candidates []ScoredCandidate
	for _, g := range []string{"pop", "rock", "rap"} {
		for i := 0; i < 10; i++ {
			candidates = append(candidates, candidate(fmt.Sprintf("%s-%d", g, i), g, i*10))
		}
	}

	got := Diversify(candidates)
	require.Len(t, got, PlaylistSize)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Popularity, got[i].Popularity)
	}
}

func TestBuildPlaylist(t *testing.T) {
	pop := referenceSong
	pop.TrackName, pop.Genre, pop.Popularity = "pop", "pop", 10
	rock := referenceSong
	rock.TrackName, rock.Genre, rock.Popularity = "rock", "rock", 20

	pref := Preference{Tempo: TempoSlow, SoundType: SoundMixed, Mood: MoodMelancholic, VocalPreference: VocalsInstrumental}
	got := BuildPlaylist([]SongRecord{pop, rock}, pref)
	assert.Equal(t, []string{"rock", "pop"}, trackNames(got))
}

func TestDiversifyProperties(t *testing.T) {
	p := gopter.NewProperties(nil)

	p.Property("output is bounded and genres come from the input", prop.ForAll(func(songs []SongRecord, pref Preference) bool {
		candidates := PlaylistCandidates(songs, pref)
		genres := map[string]struct{}{}
		for _, c := range candidates {
			genres[c.Song.Genre] = struct{}{}
		}

		got := Diversify(candidates)
		if len(got) > PlaylistSize || len(got) > len(candidates) {
			return false
		}
		for _, s := range got {
			if _, ok := genres[s.Genre]; !ok {
				return false
			}
		}
		return true
	}, genCatalog(), genPreference()))

	p.TestingRun(t)
}
