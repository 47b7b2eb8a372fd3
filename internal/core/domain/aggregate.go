package domain

import (
	"bytes"
	"iter"
	"math"
	"slices"

	"github.com/elliotchance/orderedmap/v3"
	"github.com/goccy/go-json"
)

// MaxTopArtists caps the artist rollup.
const MaxTopArtists = 20

// AudioFeatureAverages holds the arithmetic mean of every audio feature over
// a catalog. For an empty catalog every field is NaN; callers that render the
// values must check IsDefined first.
type AudioFeatureAverages struct {
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Speechiness      float64 `json:"speechiness"`
	Valence          float64 `json:"valence"`
}

// Get returns the average for the named feature.
func (a AudioFeatureAverages) Get(f Feature) float64 {
	switch f {
	case FeatureDanceability:
		return a.Danceability
	case FeatureEnergy:
		return a.Energy
	case FeatureAcousticness:
		return a.Acousticness
	case FeatureInstrumentalness:
		return a.Instrumentalness
	case FeatureLiveness:
		return a.Liveness
	case FeatureSpeechiness:
		return a.Speechiness
	case FeatureValence:
		return a.Valence
	default:
		return math.NaN()
	}
}

// IsDefined reports whether the averages were computed over at least one record.
func (a AudioFeatureAverages) IsDefined() bool {
	return !math.IsNaN(a.Danceability)
}

// ArtistStats is the rollup for one distinct artists label.
//
// TotalStreams is the highest single-track streams value of the artist, not
// a sum. Consumers already depend on that meaning.
type ArtistStats struct {
	Name            string   `json:"name"`
	TopTrack        string   `json:"topTrack"`
	TotalStreams    int      `json:"totalStreams"`
	Genres          []string `json:"genres"`
	AvgDanceability float64  `json:"avgDanceability"`
	AvgEnergy       float64  `json:"avgEnergy"`
}

// GenreDistribution maps genre to its rounded percentage of the catalog,
// iterated in descending order of raw count.
type GenreDistribution struct {
	m *orderedmap.OrderedMap[string, int]
}

// Len returns the number of genres.
func (g GenreDistribution) Len() int {
	if g.m == nil {
		return 0
	}
	return g.m.Len()
}

// Get returns the percentage for a genre.
func (g GenreDistribution) Get(genre string) (int, bool) {
	if g.m == nil {
		return 0, false
	}
	return g.m.Get(genre)
}

// All yields genre and percentage pairs in distribution order.
func (g GenreDistribution) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		if g.m == nil {
			return
		}
		for genre, pct := range g.m.AllFromFront() {
			if !yield(genre, pct) {
				return
			}
		}
	}
}

// Genres returns the genres in distribution order.
func (g GenreDistribution) Genres() []string {
	out := make([]string, 0, g.Len())
	for genre := range g.All() {
		out = append(out, genre)
	}
	return out
}

// MarshalJSON encodes the distribution as an object whose keys keep the
// distribution order.
func (g GenreDistribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for genre, pct := range g.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(genre)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(pct)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Aggregation is the statistics bundle computed over one catalog.
type Aggregation struct {
	TopSongs      []SongRecord         `json:"topSongs"`
	AudioFeatures AudioFeatureAverages `json:"audioFeatures"`
	TopArtists    []ArtistStats        `json:"topArtists"`
	PopularGenres GenreDistribution    `json:"popularGenres"`
}

// Aggregate computes every rollup over records. It keeps no state between calls.
func Aggregate(records []SongRecord) Aggregation {
	return Aggregation{
		TopSongs:      records,
		AudioFeatures: AverageFeatures(records),
		TopArtists:    TopArtists(records),
		PopularGenres: GenreDistributionOf(records),
	}
}

// AverageFeatures returns the mean of each audio feature. An empty input
// produces NaN for every feature.
func AverageFeatures(records []SongRecord) AudioFeatureAverages {
	avg := func(f Feature) float64 {
		return mean(records, func(s SongRecord) float64 { return s.Feature(f) })
	}
	return AudioFeatureAverages{
		Danceability:     avg(FeatureDanceability),
		Energy:           avg(FeatureEnergy),
		Acousticness:     avg(FeatureAcousticness),
		Instrumentalness: avg(FeatureInstrumentalness),
		Liveness:         avg(FeatureLiveness),
		Speechiness:      avg(FeatureSpeechiness),
		Valence:          avg(FeatureValence),
	}
}

type artistAccumulator struct {
	topTrack     string
	maxStreams   int
	genres       []string
	seenGenres   map[string]struct{}
	danceability []float64
	energy       []float64
}

// TopArtists builds per-artist stats in one pass over records and returns the
// MaxTopArtists artists with the highest single-track streams. Ties keep
// catalog order.
func TopArtists(records []SongRecord) []ArtistStats {
	acc := orderedmap.NewOrderedMap[string, *artistAccumulator]()
	for _, s := range records {
		a, ok := acc.Get(s.Artists)
		if !ok {
			a = &artistAccumulator{
				topTrack:   s.TrackName,
				maxStreams: s.Streams,
				seenGenres: make(map[string]struct{}),
			}
			acc.Set(s.Artists, a)
		} else if s.Streams > a.maxStreams {
			a.maxStreams = s.Streams
			a.topTrack = s.TrackName
		}
		if _, seen := a.seenGenres[s.Genre]; !seen {
			a.seenGenres[s.Genre] = struct{}{}
			a.genres = append(a.genres, s.Genre)
		}
		a.danceability = append(a.danceability, s.Danceability)
		a.energy = append(a.energy, s.Energy)
	}

	stats := make([]ArtistStats, 0, acc.Len())
	for name, a := range acc.AllFromFront() {
		stats = append(stats, ArtistStats{
			Name:            name,
			TopTrack:        a.topTrack,
			TotalStreams:    a.maxStreams,
			Genres:          a.genres,
			AvgDanceability: meanOf(a.danceability),
			AvgEnergy:       meanOf(a.energy),
		})
	}

	slices.SortStableFunc(stats, func(a, b ArtistStats) int {
		return b.TotalStreams - a.TotalStreams
	})
	if len(stats) > MaxTopArtists {
		stats = stats[:MaxTopArtists]
	}
	return stats
}

// GenreDistributionOf counts records per genre and converts the counts to
// independently rounded percentages, so the values need not sum to 100.
func GenreDistributionOf(records []SongRecord) GenreDistribution {
	counts := orderedmap.NewOrderedMap[string, int]()
	for _, s := range records {
		n, _ := counts.Get(s.Genre)
		counts.Set(s.Genre, n+1)
	}

	type genreCount struct {
		genre string
		count int
	}
	ordered := make([]genreCount, 0, counts.Len())
	for genre, n := range counts.AllFromFront() {
		ordered = append(ordered, genreCount{genre: genre, count: n})
	}
	slices.SortStableFunc(ordered, func(a, b genreCount) int {
		return b.count - a.count
	})

	dist := orderedmap.NewOrderedMap[string, int]()
	total := float64(len(records))
	for _, gc := range ordered {
		dist.Set(gc.genre, int(math.Round(float64(gc.count)/total*100)))
	}
	return GenreDistribution{m: dist}
}

// TopByPopularity returns up to n records ordered by popularity, highest first.
func TopByPopularity(records []SongRecord, n int) []SongRecord {
	out := slices.Clone(records)
	sortByPopularity(out, func(s SongRecord) int { return s.Popularity })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func sortByPopularity[T any](items []T, popularity func(T) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		return popularity(b) - popularity(a)
	})
}

func mean(records []SongRecord, value func(SongRecord) float64) float64 {
	var sum float64
	for _, s := range records {
		sum += value(s)
	}
	return sum / float64(len(records))
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
