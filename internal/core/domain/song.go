package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// ErrNotFound is returned by repositories when the requested item does not exist.
var ErrNotFound = errors.New("domain: not found")

// RawRow is one row of the catalog as it arrives from a source, keyed by column name.
type RawRow map[string]string

// Mode is the modality of a track.
type Mode string

const (
	ModeMajor Mode = "Major"
	ModeMinor Mode = "Minor"
)

// Unknown is the fallback label for missing keys and genres.
const Unknown = "Unknown"

// SongRecord is one catalog entry. Records are built once by the normalizer
// and never mutated afterwards.
type SongRecord struct {
	ID           int     `json:"id"`
	TrackID      string  `json:"trackId,omitempty"`
	TrackName    string  `json:"trackName"`
	Artists      string  `json:"artists"`
	ReleasedDate Date    `json:"releasedDate"`
	Streams      int     `json:"streams"`
	Popularity   int     `json:"popularity"`
	BPM          float64 `json:"bpm"`
	Key          string  `json:"key"`
	Mode         Mode    `json:"mode"`

	Danceability     float64 `json:"danceability"`
	Valence          float64 `json:"valence"`
	Energy           float64 `json:"energy"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Speechiness      float64 `json:"speechiness"`

	Genre string `json:"genre"`
}

// Feature names one of the seven audio-feature metrics of a song.
type Feature string

const (
	FeatureDanceability     Feature = "danceability"
	FeatureEnergy           Feature = "energy"
	FeatureAcousticness     Feature = "acousticness"
	FeatureInstrumentalness Feature = "instrumentalness"
	FeatureLiveness         Feature = "liveness"
	FeatureSpeechiness      Feature = "speechiness"
	FeatureValence          Feature = "valence"
)

// Features lists every audio feature in display order.
var Features = []Feature{
	FeatureDanceability,
	FeatureEnergy,
	FeatureAcousticness,
	FeatureInstrumentalness,
	FeatureLiveness,
	FeatureSpeechiness,
	FeatureValence,
}

// Feature returns the value of the named audio feature, or 0 for an unknown name.
func (s SongRecord) Feature(f Feature) float64 {
	switch f {
	case FeatureDanceability:
		return s.Danceability
	case FeatureEnergy:
		return s.Energy
	case FeatureAcousticness:
		return s.Acousticness
	case FeatureInstrumentalness:
		return s.Instrumentalness
	case FeatureLiveness:
		return s.Liveness
	case FeatureSpeechiness:
		return s.Speechiness
	case FeatureValence:
		return s.Valence
	default:
		return 0
	}
}

// Date is a calendar date without a time of day. Album release dates in the
// catalog are often truncated to a year or a month, so Month and Day may be zero.
// Text that is not a date is kept verbatim in Raw with the calendar fields unset.
type Date struct {
	Year  int
	Month time.Month
	Day   int
	Raw   string
}

// ParseDate accepts "YYYY", "YYYY-MM" and "YYYY-MM-DD". Blank input yields the
// zero Date; any other text is carried in Raw.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	d, ok := parseCalendarDate(s)
	if !ok {
		return Date{Raw: s}
	}
	return d
}

func parseCalendarDate(s string) (Date, bool) {
	parts := strings.Split(s, "-")
	if len(parts) > 3 {
		return Date{}, false
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Date{}, false
		}
		nums[i] = n
	}

	d := Date{Year: nums[0]}
	if len(nums) > 1 {
		if nums[1] < 1 || nums[1] > 12 {
			return Date{}, false
		}
		d.Month = time.Month(nums[1])
	}
	if len(nums) > 2 {
		t := time.Date(d.Year, d.Month, nums[2], 0, 0, 0, 0, time.UTC)
		if t.Day() != nums[2] {
			return Date{}, false
		}
		d.Day = nums[2]
	}
	return d, true
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// IsCalendar reports whether the date was parsed into calendar fields.
func (d Date) IsCalendar() bool {
	return !d.IsZero() && d.Raw == ""
}

func (d Date) String() string {
	switch {
	case d.IsZero():
		return ""
	case d.Raw != "":
		return d.Raw
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
	}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("domain: decode date: %w", err)
	}
	if s == nil {
		*d = Date{}
		return nil
	}
	*d = ParseDate(*s)
	return nil
}
