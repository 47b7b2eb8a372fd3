package domain

const (
	// axisPoints is awarded for every matched axis.
	axisPoints = 2

	// QuizThreshold is the minimum score for the quiz result view (three of four axes).
	QuizThreshold = 6
	// QuizLimit caps the quiz result view.
	QuizLimit = 50

	// PlaylistThreshold is the minimum score for playlist candidates (two of four axes).
	PlaylistThreshold = 4
)

// ScoredCandidate is a song tagged with its match score.
type ScoredCandidate struct {
	Song  SongRecord `json:"song"`
	Score int        `json:"score"`
}

// Score rates a song against a preference. Each axis adds 0 or 2, so the
// result is one of 0, 2, 4, 6, 8.
func Score(s SongRecord, p Preference) int {
	score := 0
	if matchTempo(s, p.Tempo) {
		score += axisPoints
	}
	if matchSound(s, p.SoundType) {
		score += axisPoints
	}
	if matchMood(s, p.Mood) {
		score += axisPoints
	}
	if matchVocals(s, p.VocalPreference) {
		score += axisPoints
	}
	return score
}

func matchTempo(s SongRecord, t Tempo) bool {
	switch t {
	case TempoSlow:
		return s.BPM < 100
	case TempoMedium:
		return s.BPM >= 100 && s.BPM <= 120
	case TempoFast:
		return s.BPM > 120
	default:
		return false
	}
}

func matchSound(s SongRecord, st SoundType) bool {
	switch st {
	case SoundAcoustic:
		return s.Acousticness > 0.5
	case SoundElectronic:
		return s.Acousticness < 0.3
	case SoundMixed:
		return true
	default:
		return false
	}
}

func matchMood(s SongRecord, m Mood) bool {
	switch m {
	case MoodHappy:
		return s.Valence > 0.6
	case MoodMelancholic:
		return s.Valence < 0.4
	case MoodEnergetic:
		return s.Energy > 0.7
	default:
		return false
	}
}

func matchVocals(s SongRecord, v VocalPreference) bool {
	switch v {
	case VocalsVocal:
		return s.Instrumentalness < 0.2
	case VocalsInstrumental:
		return s.Instrumentalness > 0.5
	case VocalsBalanced:
		return true
	default:
		return false
	}
}

// Candidates returns, in catalog order, every song scoring at least threshold.
func Candidates(records []SongRecord, p Preference, threshold int) []ScoredCandidate {
	out := make([]ScoredCandidate, 0)
	for _, s := range records {
		if score := Score(s, p); score >= threshold {
			out = append(out, ScoredCandidate{Song: s, Score: score})
		}
	}
	return out
}

// QuizResults is the strict view shown right after the quiz: songs matching
// at least three axes, most popular first, at most QuizLimit.
func QuizResults(records []SongRecord, p Preference) []ScoredCandidate {
	out := Candidates(records, p, QuizThreshold)
	sortByPopularity(out, func(c ScoredCandidate) int { return c.Song.Popularity })
	if len(out) > QuizLimit {
		out = out[:QuizLimit]
	}
	return out
}

// PlaylistCandidates is the looser view fed to Diversify: songs matching at
// least two axes, in catalog order.
func PlaylistCandidates(records []SongRecord, p Preference) []ScoredCandidate {
	return Candidates(records, p, PlaylistThreshold)
}
