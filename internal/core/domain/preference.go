package domain

import "fmt"

// Tempo is the answer to the tempo question.
type Tempo string

const (
	TempoSlow   Tempo = "slow"
	TempoMedium Tempo = "medium"
	TempoFast   Tempo = "fast"
)

// SoundType is the answer to the sound characteristics question.
type SoundType string

const (
	SoundAcoustic   SoundType = "acoustic"
	SoundElectronic SoundType = "electronic"
	SoundMixed      SoundType = "mixed"
)

// Mood is the answer to the mood question.
type Mood string

const (
	MoodHappy       Mood = "happy"
	MoodMelancholic Mood = "melancholic"
	MoodEnergetic   Mood = "energetic"
)

// VocalPreference is the answer to the vocals question.
type VocalPreference string

const (
	VocalsVocal        VocalPreference = "vocal"
	VocalsInstrumental VocalPreference = "instrumental"
	VocalsBalanced     VocalPreference = "balanced"
)

// Preference is a completed quiz: one answer per axis. Values outside the
// enumerations are representable; they simply never match when scoring.
type Preference struct {
	Tempo           Tempo           `json:"tempo"`
	SoundType       SoundType       `json:"soundType"`
	Mood            Mood            `json:"mood"`
	VocalPreference VocalPreference `json:"vocalPreference"`
}

// InvalidAnswerError reports a quiz answer outside its axis options.
type InvalidAnswerError struct {
	Axis  string
	Value string
}

func (e InvalidAnswerError) Error() string {
	return fmt.Sprintf("domain: invalid %s answer %q", e.Axis, e.Value)
}

// Validate checks that every axis holds one of its enumerated options.
// Scoring does not require it.
func (p Preference) Validate() error {
	switch p.Tempo {
	case TempoSlow, TempoMedium, TempoFast:
	default:
		return InvalidAnswerError{Axis: "tempo", Value: string(p.Tempo)}
	}
	switch p.SoundType {
	case SoundAcoustic, SoundElectronic, SoundMixed:
	default:
		return InvalidAnswerError{Axis: "soundType", Value: string(p.SoundType)}
	}
	switch p.Mood {
	case MoodHappy, MoodMelancholic, MoodEnergetic:
	default:
		return InvalidAnswerError{Axis: "mood", Value: string(p.Mood)}
	}
	switch p.VocalPreference {
	case VocalsVocal, VocalsInstrumental, VocalsBalanced:
	default:
		return InvalidAnswerError{Axis: "vocalPreference", Value: string(p.VocalPreference)}
	}
	return nil
}

// QuizOption is one selectable answer.
type QuizOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// QuizQuestion is one question of the preference quiz.
type QuizQuestion struct {
	ID       int          `json:"id"`
	Axis     string       `json:"axis"`
	Question string       `json:"question"`
	Options  []QuizOption `json:"options"`
}

// Quiz returns the four preference questions in the order they are asked.
func Quiz() []QuizQuestion {
	return []QuizQuestion{
		{
			ID:       1,
			Axis:     "tempo",
			Question: "What's your preferred music tempo?",
			Options: []QuizOption{
				{Value: string(TempoSlow), Label: "Slow and Relaxing"},
				{Value: string(TempoMedium), Label: "Moderate and Balanced"},
				{Value: string(TempoFast), Label: "Fast and Energetic"},
			},
		},
		{
			ID:       2,
			Axis:     "soundType",
			Question: "Which sound characteristics do you prefer?",
			Options: []QuizOption{
				{Value: string(SoundAcoustic), Label: "Acoustic and Natural"},
				{Value: string(SoundElectronic), Label: "Electronic and Synthetic"},
				{Value: string(SoundMixed), Label: "Mix of Both"},
			},
		},
		{
			ID:       3,
			Axis:     "mood",
			Question: "What mood do you usually seek in music?",
			Options: []QuizOption{
				{Value: string(MoodHappy), Label: "Upbeat and Happy"},
				{Value: string(MoodMelancholic), Label: "Emotional and Deep"},
				{Value: string(MoodEnergetic), Label: "Energetic and Powerful"},
			},
		},
		{
			ID:       4,
			Axis:     "vocalPreference",
			Question: "Do you prefer vocals or instrumental music?",
			Options: []QuizOption{
				{Value: string(VocalsVocal), Label: "Strong Vocal Presence"},
				{Value: string(VocalsInstrumental), Label: "Mostly Instrumental"},
				{Value: string(VocalsBalanced), Label: "Balance of Both"},
			},
		},
	}
}
