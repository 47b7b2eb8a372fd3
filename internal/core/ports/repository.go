package ports

import (
	"context"

	"github.com/nsarvani/Statify/internal/core/domain"
)

// PreferenceRepository keeps completed quizzes between requests.
type PreferenceRepository interface {
	SavePreference(ctx context.Context, p domain.Preference) (string, error)
	GetPreference(ctx context.Context, id string) (domain.Preference, error)
}
