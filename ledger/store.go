package ledger

import "context"

// Store persists progress records. Implementations wrap storage failures
// with ErrPersistenceUnavailable, report missing records as ErrUserNotFound
// and reject stale compare-and-swap writes with ErrConflict.
type Store interface {
	Load(ctx context.Context, userID string) (*Progress, error)

	// ReplaceCampaign writes the whole campaign if the campaign revision still
	// equals expectedRev.
	ReplaceCampaign(ctx context.Context, userID string, campaign Campaign, expectedRev int64) error

	// ReplaceStreak writes streak and lastActive together if the streak
	// revision still equals expectedRev.
	ReplaceStreak(ctx context.Context, userID string, streak Streak, expectedRev int64) error

	// AddXP atomically increments xp and, when Count > 0, one category counter.
	AddXP(ctx context.Context, userID string, award Award) error
}
