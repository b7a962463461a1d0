package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cadetforge/arena_api/ledger"
)

func TestStreak_Touch(t *testing.T) {
	tests := []struct {
		name   string
		before ledger.Streak
		today  string
		after  ledger.Streak
		change ledger.StreakChange
	}{
		{
			name:   "first activity",
			before: ledger.Streak{},
			today:  "2026-10-14",
			after:  ledger.Streak{Count: 1, LastActive: "2026-10-14"},
			change: ledger.StreakStarted,
		},
		{
			name:   "same day",
			before: ledger.Streak{Count: 4, LastActive: "2026-10-14"},
			today:  "2026-10-14",
			after:  ledger.Streak{Count: 4, LastActive: "2026-10-14"},
			change: ledger.StreakUnchanged,
		},
		{
			name:   "consecutive day",
			before: ledger.Streak{Count: 4, LastActive: "2026-10-13"},
			today:  "2026-10-14",
			after:  ledger.Streak{Count: 5, LastActive: "2026-10-14"},
			change: ledger.StreakExtended,
		},
		{
			name:   "consecutive across year end",
			before: ledger.Streak{Count: 9, LastActive: "2025-12-31"},
			today:  "2026-01-01",
			after:  ledger.Streak{Count: 10, LastActive: "2026-01-01"},
			change: ledger.StreakExtended,
		},
		{
			name:   "missed a day",
			before: ledger.Streak{Count: 4, LastActive: "2026-10-12"},
			today:  "2026-10-14",
			after:  ledger.Streak{Count: 1, LastActive: "2026-10-14"},
			change: ledger.StreakReset,
		},
		{
			name:   "last active in the future",
			before: ledger.Streak{Count: 4, LastActive: "2026-10-20"},
			today:  "2026-10-14",
			after:  ledger.Streak{Count: 1, LastActive: "2026-10-14"},
			change: ledger.StreakReset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after, change := tt.before.Touch(tt.today)
			assert.Equal(t, tt.after, after)
			assert.Equal(t, tt.change, change)
		})
	}
}

func TestStreakChange_String(t *testing.T) {
	assert.Equal(t, "unchanged", ledger.StreakUnchanged.String())
	assert.Equal(t, "started", ledger.StreakStarted.String())
	assert.Equal(t, "extended", ledger.StreakExtended.String())
	assert.Equal(t, "reset", ledger.StreakReset.String())
}
