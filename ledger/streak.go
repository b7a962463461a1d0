package ledger

// StreakChange describes what a daily touch did to a streak.
type StreakChange int

const (
	StreakUnchanged StreakChange = iota
	StreakStarted
	StreakExtended
	StreakReset
)

func (c StreakChange) String() string {
	switch c {
	case StreakStarted:
		return "started"
	case StreakExtended:
		return "extended"
	case StreakReset:
		return "reset"
	default:
		return "unchanged"
	}
}

// Streak is the consecutive-day activity counter. An empty LastActive means
// the user has never been credited.
type Streak struct {
	Count      int    `json:"streak"`
	LastActive string `json:"lastActive,omitempty"`
}

// Touch credits activity on today. Same day is a no-op, the day after
// LastActive extends the streak, anything else (including a LastActive in the
// future) starts over at 1.
func (s Streak) Touch(today string) (Streak, StreakChange) {
	if s.LastActive == today {
		return s, StreakUnchanged
	}

	if s.LastActive == "" {
		return Streak{Count: 1, LastActive: today}, StreakStarted
	}

	if yesterday, err := PreviousDate(today); err == nil && s.LastActive == yesterday {
		return Streak{Count: s.Count + 1, LastActive: today}, StreakExtended
	}

	return Streak{Count: 1, LastActive: today}, StreakReset
}
