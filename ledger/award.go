package ledger

import "fmt"

// Award sources.
const (
	SourceDrill       = "drill"
	SourceMockResult  = "mock_result"
	SourceDailyBonus  = "daily_bonus"
	SourceMockAttempt = "mock_attempt"
)

// Award is an XP grant, optionally bumping one category counter by Count.
type Award struct {
	Source   string
	XP       int
	Category Category
	Count    int
}

// Validate keeps XP monotonically non-decreasing and category counters
// inside the closed set.
func (a Award) Validate() error {
	if a.XP < 0 || a.Count < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidAward)
	}
	if a.Count > 0 {
		if _, err := ParseCategory(string(a.Category)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAward, err)
		}
	}
	return nil
}
