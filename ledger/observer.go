package ledger

// Observer receives ledger events after they were persisted.
type Observer interface {
	CampaignRebuilt(userID string)
	DayCompleted(userID string, slot int)
	StreakChanged(userID string, change StreakChange, count int)
	XPAwarded(userID string, source string, amount int)
}

type nopObserver struct{}

func (nopObserver) CampaignRebuilt(string) {}
func (nopObserver) DayCompleted(string, int) {}
func (nopObserver) StreakChanged(string, StreakChange, int) {}
func (nopObserver) XPAwarded(string, string, int) {}
