package ledger

import "time"

// XPPerLevel is the flat amount of XP each level costs.
const XPPerLevel = 100

// Progress is the in-memory aggregate of one user's progress record. The
// revisions are opaque to callers and only round-trip to the Store.
type Progress struct {
	UserID   string
	XP       int
	Streak   Streak
	Campaign *Campaign
	Stats    Stats

	CampaignRev int64
	StreakRev   int64
}

func NewProgress(userID string) *Progress {
	return &Progress{
		UserID: userID,
		Stats:  NewStats(),
	}
}

func (p *Progress) Level() int {
	return p.XP/XPPerLevel + 1
}

func (p *Progress) ApplyXP(a Award) error {
	if err := a.Validate(); err != nil {
		return err
	}
	p.XP += a.XP
	if a.Count > 0 {
		if p.Stats == nil {
			p.Stats = NewStats()
		}
		p.Stats[a.Category] += a.Count
	}
	return nil
}

// RecordDailyActivity touches the streak for now's calendar day.
func (p *Progress) RecordDailyActivity(now time.Time) StreakChange {
	next, change := p.Streak.Touch(DateString(now))
	p.Streak = next
	return change
}

// EnsureCampaign replaces a missing or stale campaign with a fresh one and
// reports whether it did.
func (p *Progress) EnsureCampaign(now time.Time) bool {
	if p.Campaign.IsCurrent(now) {
		return false
	}
	fresh := NewCampaign(now)
	p.Campaign = &fresh
	return true
}

// MarkCampaignSlot marks today's slot, rebuilding the campaign first when
// needed. marked is false when today was already completed.
func (p *Progress) MarkCampaignSlot(now time.Time) (rebuilt, marked bool) {
	rebuilt = p.EnsureCampaign(now)
	marked = p.Campaign.Mark(TodaySlot(now))
	return rebuilt, marked
}
