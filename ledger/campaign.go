package ledger

import "time"

type CampaignDay struct {
	Done bool `json:"done"`
}

// Campaign tracks the seven daily objectives of one calendar week.
// Days is keyed by slot (1 = Monday ... 7 = Sunday).
type Campaign struct {
	WeekStart string              `json:"weekStart"`
	Days      map[int]CampaignDay `json:"days"`
}

// NewCampaign builds a fresh campaign for the week containing now with every
// slot not done.
func NewCampaign(now time.Time) Campaign {
	days := make(map[int]CampaignDay, SlotCount)
	for slot := 1; slot <= SlotCount; slot++ {
		days[slot] = CampaignDay{Done: false}
	}

	return Campaign{
		WeekStart: CurrentWeekMonday(now),
		Days:      days,
	}
}

// IsCurrent reports whether c can be used as-is for the week containing now.
// A missing campaign, a stale week or a malformed day map all need a rebuild.
func (c *Campaign) IsCurrent(now time.Time) bool {
	if c == nil || c.WeekStart != CurrentWeekMonday(now) {
		return false
	}
	if len(c.Days) != SlotCount {
		return false
	}
	for slot := 1; slot <= SlotCount; slot++ {
		if _, ok := c.Days[slot]; !ok {
			return false
		}
	}
	return true
}

// Mark sets slot as done and reports whether anything changed.
func (c *Campaign) Mark(slot int) bool {
	if slot < 1 || slot > SlotCount {
		return false
	}
	if c.Days[slot].Done {
		return false
	}
	c.Days[slot] = CampaignDay{Done: true}
	return true
}

func (c *Campaign) IsDone(slot int) bool {
	if c == nil {
		return false
	}
	return c.Days[slot].Done
}

func (c *Campaign) CompletedDays() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, day := range c.Days {
		if day.Done {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so callers never share the day map.
func (c *Campaign) Clone() *Campaign {
	if c == nil {
		return nil
	}
	days := make(map[int]CampaignDay, len(c.Days))
	for slot, day := range c.Days {
		days[slot] = day
	}
	return &Campaign{WeekStart: c.WeekStart, Days: days}
}
