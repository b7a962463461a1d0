package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cadetforge/arena_api/ledger"
)

func TestNewCampaign(t *testing.T) {
	c := ledger.NewCampaign(at(t, "2026-10-14 08:00", time.UTC))

	assert.Equal(t, "2026-10-12", c.WeekStart)
	assert.Len(t, c.Days, ledger.SlotCount)
	for slot := 1; slot <= ledger.SlotCount; slot++ {
		assert.False(t, c.Days[slot].Done, "slot %d", slot)
	}
	assert.Zero(t, c.CompletedDays())
}

func TestCampaign_IsCurrent(t *testing.T) {
	wed := at(t, "2026-10-14 08:00", time.UTC)
	nextMon := at(t, "2026-10-19 00:00", time.UTC)

	var missing *ledger.Campaign
	assert.False(t, missing.IsCurrent(wed))

	c := ledger.NewCampaign(wed)
	assert.True(t, c.IsCurrent(wed))
	assert.True(t, c.IsCurrent(at(t, "2026-10-18 23:59", time.UTC)))
	assert.False(t, c.IsCurrent(nextMon))

	malformed := c.Clone()
	delete(malformed.Days, 4)
	assert.False(t, malformed.IsCurrent(wed))

	extra := c.Clone()
	extra.Days[8] = ledger.CampaignDay{}
	assert.False(t, extra.IsCurrent(wed))
}

func TestCampaign_Mark(t *testing.T) {
	c := ledger.NewCampaign(at(t, "2026-10-14 08:00", time.UTC))

	assert.True(t, c.Mark(3))
	assert.False(t, c.Mark(3))
	assert.True(t, c.IsDone(3))
	assert.False(t, c.IsDone(2))

	assert.False(t, c.Mark(0))
	assert.False(t, c.Mark(8))
	assert.Equal(t, 1, c.CompletedDays())
}

func TestCampaign_CloneIsDeep(t *testing.T) {
	c := ledger.NewCampaign(at(t, "2026-10-14 08:00", time.UTC))
	cp := c.Clone()

	cp.Mark(1)

	assert.False(t, c.IsDone(1))
	assert.True(t, cp.IsDone(1))
}
