package ledger

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format shared by campaign weeks and streak days.
const DateLayout = "2006-01-02"

// SlotCount is the number of daily objectives in a campaign week.
const SlotCount = 7

// DateString formats the calendar date of now in now's location.
func DateString(now time.Time) string {
	return now.Format(DateLayout)
}

// CurrentWeekMonday returns the Monday starting the Monday to Sunday week that
// contains now. Every instant of the same week maps to the same string.
func CurrentWeekMonday(now time.Time) string {
	offset := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		offset = 6
	}

	y, m, d := now.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location()).Format(DateLayout)
}

// TodaySlot maps now's weekday to a Monday-first slot: Monday is 1, Sunday is 7.
func TodaySlot(now time.Time) int {
	if now.Weekday() == time.Sunday {
		return SlotCount
	}
	return int(now.Weekday())
}

// PreviousDate returns the calendar day before date.
func PreviousDate(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.AddDate(0, 0, -1).Format(DateLayout), nil
}
