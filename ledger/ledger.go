package ledger

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

const defaultMaxAttempts = 3

// Ledger applies the campaign, streak and XP rules to progress records held
// in a Store. Each operation is one read-modify-write cycle; campaign and
// streak writes are compare-and-swap and the cycle is re-run when another
// writer got there first.
type Ledger struct {
	store       Store
	now         func() time.Time
	loc         *time.Location
	observer    Observer
	maxAttempts int
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLocation sets the time zone that decides calendar days and weeks.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

func WithObserver(o Observer) Option {
	return func(l *Ledger) {
		if o != nil {
			l.observer = o
		}
	}
}

func WithMaxAttempts(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.maxAttempts = n
		}
	}
}

func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:       store,
		now:         time.Now,
		loc:         time.UTC,
		observer:    nopObserver{},
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Now returns the ledger clock in the ledger time zone.
func (l *Ledger) Now() time.Time {
	return l.now().In(l.loc)
}

// Progress loads the record without changing it.
func (l *Ledger) Progress(ctx context.Context, userID string) (*Progress, error) {
	return l.store.Load(ctx, userID)
}

// EnsureCampaign returns the user's campaign for the current week, rebuilding
// and persisting a fresh one when the stored campaign is missing or stale.
func (l *Ledger) EnsureCampaign(ctx context.Context, userID string) (Campaign, error) {
	now := l.Now()

	var current Campaign
	err := l.cas(ctx, func() error {
		p, err := l.store.Load(ctx, userID)
		if err != nil {
			return err
		}

		if !p.EnsureCampaign(now) {
			current = *p.Campaign.Clone()
			return nil
		}

		if err := l.store.ReplaceCampaign(ctx, userID, *p.Campaign, p.CampaignRev); err != nil {
			return err
		}

		log.WithFields(log.Fields{"user_id": userID, "week_start": p.Campaign.WeekStart}).Debug("Campaign rebuilt")
		l.observer.CampaignRebuilt(userID)
		current = *p.Campaign
		return nil
	})
	if err != nil {
		return Campaign{}, err
	}
	return current, nil
}

// CompleteToday marks today's campaign slot. It returns true only for the
// first completion of the day, which is the signal to award the daily bonus.
func (l *Ledger) CompleteToday(ctx context.Context, userID string) (bool, error) {
	_, completed, err := l.CompleteTodayCampaign(ctx, userID)
	return completed, err
}

// CompleteTodayCampaign is CompleteToday that also returns the campaign as it
// stands after the mark.
func (l *Ledger) CompleteTodayCampaign(ctx context.Context, userID string) (Campaign, bool, error) {
	now := l.Now()
	slot := TodaySlot(now)

	var (
		current   Campaign
		completed bool
	)
	err := l.cas(ctx, func() error {
		completed = false

		p, err := l.store.Load(ctx, userID)
		if err != nil {
			return err
		}

		rebuilt, marked := p.MarkCampaignSlot(now)
		current = *p.Campaign.Clone()
		if !marked {
			return nil
		}

		if err := l.store.ReplaceCampaign(ctx, userID, *p.Campaign, p.CampaignRev); err != nil {
			return err
		}

		if rebuilt {
			l.observer.CampaignRebuilt(userID)
		}
		l.observer.DayCompleted(userID, slot)
		completed = true
		return nil
	})
	if err != nil {
		return Campaign{}, false, err
	}
	return current, completed, nil
}

// TouchStreak credits today's activity and returns the resulting streak.
// Repeated calls on the same day perform no write.
func (l *Ledger) TouchStreak(ctx context.Context, userID string) (Streak, error) {
	now := l.Now()

	var streak Streak
	err := l.cas(ctx, func() error {
		p, err := l.store.Load(ctx, userID)
		if err != nil {
			return err
		}

		change := p.RecordDailyActivity(now)
		streak = p.Streak
		if change == StreakUnchanged {
			return nil
		}

		if err := l.store.ReplaceStreak(ctx, userID, p.Streak, p.StreakRev); err != nil {
			return err
		}

		l.observer.StreakChanged(userID, change, p.Streak.Count)
		return nil
	})
	if err != nil {
		return Streak{}, err
	}
	return streak, nil
}

// AwardXP adds XP and category counts. Increments are atomic in the store so
// no revision check is involved.
func (l *Ledger) AwardXP(ctx context.Context, userID string, award Award) error {
	if err := award.Validate(); err != nil {
		return err
	}
	if award.XP == 0 && award.Count == 0 {
		return nil
	}

	if err := l.store.AddXP(ctx, userID, award); err != nil {
		return err
	}

	l.observer.XPAwarded(userID, award.Source, award.XP)
	return nil
}

// cas re-runs op while it fails with ErrConflict, up to maxAttempts times.
// Any other error is returned as-is.
func (l *Ledger) cas(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; attempt <= l.maxAttempts; attempt++ {
		err = op()
		if !errors.Is(err, ErrConflict) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.WithField("attempt", attempt).Debug("Progress record changed concurrently, reloading")
	}
	return err
}
