package ledger_test

import (
	"context"
	"sync"

	"github.com/cadetforge/arena_api/ledger"
)

// memStore is an in-memory Store. Each method is atomic on its own, so a
// read-modify-write cycle spanning Load and a Replace call can interleave
// with other callers exactly like it would against a real database.
type memStore struct {
	mu      sync.Mutex
	records map[string]*ledger.Progress

	loads  int
	writes int

	// failWith, when set, is returned by every call.
	failWith error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*ledger.Progress)}
}

func (s *memStore) register(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = ledger.NewProgress(userID)
}

func (s *memStore) put(p *ledger.Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[p.UserID] = copyProgress(p)
}

func (s *memStore) get(userID string) *ledger.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProgress(s.records[userID])
}

func (s *memStore) Load(_ context.Context, userID string) (*ledger.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.loads++
	p, ok := s.records[userID]
	if !ok {
		return nil, ledger.ErrUserNotFound
	}
	return copyProgress(p), nil
}

func (s *memStore) ReplaceCampaign(_ context.Context, userID string, campaign ledger.Campaign, expectedRev int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	p, ok := s.records[userID]
	if !ok {
		return ledger.ErrUserNotFound
	}
	if p.CampaignRev != expectedRev {
		return ledger.ErrConflict
	}
	s.writes++
	p.Campaign = campaign.Clone()
	p.CampaignRev++
	return nil
}

func (s *memStore) ReplaceStreak(_ context.Context, userID string, streak ledger.Streak, expectedRev int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	p, ok := s.records[userID]
	if !ok {
		return ledger.ErrUserNotFound
	}
	if p.StreakRev != expectedRev {
		return ledger.ErrConflict
	}
	s.writes++
	p.Streak = streak
	p.StreakRev++
	return nil
}

func (s *memStore) AddXP(_ context.Context, userID string, award ledger.Award) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	p, ok := s.records[userID]
	if !ok {
		return ledger.ErrUserNotFound
	}
	s.writes++
	return p.ApplyXP(award)
}

func copyProgress(p *ledger.Progress) *ledger.Progress {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Campaign = p.Campaign.Clone()
	cp.Stats = make(ledger.Stats, len(p.Stats))
	for k, v := range p.Stats {
		cp.Stats[k] = v
	}
	return &cp
}
