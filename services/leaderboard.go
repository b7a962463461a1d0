package services

import (
	stdctx "context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/model"
	"github.com/cadetforge/arena_api/services/repositories"
	"github.com/cadetforge/arena_api/shared"
)

const leaderboardCacheTTL = 60 * time.Second

type scoreBucket struct {
	score    int
	total    int
	attempts int
}

func (b scoreBucket) avg() int {
	if b.total <= 0 {
		return 0
	}
	return int(math.Round(float64(b.score) / float64(b.total) * 100))
}

// RankAttempts groups attempts by user into leaderboard rows, best average
// first. Attempts without a user are skipped.
func RankAttempts(attempts []model.MockAttempt) []dto.LeaderboardEntry {
	buckets := make(map[string]*scoreBucket)
	for _, a := range attempts {
		if a.UserID == "" {
			continue
		}
		b, ok := buckets[a.UserID]
		if !ok {
			b = &scoreBucket{}
			buckets[a.UserID] = b
		}
		b.score += a.Score
		b.total += a.Total
		b.attempts++
	}

	entries := make([]dto.LeaderboardEntry, 0, len(buckets))
	for userID, b := range buckets {
		entries = append(entries, dto.LeaderboardEntry{
			UserID:   userID,
			Avg:      b.avg(),
			Attempts: b.attempts,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Avg != entries[j].Avg {
			return entries[i].Avg > entries[j].Avg
		}
		if entries[i].Attempts != entries[j].Attempts {
			return entries[i].Attempts > entries[j].Attempts
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// AnalyzeCompanies buckets completed attempts by company.
func AnalyzeCompanies(attempts []model.MockAttempt) []dto.CompanyAnalytics {
	buckets := make(map[string]*scoreBucket)
	for _, a := range attempts {
		if a.Status != shared.AttemptStatusCompleted {
			continue
		}
		b, ok := buckets[a.Company]
		if !ok {
			b = &scoreBucket{}
			buckets[a.Company] = b
		}
		b.score += a.Score
		b.total += a.Total
		b.attempts++
	}

	rows := make([]dto.CompanyAnalytics, 0, len(buckets))
	for company, b := range buckets {
		rows = append(rows, dto.CompanyAnalytics{
			Company:  company,
			Avg:      b.avg(),
			Attempts: b.attempts,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Company < rows[j].Company })
	return rows
}

type boardCache interface {
	GetJSON(ctx stdctx.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx stdctx.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx stdctx.Context, keys ...string) error
}

const globalBoardKey = "leaderboard:global"

func companyBoardKey(company string) string {
	return "leaderboard:company:" + strings.ToLower(company)
}

type LeaderboardService struct {
	context.DefaultService

	cache    boardCache
	attempts *repositories.AttemptRepository
	users    *repositories.UserRepository
}

const LEADERBOARD_SVC = "leaderboard_svc"

func (svc LeaderboardService) Id() string {
	return LEADERBOARD_SVC
}

func (svc *LeaderboardService) Start() error {
	db := svc.Service(DATABASE_SVC).(*DatabaseService).Db()
	svc.cache = svc.Service(REDIS_SVC).(*RedisService)
	svc.attempts = repositories.NewAttemptRepository(db)
	svc.users = repositories.NewUserRepository(db)
	return nil
}

// NewLeaderboardService wires the service without the container. A nil cache
// computes every board.
func NewLeaderboardService(cache boardCache, attempts *repositories.AttemptRepository, users *repositories.UserRepository) *LeaderboardService {
	return &LeaderboardService{cache: cache, attempts: attempts, users: users}
}

func (svc *LeaderboardService) GetGlobalLeaderboard(ctx stdctx.Context, limit int, currentUserID string) (*dto.LeaderboardResponse, error) {
	entries, err := svc.cached(ctx, globalBoardKey, func() ([]dto.LeaderboardEntry, error) {
		attempts, err := svc.attempts.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return RankAttempts(attempts), nil
	})
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to build leaderboard")
	}

	return svc.buildResponse(ctx, "", entries, limit, currentUserID), nil
}

// GetCompanyLeaderboard ranks attempts for one company. An empty company
// yields an empty board.
func (svc *LeaderboardService) GetCompanyLeaderboard(ctx stdctx.Context, company string, limit int, currentUserID string) (*dto.LeaderboardResponse, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return &dto.LeaderboardResponse{Entries: []dto.LeaderboardEntry{}}, nil
	}

	entries, err := svc.cached(ctx, companyBoardKey(company), func() ([]dto.LeaderboardEntry, error) {
		attempts, err := svc.attempts.ListByCompany(ctx, company)
		if err != nil {
			return nil, err
		}
		return RankAttempts(attempts), nil
	})
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to build leaderboard")
	}

	return svc.buildResponse(ctx, company, entries, limit, currentUserID), nil
}

func (svc *LeaderboardService) GetCompanyAnalytics(ctx stdctx.Context) ([]dto.CompanyAnalytics, error) {
	attempts, err := svc.attempts.ListAll(ctx)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load attempts")
	}
	return AnalyzeCompanies(attempts), nil
}

// Invalidate drops cached boards touched by a new attempt.
func (svc *LeaderboardService) Invalidate(ctx stdctx.Context, company string) {
	if svc.cache == nil {
		return
	}
	keys := []string{globalBoardKey}
	if company = strings.TrimSpace(company); company != "" {
		keys = append(keys, companyBoardKey(company))
	}
	if err := svc.cache.Delete(ctx, keys...); err != nil {
		log.WithError(err).Debug("Failed to invalidate leaderboard cache")
	}
}

// cached serves entries from redis when present. Redis failures fall back to
// computing the board.
func (svc *LeaderboardService) cached(ctx stdctx.Context, key string, compute func() ([]dto.LeaderboardEntry, error)) ([]dto.LeaderboardEntry, error) {
	if svc.cache != nil {
		var entries []dto.LeaderboardEntry
		found, err := svc.cache.GetJSON(ctx, key, &entries)
		if err != nil {
			log.WithError(err).WithField("key", key).Debug("Leaderboard cache unavailable")
		} else if found {
			return entries, nil
		}
	}

	entries, err := compute()
	if err != nil {
		return nil, err
	}

	if svc.cache != nil {
		if err := svc.cache.SetJSON(ctx, key, entries, leaderboardCacheTTL); err != nil {
			log.WithError(err).WithField("key", key).Debug("Failed to cache leaderboard")
		}
	}
	return entries, nil
}

func (svc *LeaderboardService) buildResponse(ctx stdctx.Context, company string, entries []dto.LeaderboardEntry, limit int, currentUserID string) *dto.LeaderboardResponse {
	resp := &dto.LeaderboardResponse{Company: company}

	for i := range entries {
		if entries[i].UserID == currentUserID {
			current := entries[i]
			resp.CurrentUser = &current
			break
		}
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	resp.Entries = append([]dto.LeaderboardEntry(nil), entries...)

	ids := make([]string, 0, len(resp.Entries)+1)
	for _, e := range resp.Entries {
		ids = append(ids, e.UserID)
	}
	if resp.CurrentUser != nil {
		ids = append(ids, resp.CurrentUser.UserID)
	}

	names, err := svc.users.GetDisplayNames(ctx, ids)
	if err != nil {
		log.WithError(err).Warn("Failed to load leaderboard display names")
		names = map[string]string{}
	}
	for i := range resp.Entries {
		resp.Entries[i].Name = displayName(names, resp.Entries[i].UserID)
	}
	if resp.CurrentUser != nil {
		resp.CurrentUser.Name = displayName(names, resp.CurrentUser.UserID)
	}
	return resp
}

func displayName(names map[string]string, userID string) string {
	if name := names[userID]; name != "" {
		return name
	}
	return shared.DefaultDisplayName
}
