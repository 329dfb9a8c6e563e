package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/strivetrack/strivetrack-api/internal/constants"
	"github.com/strivetrack/strivetrack-api/internal/repository"
	"github.com/strivetrack/strivetrack-api/internal/utils"
)

var (
	ErrInvalidMetric = errors.New("metric must be weekly_points, achievements, streak or daily_challenges")
)

// streakWindowDays bounds how far back completion days are loaded for the
// streak metric. Longer streaks are reported as the window length.
const streakWindowDays = 366

// LeaderboardService ranks the requester among their accepted friends
type LeaderboardService struct {
	leaderboardRepo repository.LeaderboardRepository
	friendRepo      repository.FriendRepository
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(leaderboardRepo repository.LeaderboardRepository, friendRepo repository.FriendRepository) *LeaderboardService {
	return &LeaderboardService{
		leaderboardRepo: leaderboardRepo,
		friendRepo:      friendRepo,
	}
}

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Value         int    `json:"value"`
	Points        int    `json:"points"`
	IsCurrentUser bool   `json:"is_current_user"`
}

// Leaderboard is a ranked, friend-scoped view of one metric
type Leaderboard struct {
	Metric      string             `json:"metric"`
	Entries     []LeaderboardEntry `json:"entries"`
	CurrentUser *LeaderboardEntry  `json:"current_user"`
	Total       int                `json:"total"`
}

// Get ranks the requester and their accepted friends by metric
func (s *LeaderboardService) Get(ctx context.Context, userID, metric string) (*Leaderboard, error) {
	if metric == "" {
		metric = repository.MetricWeeklyPoints
	}
	switch metric {
	case repository.MetricWeeklyPoints, repository.MetricAchievements, repository.MetricStreak, repository.MetricDailyChallenges:
	default:
		return nil, ErrInvalidMetric
	}

	friendIDs, err := s.friendRepo.AcceptedFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}
	population := append([]string{userID}, friendIDs...)

	now := time.Now().UTC()
	rows, err := s.leaderboardRepo.Rows(ctx, metric, population, now.Format(constants.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	if metric == repository.MetricStreak {
		since := now.AddDate(0, 0, -streakWindowDays).Format(constants.DateLayout)
		days, err := s.leaderboardRepo.CompletionDaysByUser(ctx, population, since)
		if err != nil {
			return nil, fmt.Errorf("failed to load streaks: %w", err)
		}
		for i := range rows {
			rows[i].Value = utils.CurrentStreak(days[rows[i].UserID], now)
		}
	}

	board := Rank(rows, userID, constants.LeaderboardLimit)
	board.Metric = metric
	return board, nil
}

// Rank orders rows by value, then points, then account age, then ID, and
// numbers them 1..n with no shared ranks. Entries are capped at limit; the
// requester's own row is always returned in CurrentUser.
func Rank(rows []repository.LeaderboardRow, userID string, limit int) *Leaderboard {
	sorted := make([]repository.LeaderboardRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.UserID < b.UserID
	})

	board := &Leaderboard{
		Entries: make([]LeaderboardEntry, 0, min(len(sorted), limit)),
		Total:   len(sorted),
	}
	for i, row := range sorted {
		entry := LeaderboardEntry{
			Rank:          i + 1,
			UserID:        row.UserID,
			Name:          row.Name,
			Value:         row.Value,
			Points:        row.Points,
			IsCurrentUser: row.UserID == userID,
		}
		if entry.IsCurrentUser {
			self := entry
			board.CurrentUser = &self
		}
		if i < limit {
			board.Entries = append(board.Entries, entry)
		}
	}
	return board
}
