package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/strivetrack/strivetrack-api/internal/achievements"
	"github.com/strivetrack/strivetrack-api/internal/logger"
	"github.com/strivetrack/strivetrack-api/internal/metrics"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/repository"
	"github.com/strivetrack/strivetrack-api/internal/utils"
	"go.uber.org/zap"
)

var (
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrAlreadyUnlocked     = errors.New("achievement already unlocked")
	ErrAchievementLocked   = errors.New("achievement requirements not met")
)

// AchievementService evaluates, lists and unlocks achievements
type AchievementService struct {
	achievementRepo repository.AchievementRepository
	statsRepo       repository.StatsRepository
	habitRepo       repository.HabitRepository
	userRepo        repository.UserRepository
	log             *zap.Logger
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(
	achievementRepo repository.AchievementRepository,
	statsRepo repository.StatsRepository,
	habitRepo repository.HabitRepository,
	userRepo repository.UserRepository,
) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		statsRepo:       statsRepo,
		habitRepo:       habitRepo,
		userRepo:        userRepo,
		log:             logger.Component("achievements"),
	}
}

// AchievementView is one catalog entry with the user's derived state
type AchievementView struct {
	models.Achievement
	State    achievements.State `json:"state"`
	Progress int                `json:"progress"`
	Target   int                `json:"target"`
}

// AchievementSummary totals shown next to the catalog
type AchievementSummary struct {
	TotalPoints       int `json:"total_points"`
	UnlockedCount     int `json:"unlocked_count"`
	TotalAchievements int `json:"total_achievements"`
}

// AchievementList is the catalog as seen by one user
type AchievementList struct {
	Achievements []AchievementView  `json:"achievements"`
	Stats        AchievementSummary `json:"stats"`
	UserStats    achievements.Stats `json:"user_stats"`
}

// UnlockResult describes a successful unlock and any combos it triggered
type UnlockResult struct {
	Achievement   models.Achievement   `json:"achievement"`
	PointsAwarded int                  `json:"points_awarded"`
	Combos        []models.Achievement `json:"combos"`
}

// Stats gathers the counters achievements are measured against
func (s *AchievementService) Stats(ctx context.Context, userID string) (achievements.Stats, error) {
	now := time.Now().UTC()
	counts, err := s.statsRepo.Counts(ctx, userID, utils.StartOfDay(now))
	if err != nil {
		return achievements.Stats{}, fmt.Errorf("failed to load stats: %w", err)
	}

	days, err := s.habitRepo.CompletionDays(ctx, userID)
	if err != nil {
		return achievements.Stats{}, fmt.Errorf("failed to load completion days: %w", err)
	}

	return achievements.Stats{
		HabitsCreated:    counts.HabitsCreated,
		HabitCompletions: counts.HabitCompletions,
		CurrentStreak:    utils.CurrentStreak(days, now),
		NutritionLogs:    counts.NutritionLogs,
		WeightLogs:       counts.WeightLogs,
		MediaUploads:     counts.MediaUploads,
		Friends:          counts.Friends,
		DailyChallenges:  counts.DailyChallenges,
		UnlockedToday:    counts.UnlockedToday,
	}, nil
}

// List returns the catalog with each entry's state for userID
func (s *AchievementService) List(ctx context.Context, userID string) (*AchievementList, error) {
	catalog, err := s.achievementRepo.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	held, err := s.achievementRepo.HeldIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked achievements: %w", err)
	}
	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "user")
	}

	views := make([]AchievementView, 0, len(catalog))
	for _, a := range catalog {
		progress, target := achievements.Progress(stats, achievements.RequirementOf(a))
		state := achievements.StateFor(stats, a, held[a.ID])
		if state == achievements.StateUnlocked {
			progress = target
		}
		views = append(views, AchievementView{
			Achievement: a,
			State:       state,
			Progress:    progress,
			Target:      target,
		})
	}

	return &AchievementList{
		Achievements: views,
		Stats: AchievementSummary{
			TotalPoints:       user.Points,
			UnlockedCount:     len(held),
			TotalAchievements: len(catalog),
		},
		UserStats: stats,
	}, nil
}

// Unlock grants an unlockable achievement and awards its points, then checks
// the combo thresholds. Combo achievements cannot be unlocked directly.
func (s *AchievementService) Unlock(ctx context.Context, userID, achievementID string) (*UnlockResult, error) {
	achievement, err := s.achievementRepo.FindByID(ctx, achievementID)
	if err != nil {
		return nil, lookupError(err, ErrAchievementNotFound, "achievement")
	}

	held, err := s.achievementRepo.HeldIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked achievements: %w", err)
	}
	if held[achievement.ID] {
		return nil, ErrAlreadyUnlocked
	}
	if achievement.IsCombo() {
		return nil, ErrAchievementLocked
	}

	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if achievements.Evaluate(stats, achievements.RequirementOf(*achievement)) != achievements.StateUnlockable {
		return nil, ErrAchievementLocked
	}

	granted, err := s.achievementRepo.Grant(ctx, userID, achievement, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to unlock achievement: %w", err)
	}
	if !granted {
		return nil, ErrAlreadyUnlocked
	}

	metrics.AchievementsUnlocked.WithLabelValues("direct").Inc()
	s.log.Info("achievement_unlocked",
		zap.String("user_id", userID),
		zap.String("achievement_id", achievement.ID),
		zap.Int("points", achievement.Points),
	)
	s.logActivity(ctx, userID, achievement)

	return &UnlockResult{
		Achievement:   *achievement,
		PointsAwarded: achievement.Points,
		Combos:        s.CheckCombos(ctx, userID),
	}, nil
}

// CheckCombos grants every combo whose threshold today's unlock count has
// reached. Already held combos are skipped silently and failures are only
// logged, so the caller's unlock always stands.
func (s *AchievementService) CheckCombos(ctx context.Context, userID string) []models.Achievement {
	granted := []models.Achievement{}

	count, err := s.achievementRepo.CountEarnedSince(ctx, userID, utils.StartOfDay(time.Now()))
	if err != nil {
		bestEffort(s.log, "combo_check", err, zap.String("user_id", userID))
		return granted
	}

	for _, id := range achievements.CombosReached(int(count)) {
		combo, err := s.achievementRepo.FindByID(ctx, id)
		if err != nil {
			bestEffort(s.log, "combo_check", err, zap.String("user_id", userID), zap.String("achievement_id", id))
			continue
		}

		ok, err := s.achievementRepo.Grant(ctx, userID, combo, time.Now().UTC())
		if err != nil {
			bestEffort(s.log, "combo_check", err, zap.String("user_id", userID), zap.String("achievement_id", id))
			continue
		}
		if !ok {
			continue
		}

		metrics.AchievementsUnlocked.WithLabelValues("combo").Inc()
		s.log.Info("combo_unlocked", zap.String("user_id", userID), zap.String("achievement_id", id))
		s.logActivity(ctx, userID, combo)
		granted = append(granted, *combo)
	}

	return granted
}

func (s *AchievementService) logActivity(ctx context.Context, userID string, a *models.Achievement) {
	err := s.achievementRepo.LogActivity(ctx, &models.ActivityLog{
		UserID:       userID,
		ActivityType: "achievement_unlocked",
		Description:  fmt.Sprintf("Unlocked %s", a.Name),
		Points:       a.Points,
	})
	if err != nil {
		bestEffort(s.log, "activity_log", err, zap.String("user_id", userID), zap.String("achievement_id", a.ID))
	}
}
