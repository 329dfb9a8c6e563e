package services

import (
	"time"

	"github.com/strivetrack/strivetrack-api/internal/repository"
	"github.com/strivetrack/strivetrack-api/internal/storage"
	"gorm.io/gorm"
)

// Services holds every service wired over one database and object store
type Services struct {
	Auth            *AuthService
	Habits          *HabitService
	Nutrition       *NutritionService
	Weights         *WeightService
	Goals           *GoalService
	Media           *MediaService
	Achievements    *AchievementService
	Leaderboard     *LeaderboardService
	Friends         *FriendService
	Competitions    *CompetitionService
	Challenges      *ChallengeService
	DailyChallenges *DailyChallengeService
	Admin           *AdminService
}

// NewServices builds the repositories over db and the services over them
func NewServices(db *gorm.DB, store storage.ObjectStore, adminEmail string, sessionTTL time.Duration) *Services {
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	weightRepo := repository.NewWeightRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	friendRepo := repository.NewFriendRepository(db)

	media := NewMediaService(mediaRepo, store)

	return &Services{
		Auth:            NewAuthService(userRepo, repository.NewSessionRepository(db), sessionTTL),
		Habits:          NewHabitService(habitRepo),
		Nutrition:       NewNutritionService(repository.NewNutritionRepository(db)),
		Weights:         NewWeightService(weightRepo, userRepo),
		Goals:           NewGoalService(repository.NewGoalRepository(db), weightRepo),
		Media:           media,
		Achievements:    NewAchievementService(repository.NewAchievementRepository(db), repository.NewStatsRepository(db), habitRepo, userRepo),
		Leaderboard:     NewLeaderboardService(repository.NewLeaderboardRepository(db), friendRepo),
		Friends:         NewFriendService(friendRepo, userRepo),
		Competitions:    NewCompetitionService(repository.NewCompetitionRepository(db)),
		Challenges:      NewChallengeService(repository.NewChallengeRepository(db), friendRepo, userRepo),
		DailyChallenges: NewDailyChallengeService(repository.NewDailyChallengeRepository(db)),
		Admin:           NewAdminService(adminEmail, userRepo, repository.NewAdminRepository(db), mediaRepo, media),
	}
}
