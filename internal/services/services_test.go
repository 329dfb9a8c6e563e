package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/strivetrack/strivetrack-api/internal/database"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testAdminEmail = "admin@strivetrack.test"

type testEnv struct {
	ctx          context.Context
	db           *gorm.DB
	store        storage.ObjectStore
	auth         *AuthService
	habits       *HabitService
	nutrition    *NutritionService
	weights      *WeightService
	goals        *GoalService
	media        *MediaService
	achievements *AchievementService
	leaderboard  *LeaderboardService
	friends      *FriendService
	competitions *CompetitionService
	challenges   *ChallengeService
	daily        *DailyChallengeService
	admin        *AdminService
}

func setupTestEnv(t *testing.T) *testEnv {
	return setupTestEnvWithStore(t, storage.NewMemoryStore())
}

func setupTestEnvWithStore(t *testing.T, store storage.ObjectStore) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	svc := NewServices(db, store, testAdminEmail, time.Hour)

	return &testEnv{
		ctx:          context.Background(),
		db:           db,
		store:        store,
		auth:         svc.Auth,
		habits:       svc.Habits,
		nutrition:    svc.Nutrition,
		weights:      svc.Weights,
		goals:        svc.Goals,
		media:        svc.Media,
		achievements: svc.Achievements,
		leaderboard:  svc.Leaderboard,
		friends:      svc.Friends,
		competitions: svc.Competitions,
		challenges:   svc.Challenges,
		daily:        svc.DailyChallenges,
		admin:        svc.Admin,
	}
}

func (e *testEnv) register(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := e.auth.Register(e.ctx, RegisterInput{Email: email, Password: "supersecret"})
	require.NoError(t, err)
	return user
}

func (e *testEnv) reloadUser(t *testing.T, id string) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, e.db.First(&user, "id = ?", id).Error)
	return &user
}

func (e *testEnv) befriend(t *testing.T, a, b *models.User) {
	t.Helper()
	edge, err := e.friends.SendRequest(e.ctx, a.ID, b.Email)
	require.NoError(t, err)
	_, err = e.friends.AcceptRequest(e.ctx, b.ID, edge.ID)
	require.NoError(t, err)
}
