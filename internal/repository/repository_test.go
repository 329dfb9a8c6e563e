package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strivetrack/strivetrack-api/internal/database"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash", Name: email}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestGrant_AwardsPointsOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAchievementRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "a@example.com")

	achievement, err := repo.FindByID(ctx, "first-habit")
	require.NoError(t, err)

	granted, err := repo.Grant(ctx, user.ID, achievement, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, granted)

	granted, err = repo.Grant(ctx, user.ID, achievement, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, granted)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, achievement.Points, reloaded.Points)
	assert.Equal(t, achievement.Points, reloaded.WeeklyPoints)
}

func TestCountEarnedSince_ExcludesCombos(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAchievementRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "b@example.com")
	now := time.Now().UTC()

	for _, id := range []string{"first-habit", "first-check-in", "combo-spree"} {
		a, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		_, err = repo.Grant(ctx, user.ID, a, now)
		require.NoError(t, err)
	}

	count, err := repo.CountEarnedSince(ctx, user.ID, utils.StartOfDay(now))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountEarnedSince(ctx, user.ID, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStatsCounts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "c@example.com")
	friend := createUser(t, db, "d@example.com")

	habit := &models.Habit{UserID: user.ID, Name: "Walk"}
	require.NoError(t, db.Create(habit).Error)
	require.NoError(t, db.Create(&models.HabitCompletion{HabitID: habit.ID, UserID: user.ID, CompletedOn: utils.Today()}).Error)
	require.NoError(t, db.Create(&models.NutritionLog{UserID: user.ID, FoodName: "Oats", MealType: models.MealBreakfast, LoggedOn: utils.Today()}).Error)
	require.NoError(t, db.Create(&models.FriendEdge{UserID: friend.ID, FriendID: user.ID, Status: models.FriendAccepted}).Error)

	counts, err := NewStatsRepository(db).Counts(ctx, user.ID, utils.StartOfDay(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, 1, counts.HabitsCreated)
	assert.Equal(t, 1, counts.HabitCompletions)
	assert.Equal(t, 1, counts.NutritionLogs)
	assert.Equal(t, 0, counts.WeightLogs)
	assert.Equal(t, 1, counts.Friends)
	assert.Equal(t, 0, counts.UnlockedToday)
}

func TestLeaderboardRows_Metrics(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewLeaderboardRepository(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	require.NoError(t, db.Model(alice).Update("weekly_points", 40).Error)

	rows, err := repo.Rows(ctx, MetricWeeklyPoints, []string{alice.ID, bob.ID}, utils.Today())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	values := map[string]int{}
	for _, row := range rows {
		values[row.UserID] = row.Value
	}
	assert.Equal(t, 40, values[alice.ID])
	assert.Equal(t, 0, values[bob.ID])

	require.NoError(t, db.Create(&models.DailyChallengeCompletion{UserID: bob.ID, DailyChallengeID: "hydrate", CompletedOn: utils.Today()}).Error)
	rows, err = repo.Rows(ctx, MetricDailyChallenges, []string{alice.ID, bob.ID}, utils.Today())
	require.NoError(t, err)
	for _, row := range rows {
		if row.UserID == bob.ID {
			assert.Equal(t, 1, row.Value)
		}
	}

	_, err = repo.Rows(ctx, "karma", []string{alice.ID}, utils.Today())
	assert.Error(t, err)
}

func TestGoalCreateActive_SingleActiveGoal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "e@example.com")

	first := &models.WeightGoal{UserID: user.ID, StartWeightKg: 90, TargetWeightKg: 80}
	require.NoError(t, repo.CreateActive(ctx, first))
	second := &models.WeightGoal{UserID: user.ID, StartWeightKg: 88, TargetWeightKg: 78}
	require.NoError(t, repo.CreateActive(ctx, second))

	goals, err := repo.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, goals, 2)

	active := 0
	for _, g := range goals {
		if g.IsActive {
			active++
			assert.Equal(t, second.ID, g.ID)
		}
	}
	assert.Equal(t, 1, active)
}

func TestListUsers_Counts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "f@example.com")
	require.NoError(t, db.Create(&models.Habit{UserID: user.ID, Name: "Read"}).Error)
	require.NoError(t, db.Create(&models.Habit{UserID: user.ID, Name: "Run"}).Error)
	require.NoError(t, db.Create(&models.MediaUpload{UserID: user.ID, ObjectKey: "k1", MediaType: models.MediaImage}).Error)

	users, total, err := NewAdminRepository(db).ListUsers(ctx, utils.NewPaginationParams(1, 50))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, 2, users[0].HabitCount)
	assert.Equal(t, 1, users[0].MediaCount)
	assert.Equal(t, 0, users[0].AchievementCount)
	assert.Equal(t, string(models.UserStatusActive), users[0].Status)
}

func TestChallengeRespond_EnforcesCapacity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChallengeRepository(db)
	ctx := context.Background()
	creator := createUser(t, db, "g@example.com")
	invitee := createUser(t, db, "h@example.com")

	challenge := &models.SocialChallenge{CreatorID: creator.ID, Title: "Plank", Privacy: models.PrivacyPrivate, MaxParticipants: 1}
	require.NoError(t, repo.Create(ctx, challenge))
	require.NoError(t, repo.Invite(ctx, &models.ChallengeInvitation{ChallengeID: challenge.ID, InviterID: creator.ID, InviteeID: invitee.ID}))

	err := repo.Respond(ctx, challenge.ID, invitee.ID, models.ParticipantAccepted, challenge.MaxParticipants)
	assert.ErrorIs(t, err, ErrChallengeFull)

	require.NoError(t, repo.Respond(ctx, challenge.ID, invitee.ID, models.ParticipantDeclined, challenge.MaxParticipants))
	err = repo.Respond(ctx, challenge.ID, invitee.ID, models.ParticipantAccepted, challenge.MaxParticipants)
	assert.ErrorIs(t, err, ErrParticipantState)
}
