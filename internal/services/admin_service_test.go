package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/storage"
	"github.com/strivetrack/strivetrack-api/internal/utils"
)

func (e *testEnv) promote(t *testing.T, user *models.User) {
	t.Helper()
	require.NoError(t, e.db.Model(user).Update("role", models.RoleAdmin).Error)
	user.Role = models.RoleAdmin
}

func TestAdminService_IsAdminNeedsRoleAndEmail(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.register(t, testAdminEmail)
	impostor := env.register(t, "impostor@example.com")

	assert.False(t, env.admin.IsAdmin(admin), "email alone is not enough")

	env.promote(t, admin)
	env.promote(t, impostor)
	assert.True(t, env.admin.IsAdmin(admin))
	assert.False(t, env.admin.IsAdmin(impostor), "role alone is not enough")
	assert.False(t, env.admin.IsAdmin(nil))

	unconfigured := NewAdminService("", nil, nil, nil, nil)
	assert.False(t, unconfigured.IsAdmin(admin))

	upper := *admin
	upper.Email = strings.ToUpper(admin.Email)
	assert.True(t, env.admin.IsAdmin(&upper))
}

func TestAdminService_DeleteAdminIsForbidden(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.register(t, testAdminEmail)
	env.promote(t, admin)

	_, err := env.habits.CreateHabit(env.ctx, CreateHabitInput{UserID: admin.ID, Name: "Lift"})
	require.NoError(t, err)

	_, err = env.admin.DeleteUser(env.ctx, admin.ID)
	assert.ErrorIs(t, err, ErrCannotModerateAdmin)

	_, err = env.admin.SetUserStatus(env.ctx, admin.ID, models.UserStatusSuspended)
	assert.ErrorIs(t, err, ErrCannotModerateAdmin)

	reloaded := env.reloadUser(t, admin.ID)
	assert.Equal(t, models.UserStatusActive, reloaded.Status)
	habits, err := env.habits.ListHabits(env.ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, habits, 1)
}

func TestAdminService_DeleteUserCascades(t *testing.T) {
	store := storage.NewMemoryStore()
	env := setupTestEnvWithStore(t, store)
	target := env.register(t, "target@example.com")
	friend := env.register(t, "target-friend@example.com")
	env.befriend(t, target, friend)

	habit, err := env.habits.CreateHabit(env.ctx, CreateHabitInput{UserID: target.ID, Name: "Jog"})
	require.NoError(t, err)
	_, err = env.habits.ToggleCompletion(env.ctx, target.ID, habit.ID, "")
	require.NoError(t, err)
	_, err = env.weights.LogWeight(env.ctx, LogWeightInput{UserID: target.ID, Weight: 70, Unit: "kg"})
	require.NoError(t, err)
	_, err = env.daily.Complete(env.ctx, target.ID, "stretch")
	require.NoError(t, err)
	_, _, err = env.auth.Login(env.ctx, LoginInput{Email: target.Email, Password: "supersecret"})
	require.NoError(t, err)

	input := upload("before.png", "image/png", "png")
	input.UserID = target.ID
	media, err := env.media.Upload(env.ctx, input)
	require.NoError(t, err)

	result, err := env.admin.DeleteUser(env.ctx, target.ID)
	require.NoError(t, err)
	assert.Zero(t, result.FailedSteps)
	assert.Equal(t, "users", result.Steps[len(result.Steps)-1].Step)

	for _, model := range []interface{}{
		&models.User{}, &models.Habit{}, &models.HabitCompletion{}, &models.WeightLog{},
		&models.DailyChallengeCompletion{}, &models.Session{}, &models.MediaUpload{},
	} {
		var count int64
		require.NoError(t, env.db.Model(model).Where("user_id = ?", target.ID).Count(&count).Error)
		assert.Zero(t, count, "%T", model)
	}
	assert.False(t, store.Has(media.ObjectKey))

	friends, err := env.friends.ListFriends(env.ctx, friend.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	_, err = env.admin.DeleteUser(env.ctx, target.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminService_StatusAndNotes(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "moderated@example.com")

	_, err := env.admin.SetUserStatus(env.ctx, user.ID, "banned")
	assert.ErrorIs(t, err, ErrInvalidUserStatus)

	suspended, err := env.admin.SetUserStatus(env.ctx, user.ID, models.UserStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusSuspended, suspended.Status)
	assert.Equal(t, models.UserStatusSuspended, env.reloadUser(t, user.ID).Status)

	noted, err := env.admin.SetUserNotes(env.ctx, user.ID, "  repeated spam  ")
	require.NoError(t, err)
	assert.Equal(t, "repeated spam", noted.AdminNotes)

	users, total, err := env.admin.ListUsers(env.ctx, utils.NewPaginationParams(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, string(models.UserStatusSuspended), users[0].Status)
}

func TestAdminService_MissingColumnNeedsMigration(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "legacy@example.com")

	require.NoError(t, env.db.Migrator().DropColumn(&models.User{}, "admin_notes"))

	_, err := env.admin.SetUserNotes(env.ctx, user.ID, "note")
	assert.ErrorIs(t, err, ErrMigrationRequired)
}

func TestAdminService_ResetWeeklyPoints(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "weekly@example.com")

	_, err := env.daily.Complete(env.ctx, user.ID, "hydrate")
	require.NoError(t, err)

	n, err := env.admin.ResetWeeklyPoints(env.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	reloaded := env.reloadUser(t, user.ID)
	assert.Zero(t, reloaded.WeeklyPoints)
	assert.Equal(t, 10, reloaded.Points)
}
