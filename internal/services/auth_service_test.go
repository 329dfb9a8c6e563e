package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strivetrack/strivetrack-api/internal/models"
)

func TestAuthService_RegisterValidation(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.auth.Register(env.ctx, RegisterInput{Email: "short@example.com", Password: "123"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	user := env.register(t, "Dup@Example.com")
	assert.Equal(t, "dup@example.com", user.Email)
	assert.Equal(t, "dup", user.Name)
	assert.Equal(t, models.RoleUser, user.Role)

	_, err = env.auth.Register(env.ctx, RegisterInput{Email: "dup@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_SessionResolvesUntilExpiry(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "session@example.com")

	_, _, err := env.auth.Login(env.ctx, LoginInput{Email: "session@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, session, err := env.auth.Login(env.ctx, LoginInput{Email: "session@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Len(t, session.Token, 64)

	for i := 0; i < 3; i++ {
		resolved, err := env.auth.ValidateSession(env.ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	}

	require.NoError(t, env.db.Model(&models.Session{}).
		Where("token = ?", session.Token).
		Update("expires_at", time.Now().UTC().Add(-time.Minute)).Error)

	for i := 0; i < 3; i++ {
		_, err := env.auth.ValidateSession(env.ctx, session.Token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	}

	pruned, err := env.auth.PruneSessions(env.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pruned)
}

func TestAuthService_UnknownAndRevokedTokens(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "revoke@example.com")

	_, err := env.auth.ValidateSession(env.ctx, "")
	assert.ErrorIs(t, err, ErrInvalidSession)
	_, err = env.auth.ValidateSession(env.ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, session, err := env.auth.Login(env.ctx, LoginInput{Email: "revoke@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.NoError(t, env.auth.Logout(env.ctx, session.Token))

	_, err = env.auth.ValidateSession(env.ctx, session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestAuthService_SuspendedUser(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "suspended@example.com")

	_, session, err := env.auth.Login(env.ctx, LoginInput{Email: user.Email, Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, env.db.Model(user).Update("status", models.UserStatusSuspended).Error)

	_, err = env.auth.ValidateSession(env.ctx, session.Token)
	assert.ErrorIs(t, err, ErrAccountSuspended)

	_, _, err = env.auth.Login(env.ctx, LoginInput{Email: user.Email, Password: "supersecret"})
	assert.ErrorIs(t, err, ErrAccountSuspended)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "profile@example.com")

	height := 180.0
	name := "Pat"
	updated, err := env.auth.UpdateProfile(env.ctx, user.ID, UpdateProfileInput{Name: &name, HeightCM: &height})
	require.NoError(t, err)
	assert.Equal(t, "Pat", updated.Name)
	require.NotNil(t, updated.HeightCM)
	assert.Equal(t, 180.0, *updated.HeightCM)

	bad := 10.0
	_, err = env.auth.UpdateProfile(env.ctx, user.ID, UpdateProfileInput{HeightCM: &bad})
	assert.ErrorIs(t, err, ErrInvalidHeight)
}
