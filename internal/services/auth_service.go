package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/strivetrack/strivetrack-api/internal/constants"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/repository"
	"github.com/strivetrack/strivetrack-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrInvalidSession       = errors.New("invalid session")
	ErrAccountSuspended     = errors.New("account suspended")
	ErrInvalidHeight        = errors.New("height_cm must be between 50 and 300")
	ErrNameRequired         = errors.New("name cannot be empty")
)

// AuthService handles registration, login and session resolution.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	sessionTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = constants.DefaultSessionTTL
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates a new user with the user role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := normalizeEmail(input.Email)
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		Role:         models.RoleUser,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, *models.Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if user.Status == models.UserStatusSuspended {
		return nil, nil, ErrAccountSuspended
	}

	token, err := utils.GenerateSessionToken(constants.SessionTokenBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	session := &models.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return user, session, nil
}

// Logout revokes a session. Unknown tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessionRepo.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ValidateSession resolves a token to its user. Missing, unknown and expired
// tokens all return ErrInvalidSession.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	user, err := s.sessionRepo.FindUser(ctx, token, time.Now().UTC())
	if err != nil {
		return nil, lookupError(err, ErrInvalidSession, "session")
	}
	if user.Status == models.UserStatusSuspended {
		return nil, ErrAccountSuspended
	}
	return user, nil
}

// PruneSessions deletes expired sessions.
func (s *AuthService) PruneSessions(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, time.Now().UTC())
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "user")
	}
	return user, nil
}

// UpdateProfileInput holds optional profile changes.
type UpdateProfileInput struct {
	Name     *string
	HeightCM *float64
}

// UpdateProfile changes the name and height of the user.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*models.User, error) {
	updates := map[string]interface{}{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		updates["name"] = name
	}
	if input.HeightCM != nil {
		if *input.HeightCM < 50 || *input.HeightCM > 300 {
			return nil, ErrInvalidHeight
		}
		updates["height_cm"] = *input.HeightCM
	}

	if len(updates) > 0 {
		if err := s.userRepo.UpdateProfile(ctx, userID, updates); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
	return s.GetUser(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
