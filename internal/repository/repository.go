package repository

import (
	"context"
	"time"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateProfile applies profile field updates
	UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error

	// ResetWeeklyPoints zeroes weekly points for every user
	ResetWeeklyPoints(ctx context.Context) (int64, error)
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// Create stores a new session
	Create(ctx context.Context, session *models.Session) error

	// FindUser resolves a token to its user with one join, ignoring expired sessions
	FindUser(ctx context.Context, token string, now time.Time) (*models.User, error)

	// Delete revokes a session
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes sessions that expired before now
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// HabitRepository defines the interface for habit data access
type HabitRepository interface {
	// List returns a user's habits with their completions
	List(ctx context.Context, userID string) ([]models.Habit, error)

	// Create creates a new habit
	Create(ctx context.Context, habit *models.Habit) error

	// FindOwned finds a habit owned by userID
	FindOwned(ctx context.Context, id, userID string) (*models.Habit, error)

	// Update saves a habit
	Update(ctx context.Context, habit *models.Habit) error

	// Delete removes a habit and its completions
	Delete(ctx context.Context, id string) error

	// ToggleCompletion marks the habit done on day, or undoes an existing mark
	ToggleCompletion(ctx context.Context, habit *models.Habit, day string) (bool, error)

	// CompletionDays returns the distinct days on which the user completed any habit
	CompletionDays(ctx context.Context, userID string) ([]string, error)
}

// NutritionRepository defines the interface for nutrition log data access
type NutritionRepository interface {
	// List returns a user's logs, optionally restricted to one day
	List(ctx context.Context, userID string, day string) ([]models.NutritionLog, error)

	// Create creates a new log
	Create(ctx context.Context, log *models.NutritionLog) error

	// FindOwned finds a log owned by userID
	FindOwned(ctx context.Context, id, userID string) (*models.NutritionLog, error)

	// Update saves a log
	Update(ctx context.Context, log *models.NutritionLog) error

	// Delete removes a log
	Delete(ctx context.Context, id string) error
}

// WeightRepository defines the interface for weight log data access
type WeightRepository interface {
	// List returns a user's weight logs, newest first
	List(ctx context.Context, userID string) ([]models.WeightLog, error)

	// Latest returns the most recent weight log of a user
	Latest(ctx context.Context, userID string) (*models.WeightLog, error)

	// Create creates a new log
	Create(ctx context.Context, log *models.WeightLog) error

	// FindOwned finds a log owned by userID
	FindOwned(ctx context.Context, id, userID string) (*models.WeightLog, error)

	// Update saves a log
	Update(ctx context.Context, log *models.WeightLog) error

	// Delete removes a log
	Delete(ctx context.Context, id string) error
}

// GoalRepository defines the interface for weight goal data access
type GoalRepository interface {
	// List returns a user's goals, newest first
	List(ctx context.Context, userID string) ([]models.WeightGoal, error)

	// CreateActive deactivates the user's other goals and inserts goal as the active one
	CreateActive(ctx context.Context, goal *models.WeightGoal) error

	// FindOwned finds a goal owned by userID
	FindOwned(ctx context.Context, id, userID string) (*models.WeightGoal, error)

	// Delete removes a goal
	Delete(ctx context.Context, id string) error
}

// MediaWithOwner is a media row joined with its owner's email
type MediaWithOwner struct {
	models.MediaUpload `gorm:"embedded"`
	OwnerEmail         string `json:"owner_email"`
}

// MediaRepository defines the interface for media metadata access
type MediaRepository interface {
	// ListByUser returns a user's uploads, newest first
	ListByUser(ctx context.Context, userID string) ([]models.MediaUpload, error)

	// ListAll returns every upload with its owner, newest first
	ListAll(ctx context.Context, params utils.PaginationParams) ([]MediaWithOwner, int64, error)

	// Create stores upload metadata
	Create(ctx context.Context, media *models.MediaUpload) error

	// FindByID finds an upload regardless of owner
	FindByID(ctx context.Context, id string) (*models.MediaUpload, error)

	// FindOwned finds an upload owned by userID
	FindOwned(ctx context.Context, id, userID string) (*models.MediaUpload, error)

	// ObjectKeysByUser lists the object keys of every upload of a user
	ObjectKeysByUser(ctx context.Context, userID string) ([]string, error)

	// SetFlag flags or unflags an upload
	SetFlag(ctx context.Context, id string, flagged bool, reason string) error

	// Delete removes upload metadata
	Delete(ctx context.Context, id string) error
}

// AchievementRepository defines the interface for achievement data access
type AchievementRepository interface {
	// ListCatalog returns every achievement
	ListCatalog(ctx context.Context) ([]models.Achievement, error)

	// FindByID finds a catalog entry
	FindByID(ctx context.Context, id string) (*models.Achievement, error)

	// HeldIDs returns the achievement IDs the user holds
	HeldIDs(ctx context.Context, userID string) (map[string]bool, error)

	// Grant inserts the user achievement and awards its points in one
	// transaction. It reports false without side effects when already held.
	Grant(ctx context.Context, userID string, achievement *models.Achievement, earnedAt time.Time) (bool, error)

	// CountEarnedSince counts non-combo achievements earned at or after since
	CountEarnedSince(ctx context.Context, userID string, since time.Time) (int64, error)

	// LogActivity appends an activity log entry
	LogActivity(ctx context.Context, entry *models.ActivityLog) error
}

// StatsRepository gathers the counters achievements are measured against
type StatsRepository interface {
	// Counts returns every per-user count in one query
	Counts(ctx context.Context, userID string, since time.Time) (*UserCounts, error)
}

// UserCounts are raw per-user counters. Streaks are derived separately.
type UserCounts struct {
	HabitsCreated    int
	HabitCompletions int
	NutritionLogs    int
	WeightLogs       int
	MediaUploads     int
	Friends          int
	DailyChallenges  int
	UnlockedToday    int
}

// FriendRepository defines the interface for friend graph access
type FriendRepository interface {
	// ListEdges returns every edge touching userID
	ListEdges(ctx context.Context, userID string) ([]models.FriendEdge, error)

	// FindBetween finds the edge between two users in either direction
	FindBetween(ctx context.Context, a, b string) (*models.FriendEdge, error)

	// FindByID finds an edge by ID
	FindByID(ctx context.Context, id string) (*models.FriendEdge, error)

	// Create creates a pending edge
	Create(ctx context.Context, edge *models.FriendEdge) error

	// Accept marks an edge accepted
	Accept(ctx context.Context, id string) error

	// Delete removes an edge
	Delete(ctx context.Context, id string) error

	// AcceptedFriendIDs returns the IDs of the user's accepted friends
	AcceptedFriendIDs(ctx context.Context, userID string) ([]string, error)
}

// LeaderboardRow is one user's raw leaderboard values
type LeaderboardRow struct {
	UserID    string
	Name      string
	Points    int
	CreatedAt time.Time
	Value     int
}

// LeaderboardRepository defines the interface for leaderboard reads
type LeaderboardRepository interface {
	// Rows returns unordered rows for userIDs with the metric's value filled in.
	// Metrics that cannot be computed in SQL come back with Value zero.
	Rows(ctx context.Context, metric string, userIDs []string, day string) ([]LeaderboardRow, error)

	// CompletionDaysByUser returns each user's distinct habit completion days on or after since
	CompletionDaysByUser(ctx context.Context, userIDs []string, since string) (map[string][]string, error)
}

// CompetitionRepository defines the interface for competition data access
type CompetitionRepository interface {
	// ListActive returns active competitions with participants
	ListActive(ctx context.Context) ([]models.Competition, error)

	// Create creates a competition and joins its creator
	Create(ctx context.Context, competition *models.Competition) error

	// FindByID finds a competition with participants
	FindByID(ctx context.Context, id string) (*models.Competition, error)

	// Join adds a participant and reports false when already joined
	Join(ctx context.Context, competitionID, userID string) (bool, error)

	// UpdateStatus sets a competition's status
	UpdateStatus(ctx context.Context, id string, status models.CompetitionStatus) error
}

// ChallengeRepository defines the interface for social challenge data access
type ChallengeRepository interface {
	// ListVisible returns challenges userID may see given their accepted friends
	ListVisible(ctx context.Context, userID string, friendIDs []string) ([]models.SocialChallenge, error)

	// Create creates a challenge with its creator as an accepted participant
	Create(ctx context.Context, challenge *models.SocialChallenge) error

	// FindByID finds a challenge with participants
	FindByID(ctx context.Context, id string) (*models.SocialChallenge, error)

	// FindParticipant finds one participant row
	FindParticipant(ctx context.Context, challengeID, userID string) (*models.ChallengeParticipant, error)

	// Invite records the invitation and an invited participant row
	Invite(ctx context.Context, invitation *models.ChallengeInvitation) error

	// Respond moves an invited participant to accepted or declined. Accepting
	// fails with ErrChallengeFull when maxParticipants is reached.
	Respond(ctx context.Context, challengeID, userID string, status models.ParticipantStatus, maxParticipants int) error

	// Complete moves an accepted participant to completed
	Complete(ctx context.Context, challengeID, userID string) error
}

// DailyChallengeRepository defines the interface for daily challenge data access
type DailyChallengeRepository interface {
	// List returns the daily challenge catalog
	List(ctx context.Context) ([]models.DailyChallenge, error)

	// FindByID finds a catalog entry
	FindByID(ctx context.Context, id string) (*models.DailyChallenge, error)

	// CompletedIDs returns the challenge IDs the user completed on day
	CompletedIDs(ctx context.Context, userID, day string) (map[string]bool, error)

	// Complete records a completion and awards points in one transaction.
	// It reports false without side effects when already completed on day.
	Complete(ctx context.Context, userID string, challenge *models.DailyChallenge, day string) (bool, error)
}

// UserSummary is a user row with ownership counts for the admin listing
type UserSummary struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	Points           int       `json:"points"`
	Status           string    `json:"status,omitempty"`
	AdminNotes       string    `json:"admin_notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	HabitCount       int       `json:"habit_count"`
	MediaCount       int       `json:"media_count"`
	AchievementCount int       `json:"achievement_count"`
}

// CascadeStep is the outcome of one step of a user delete
type CascadeStep struct {
	Step         string `json:"step"`
	RowsAffected int64  `json:"rows_affected"`
	Error        string `json:"error,omitempty"`
}

// AdminRepository defines the interface for privileged data access
type AdminRepository interface {
	// ListUsers returns users with habit, media and achievement counts
	ListUsers(ctx context.Context, params utils.PaginationParams) ([]UserSummary, int64, error)

	// DeleteUserCascade removes everything a user owns, then the user. Step
	// failures are captured in the report; only the user delete can fail.
	DeleteUserCascade(ctx context.Context, userID string) ([]CascadeStep, error)

	// HasUserColumn reports whether the users table has column
	HasUserColumn(column string) bool

	// SetUserColumn updates one column of a user
	SetUserColumn(ctx context.Context, userID, column string, value interface{}) error
}
