package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/strivetrack/strivetrack-api/internal/constants"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/middleware"
	"github.com/strivetrack/strivetrack-api/internal/services"
)

// RouterOptions carries the HTTP-layer settings that are not services.
type RouterOptions struct {
	CORSOrigins []string
	Counter     middleware.Counter
	RateLimit   int
	// HealthCheck is optional; when set, /health reports 503 if it fails.
	HealthCheck func(ctx context.Context) error
}

// NewRouter builds the gin engine with every API route registered.
func NewRouter(svc *services.Services, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	r.Use(middleware.RateLimit(opts.Counter, opts.RateLimit))

	authHandler := NewAuthHandler(svc.Auth)
	habitHandler := NewHabitHandler(svc.Habits)
	nutritionHandler := NewNutritionHandler(svc.Nutrition)
	weightHandler := NewWeightHandler(svc.Weights, svc.Goals)
	mediaHandler := NewMediaHandler(svc.Media)
	achievementHandler := NewAchievementHandler(svc.Achievements)
	leaderboardHandler := NewLeaderboardHandler(svc.Leaderboard)
	friendHandler := NewFriendHandler(svc.Friends)
	competitionHandler := NewCompetitionHandler(svc.Competitions)
	challengeHandler := NewChallengeHandler(svc.Challenges, svc.DailyChallenges)
	adminHandler := NewAdminHandler(svc.Admin, svc.Media)

	requireSession := middleware.RequireSession(svc.Auth)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		if opts.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := opts.HealthCheck(ctx); err != nil {
				apierrors.ServiceUnavailable(c, "Database unavailable")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "StriveTrack API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireSession, authHandler.GetCurrentUser)
		}

		// Everything below needs a session
		protected := api.Group("")
		protected.Use(requireSession)
		{
			protected.PATCH("/profile", authHandler.UpdateProfile)

			protected.GET("/habits", habitHandler.ListHabits)
			protected.POST("/habits", habitHandler.CreateHabit)
			protected.PUT("/habits/:id", habitHandler.UpdateHabit)
			protected.DELETE("/habits/:id", habitHandler.DeleteHabit)
			protected.POST("/habits/:id/complete", habitHandler.ToggleCompletion)

			protected.GET("/nutrition", nutritionHandler.ListLogs)
			protected.POST("/nutrition", nutritionHandler.CreateLog)
			protected.PUT("/nutrition/:id", nutritionHandler.UpdateLog)
			protected.DELETE("/nutrition/:id", nutritionHandler.DeleteLog)

			protected.GET("/weight", weightHandler.ListWeights)
			protected.POST("/weight", weightHandler.LogWeight)
			protected.PUT("/weight/:id", weightHandler.UpdateWeight)
			protected.DELETE("/weight/:id", weightHandler.DeleteWeight)

			protected.GET("/goals", weightHandler.ListGoals)
			protected.POST("/goals", weightHandler.CreateGoal)
			protected.DELETE("/goals/:id", weightHandler.DeleteGoal)

			protected.GET("/media", mediaHandler.ListMedia)
			protected.POST("/media", mediaHandler.Upload)
			protected.GET("/media/:id/content", mediaHandler.Content)
			protected.DELETE("/media/:id", mediaHandler.DeleteMedia)

			protected.GET("/achievements", achievementHandler.ListAchievements)
			protected.POST("/achievements/:id/unlock", achievementHandler.Unlock)

			protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

			protected.GET("/friends", friendHandler.ListFriends)
			protected.POST("/friends/requests", friendHandler.SendRequest)
			protected.POST("/friends/requests/:id/accept", friendHandler.AcceptRequest)
			protected.DELETE("/friends/:id", friendHandler.RemoveFriend)

			protected.GET("/competitions", competitionHandler.ListCompetitions)
			protected.POST("/competitions", competitionHandler.CreateCompetition)
			protected.POST("/competitions/:id/join", competitionHandler.JoinCompetition)
			protected.PATCH("/competitions/:id/status", competitionHandler.UpdateStatus)

			protected.GET("/challenges", challengeHandler.ListChallenges)
			protected.POST("/challenges", challengeHandler.CreateChallenge)
			protected.POST("/challenges/:id/invite", challengeHandler.Invite)
			protected.POST("/challenges/:id/respond", challengeHandler.Respond)
			protected.POST("/challenges/:id/complete", challengeHandler.Complete)

			protected.GET("/daily-challenges", challengeHandler.ListDaily)
			protected.POST("/daily-challenges/:id/complete", challengeHandler.CompleteDaily)
		}

		// Admin routes (session + admin)
		admin := api.Group("/admin")
		admin.Use(requireSession, middleware.RequireAdmin(svc.Admin))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.PATCH("/users/:id/status", adminHandler.SetUserStatus)
			admin.PATCH("/users/:id/notes", adminHandler.SetUserNotes)
			admin.GET("/media", adminHandler.ListMedia)
			admin.DELETE("/media/:id", adminHandler.DeleteMedia)
			admin.PATCH("/media/:id/flag", adminHandler.FlagMedia)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", constants.SessionHeader)
	cfg.ExposeHeaders = []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
