package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/services"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
	dailyService     *services.DailyChallengeService
}

func NewChallengeHandler(challengeService *services.ChallengeService, dailyService *services.DailyChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
		dailyService:     dailyService,
	}
}

// ListChallenges returns the social challenges visible to the user
func (h *ChallengeHandler) ListChallenges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	challenges, err := h.challengeService.ListVisible(c.Request.Context(), userID)
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenges": challenges})
}

// CreateChallenge creates a social challenge
func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CreateChallengeRequest struct {
		Title           string                  `json:"title" binding:"required,max=255"`
		Description     string                  `json:"description"`
		Privacy         models.ChallengePrivacy `json:"privacy"`
		MaxParticipants int                     `json:"max_participants"`
		EndsOn          *string                 `json:"ends_on"`
	}

	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	challenge, err := h.challengeService.CreateChallenge(c.Request.Context(), services.CreateChallengeInput{
		CreatorID:       userID,
		Title:           req.Title,
		Description:     req.Description,
		Privacy:         req.Privacy,
		MaxParticipants: req.MaxParticipants,
		EndsOn:          req.EndsOn,
	})
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, challenge)
}

// Invite invites another user to a challenge
func (h *ChallengeHandler) Invite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type InviteRequest struct {
		UserID string `json:"user_id" binding:"required"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invitation, err := h.challengeService.Invite(c.Request.Context(), userID, c.Param("id"), req.UserID)
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

// Respond accepts or declines an invitation
func (h *ChallengeHandler) Respond(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type RespondRequest struct {
		Accept *bool `json:"accept" binding:"required"`
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	challenge, err := h.challengeService.Respond(c.Request.Context(), userID, c.Param("id"), *req.Accept)
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenge)
}

// Complete marks the user's participation completed
func (h *ChallengeHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	challenge, err := h.challengeService.Complete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenge)
}

// ListDaily returns today's daily challenges
func (h *ChallengeHandler) ListDaily(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	challenges, err := h.dailyService.ListToday(c.Request.Context(), userID)
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"daily_challenges": challenges})
}

// CompleteDaily records today's completion of a daily challenge
func (h *ChallengeHandler) CompleteDaily(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	challenge, err := h.dailyService.Complete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"daily_challenge": challenge,
		"points_awarded":  challenge.Points,
	})
}

func respondChallengeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrChallengeNotFound),
		errors.Is(err, services.ErrDailyChallengeNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInviteNotAllowed),
		errors.Is(err, services.ErrNotInvited),
		errors.Is(err, services.ErrNotActiveParticipant):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrChallengeFull),
		errors.Is(err, services.ErrAlreadyParticipant),
		errors.Is(err, services.ErrDailyAlreadyCompleted):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrChallengeTitleRequired),
		errors.Is(err, services.ErrInvalidPrivacy),
		errors.Is(err, services.ErrInvalidMaxParticipants),
		errors.Is(err, services.ErrInvalidDate):
		apierrors.BadRequest(c, err.Error())
	default:
		internalError(c, err)
	}
}
