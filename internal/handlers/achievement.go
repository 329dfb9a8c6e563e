package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/services"
)

type AchievementHandler struct {
	achievementService *services.AchievementService
}

func NewAchievementHandler(achievementService *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// ListAchievements returns the catalog with the user's state per entry
func (h *AchievementHandler) ListAchievements(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	list, err := h.achievementService.List(c.Request.Context(), userID)
	if err != nil {
		respondAchievementError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Unlock claims an unlockable achievement
func (h *AchievementHandler) Unlock(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.achievementService.Unlock(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondAchievementError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func respondAchievementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAchievementNotFound):
		apierrors.NotFound(c, "Achievement not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyUnlocked):
		apierrors.Conflict(c, "Achievement already unlocked")
	case errors.Is(err, services.ErrAchievementLocked):
		apierrors.BadRequest(c, "Achievement requirements not met")
	default:
		internalError(c, err)
	}
}
