package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/services"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard ranks the user among accepted friends by ?metric=
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	board, err := h.leaderboardService.Get(c.Request.Context(), userID, c.Query("metric"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidMetric):
			apierrors.BadRequest(c, err.Error())
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, board)
}
