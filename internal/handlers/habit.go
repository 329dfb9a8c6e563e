package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/strivetrack/strivetrack-api/internal/dto"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/services"
)

type HabitHandler struct {
	habitService *services.HabitService
}

func NewHabitHandler(habitService *services.HabitService) *HabitHandler {
	return &HabitHandler{habitService: habitService}
}

// ListHabits returns the user's habits and current streak
func (h *HabitHandler) ListHabits(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	habits, err := h.habitService.ListHabits(c.Request.Context(), userID)
	if err != nil {
		respondHabitError(c, err)
		return
	}
	streak, err := h.habitService.CurrentStreak(c.Request.Context(), userID)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitListResponse(habits, streak, time.Now().UTC()))
}

// CreateHabit creates a new habit
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CreateHabitRequest struct {
		Name         string                 `json:"name" binding:"required,max=255"`
		Description  string                 `json:"description"`
		Category     string                 `json:"category" binding:"max=50"`
		WeeklyTarget *int                   `json:"weekly_target"`
		Difficulty   models.HabitDifficulty `json:"difficulty"`
	}

	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.habitService.CreateHabit(c.Request.Context(), services.CreateHabitInput{
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		WeeklyTarget: req.WeeklyTarget,
		Difficulty:   req.Difficulty,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToHabitDTO(*habit, time.Now().UTC()))
}

// UpdateHabit updates a habit owned by the user
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type UpdateHabitRequest struct {
		Name         *string                 `json:"name" binding:"omitempty,max=255"`
		Description  *string                 `json:"description"`
		Category     *string                 `json:"category" binding:"omitempty,max=50"`
		WeeklyTarget *int                    `json:"weekly_target"`
		Difficulty   *models.HabitDifficulty `json:"difficulty"`
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.habitService.UpdateHabit(c.Request.Context(), userID, c.Param("id"), services.UpdateHabitInput{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		WeeklyTarget: req.WeeklyTarget,
		Difficulty:   req.Difficulty,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitDTO(*habit, time.Now().UTC()))
}

// DeleteHabit deletes a habit and its completions
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.habitService.DeleteHabit(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Habit deleted successfully"})
}

// ToggleCompletion marks the habit done for a day, or undoes it
func (h *HabitHandler) ToggleCompletion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Date string `json:"date"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.habitService.ToggleCompletion(c.Request.Context(), userID, c.Param("id"), req.Date)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func respondHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHabitNotFound):
		apierrors.NotFound(c, "Habit not found")
	case errors.Is(err, services.ErrHabitNameRequired),
		errors.Is(err, services.ErrInvalidWeeklyTarget),
		errors.Is(err, services.ErrInvalidDifficulty),
		errors.Is(err, services.ErrFutureCompletion),
		errors.Is(err, services.ErrInvalidDate):
		apierrors.BadRequest(c, err.Error())
	default:
		internalError(c, err)
	}
}
