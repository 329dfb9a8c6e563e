package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/services"
)

type WeightHandler struct {
	weightService *services.WeightService
	goalService   *services.GoalService
}

func NewWeightHandler(weightService *services.WeightService, goalService *services.GoalService) *WeightHandler {
	return &WeightHandler{
		weightService: weightService,
		goalService:   goalService,
	}
}

// ListWeights returns the user's weight logs
func (h *WeightHandler) ListWeights(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	logs, err := h.weightService.ListWeights(c.Request.Context(), userID)
	if err != nil {
		respondWeightError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weights": logs})
}

// LogWeight records a weight in the given unit
func (h *WeightHandler) LogWeight(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type LogWeightRequest struct {
		Weight   float64 `json:"weight" binding:"required"`
		Unit     string  `json:"unit" binding:"required"`
		LoggedOn string  `json:"logged_on"`
		Note     string  `json:"note"`
	}

	var req LogWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "weight and unit (lbs or kg) are required")
		return
	}

	log, err := h.weightService.LogWeight(c.Request.Context(), services.LogWeightInput{
		UserID:   userID,
		Weight:   req.Weight,
		Unit:     req.Unit,
		LoggedOn: req.LoggedOn,
		Note:     req.Note,
	})
	if err != nil {
		respondWeightError(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// UpdateWeight updates a weight log owned by the user
func (h *WeightHandler) UpdateWeight(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type UpdateWeightRequest struct {
		Weight   *float64 `json:"weight"`
		Unit     string   `json:"unit"`
		LoggedOn *string  `json:"logged_on"`
		Note     *string  `json:"note"`
	}

	var req UpdateWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	log, err := h.weightService.UpdateWeight(c.Request.Context(), userID, c.Param("id"), services.UpdateWeightInput{
		Weight:   req.Weight,
		Unit:     req.Unit,
		LoggedOn: req.LoggedOn,
		Note:     req.Note,
	})
	if err != nil {
		respondWeightError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

// DeleteWeight deletes a weight log owned by the user
func (h *WeightHandler) DeleteWeight(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.weightService.DeleteWeight(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWeightError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Weight log deleted successfully"})
}

// ListGoals returns the user's weight goals
func (h *WeightHandler) ListGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		respondWeightError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// CreateGoal sets a new active goal, deactivating the previous one
func (h *WeightHandler) CreateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CreateGoalRequest struct {
		TargetWeight float64  `json:"target_weight" binding:"required"`
		StartWeight  *float64 `json:"start_weight"`
		Unit         string   `json:"unit" binding:"required"`
		TargetDate   *string  `json:"target_date"`
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "target_weight and unit (lbs or kg) are required")
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), services.CreateGoalInput{
		UserID:       userID,
		TargetWeight: req.TargetWeight,
		StartWeight:  req.StartWeight,
		Unit:         req.Unit,
		TargetDate:   req.TargetDate,
	})
	if err != nil {
		respondWeightError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// DeleteGoal deletes a goal owned by the user
func (h *WeightHandler) DeleteGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWeightError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

func respondWeightError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWeightNotFound):
		apierrors.NotFound(c, "Weight log not found")
	case errors.Is(err, services.ErrGoalNotFound):
		apierrors.NotFound(c, "Goal not found")
	case errors.Is(err, services.ErrInvalidWeight),
		errors.Is(err, services.ErrUnitRequired),
		errors.Is(err, services.ErrUnitWithoutWeight),
		errors.Is(err, services.ErrStartWeightRequired),
		errors.Is(err, services.ErrInvalidDate):
		apierrors.BadRequest(c, err.Error())
	default:
		internalError(c, err)
	}
}
