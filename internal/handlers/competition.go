package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/services"
)

type CompetitionHandler struct {
	competitionService *services.CompetitionService
}

func NewCompetitionHandler(competitionService *services.CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{competitionService: competitionService}
}

// ListCompetitions returns every active competition
func (h *CompetitionHandler) ListCompetitions(c *gin.Context) {
	competitions, err := h.competitionService.ListActive(c.Request.Context())
	if err != nil {
		respondCompetitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"competitions": competitions})
}

// CreateCompetition creates a competition joined by its creator
func (h *CompetitionHandler) CreateCompetition(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CreateCompetitionRequest struct {
		Name        string  `json:"name" binding:"required,max=255"`
		Description string  `json:"description"`
		Metric      string  `json:"metric" binding:"max=50"`
		StartsOn    string  `json:"starts_on"`
		EndsOn      *string `json:"ends_on"`
	}

	var req CreateCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	competition, err := h.competitionService.CreateCompetition(c.Request.Context(), services.CreateCompetitionInput{
		CreatorID:   userID,
		Name:        req.Name,
		Description: req.Description,
		Metric:      req.Metric,
		StartsOn:    req.StartsOn,
		EndsOn:      req.EndsOn,
	})
	if err != nil {
		respondCompetitionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, competition)
}

// JoinCompetition adds the user to an active competition
func (h *CompetitionHandler) JoinCompetition(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	competition, err := h.competitionService.Join(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondCompetitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, competition)
}

// UpdateStatus completes or cancels a competition the user created
func (h *CompetitionHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status models.CompetitionStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	competition, err := h.competitionService.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		respondCompetitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, competition)
}

func respondCompetitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCompetitionNotFound):
		apierrors.NotFound(c, "Competition not found")
	case errors.Is(err, services.ErrNotCompetitionCreator):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyJoined):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCompetitionNameRequired),
		errors.Is(err, services.ErrCompetitionNotActive),
		errors.Is(err, services.ErrInvalidStatusTransition),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrInvalidDate):
		apierrors.BadRequest(c, err.Error())
	default:
		internalError(c, err)
	}
}
