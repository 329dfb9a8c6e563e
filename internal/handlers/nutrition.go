package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/strivetrack/strivetrack-api/internal/dto"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/services"
)

type NutritionHandler struct {
	nutritionService *services.NutritionService
}

func NewNutritionHandler(nutritionService *services.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutritionService: nutritionService}
}

type nutrientsRequest struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	WaterML  float64 `json:"water_ml"`
}

func (r nutrientsRequest) toNutrients() services.Nutrients {
	return services.Nutrients{
		Calories: r.Calories,
		ProteinG: r.ProteinG,
		CarbsG:   r.CarbsG,
		FatG:     r.FatG,
		WaterML:  r.WaterML,
	}
}

// ListLogs returns the user's nutrition logs, filtered by ?date= when given
func (h *NutritionHandler) ListLogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	logs, err := h.nutritionService.ListLogs(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		respondNutritionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNutritionListResponse(logs))
}

// CreateLog records a meal
func (h *NutritionHandler) CreateLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CreateLogRequest struct {
		FoodName string          `json:"food_name" binding:"required,max=255"`
		MealType models.MealType `json:"meal_type" binding:"required"`
		LoggedOn string          `json:"logged_on"`
		nutrientsRequest
	}

	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	log, err := h.nutritionService.CreateLog(c.Request.Context(), services.CreateNutritionInput{
		UserID:    userID,
		FoodName:  req.FoodName,
		MealType:  req.MealType,
		LoggedOn:  req.LoggedOn,
		Nutrients: req.toNutrients(),
	})
	if err != nil {
		respondNutritionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// UpdateLog updates a log owned by the user
func (h *NutritionHandler) UpdateLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type UpdateLogRequest struct {
		FoodName *string          `json:"food_name" binding:"omitempty,max=255"`
		MealType *models.MealType `json:"meal_type"`
		LoggedOn *string          `json:"logged_on"`
		Calories *float64         `json:"calories"`
		ProteinG *float64         `json:"protein_g"`
		CarbsG   *float64         `json:"carbs_g"`
		FatG     *float64         `json:"fat_g"`
		WaterML  *float64         `json:"water_ml"`
	}

	var req UpdateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	log, err := h.nutritionService.UpdateLog(c.Request.Context(), userID, c.Param("id"), services.UpdateNutritionInput{
		FoodName: req.FoodName,
		MealType: req.MealType,
		LoggedOn: req.LoggedOn,
		Calories: req.Calories,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatG:     req.FatG,
		WaterML:  req.WaterML,
	})
	if err != nil {
		respondNutritionError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

// DeleteLog deletes a log owned by the user
func (h *NutritionHandler) DeleteLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.nutritionService.DeleteLog(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondNutritionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Nutrition log deleted successfully"})
}

func respondNutritionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNutritionNotFound):
		apierrors.NotFound(c, "Nutrition log not found")
	case errors.Is(err, services.ErrFoodNameRequired),
		errors.Is(err, services.ErrInvalidMealType),
		errors.Is(err, services.ErrNegativeNutrient),
		errors.Is(err, services.ErrInvalidDate):
		apierrors.BadRequest(c, err.Error())
	default:
		internalError(c, err)
	}
}
