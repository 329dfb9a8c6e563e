package dto

import (
	"time"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/repository"
	"github.com/strivetrack/strivetrack-api/internal/utils"
)

// NutritionTotals sums one day's logs
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	WaterML  float64 `json:"water_ml"`
}

// NutritionListResponse is the nutrition list with its totals
type NutritionListResponse struct {
	Logs   []models.NutritionLog `json:"logs"`
	Totals NutritionTotals       `json:"totals"`
}

// ToNutritionListResponse sums logs into the list response
func ToNutritionListResponse(logs []models.NutritionLog) NutritionListResponse {
	resp := NutritionListResponse{Logs: logs}
	if resp.Logs == nil {
		resp.Logs = []models.NutritionLog{}
	}
	for _, l := range logs {
		resp.Totals.Calories += l.Calories
		resp.Totals.ProteinG += l.ProteinG
		resp.Totals.CarbsG += l.CarbsG
		resp.Totals.FatG += l.FatG
		resp.Totals.WaterML += l.WaterML
	}
	resp.Totals.Calories = utils.Round(resp.Totals.Calories, 2)
	resp.Totals.ProteinG = utils.Round(resp.Totals.ProteinG, 2)
	resp.Totals.CarbsG = utils.Round(resp.Totals.CarbsG, 2)
	resp.Totals.FatG = utils.Round(resp.Totals.FatG, 2)
	resp.Totals.WaterML = utils.Round(resp.Totals.WaterML, 2)
	return resp
}

// MediaDTO represents an upload; the payload is served from ContentURL
type MediaDTO struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	OwnerEmail  string           `json:"owner_email,omitempty"`
	FileName    string           `json:"file_name"`
	ContentType string           `json:"content_type"`
	MediaType   models.MediaType `json:"media_type"`
	SizeBytes   int64            `json:"size_bytes"`
	Description string           `json:"description"`
	IsFlagged   bool             `json:"is_flagged"`
	FlagReason  string           `json:"flag_reason,omitempty"`
	ContentURL  string           `json:"content_url"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ToMediaDTO converts a MediaUpload model to MediaDTO
func ToMediaDTO(m models.MediaUpload) MediaDTO {
	return MediaDTO{
		ID:          m.ID,
		UserID:      m.UserID,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		MediaType:   m.MediaType,
		SizeBytes:   m.SizeBytes,
		Description: m.Description,
		IsFlagged:   m.IsFlagged,
		FlagReason:  m.FlagReason,
		ContentURL:  "/api/media/" + m.ID + "/content",
		CreatedAt:   m.CreatedAt,
	}
}

// ToMediaDTOs converts a list of uploads
func ToMediaDTOs(media []models.MediaUpload) []MediaDTO {
	dtos := make([]MediaDTO, 0, len(media))
	for _, m := range media {
		dtos = append(dtos, ToMediaDTO(m))
	}
	return dtos
}

// ToOwnedMediaDTOs converts the admin media list
func ToOwnedMediaDTOs(media []repository.MediaWithOwner) []MediaDTO {
	dtos := make([]MediaDTO, 0, len(media))
	for _, m := range media {
		dto := ToMediaDTO(m.MediaUpload)
		dto.OwnerEmail = m.OwnerEmail
		dtos = append(dtos, dto)
	}
	return dtos
}

// PageResponse wraps a page of admin results
type PageResponse struct {
	Items      interface{}              `json:"items"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// NewPageResponse builds a PageResponse
func NewPageResponse(items interface{}, params utils.PaginationParams, total int64) PageResponse {
	return PageResponse{
		Items: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
