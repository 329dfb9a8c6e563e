package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/strivetrack/strivetrack-api/internal/dto"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/services"
	"github.com/strivetrack/strivetrack-api/internal/utils"
)

// AdminHandler serves the moderation routes. RequireAdmin guards every route.
type AdminHandler struct {
	adminService *services.AdminService
	mediaService *services.MediaService
}

func NewAdminHandler(adminService *services.AdminService, mediaService *services.MediaService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		mediaService: mediaService,
	}
}

// ListUsers returns a page of users with their content counts
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.adminService.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(users, params, total))
}

// DeleteUser removes a non-admin user and reports each cascade step
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	result, err := h.adminService.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SetUserStatus suspends or reactivates a user
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	type SetStatusRequest struct {
		Status models.UserStatus `json:"status" binding:"required"`
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.adminService.SetUserStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminUserDTO(*user))
}

// SetUserNotes replaces a user's moderation notes
func (h *AdminHandler) SetUserNotes(c *gin.Context) {
	type SetNotesRequest struct {
		Notes string `json:"notes" binding:"max=5000"`
	}

	var req SetNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.adminService.SetUserNotes(c.Request.Context(), c.Param("id"), req.Notes)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminUserDTO(*user))
}

// ListMedia returns a page of every user's uploads
func (h *AdminHandler) ListMedia(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	media, total, err := h.mediaService.ListAllMedia(c.Request.Context(), params)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(dto.ToOwnedMediaDTOs(media), params, total))
}

// DeleteMedia deletes any upload
func (h *AdminHandler) DeleteMedia(c *gin.Context) {
	if err := h.mediaService.DeleteAnyMedia(c.Request.Context(), c.Param("id")); err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Media deleted successfully"})
}

// FlagMedia flags or unflags any upload
func (h *AdminHandler) FlagMedia(c *gin.Context) {
	type FlagRequest struct {
		Flagged *bool  `json:"flagged" binding:"required"`
		Reason  string `json:"reason" binding:"max=1000"`
	}

	var req FlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	media, err := h.mediaService.SetFlag(c.Request.Context(), c.Param("id"), *req.Flagged, req.Reason)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMediaDTO(*media))
}

func respondAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCannotModerateAdmin),
		errors.Is(err, services.ErrNotAdmin):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrMediaNotFound):
		apierrors.NotFound(c, "Media not found")
	case errors.Is(err, services.ErrInvalidUserStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrMigrationRequired):
		apierrors.MigrationRequired(c, "")
	default:
		internalError(c, err)
	}
}
