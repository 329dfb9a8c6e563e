package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/strivetrack/strivetrack-api/internal/constants"
	"github.com/strivetrack/strivetrack-api/internal/dto"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/logger"
	"github.com/strivetrack/strivetrack-api/internal/services"
	"go.uber.org/zap"
)

type MediaHandler struct {
	mediaService *services.MediaService
}

func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// ListMedia returns the user's uploads
func (h *MediaHandler) ListMedia(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	media, err := h.mediaService.ListMedia(c.Request.Context(), userID)
	if err != nil {
		respondMediaError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": dto.ToMediaDTOs(media)})
}

// Upload accepts one multipart file in the "file" field
func (h *MediaHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Leave room for the multipart envelope around the file.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, constants.MaxMediaSizeBytes+1<<20)

	header, err := c.FormFile(constants.MediaFormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondMediaError(c, services.ErrMediaTooLarge)
			return
		}
		apierrors.BadRequest(c, fmt.Sprintf("multipart field %q is required", constants.MediaFormField))
		return
	}

	file, err := header.Open()
	if err != nil {
		apierrors.BadRequest(c, "Failed to read upload")
		return
	}
	defer file.Close()

	media, err := h.mediaService.Upload(c.Request.Context(), services.UploadInput{
		UserID:      userID,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Description: c.PostForm("description"),
		Body:        file,
	})
	if err != nil {
		respondMediaError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMediaDTO(*media))
}

// Content streams the payload of an upload owned by the user
func (h *MediaHandler) Content(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	media, obj, err := h.mediaService.Open(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondMediaError(c, err)
		return
	}
	defer obj.Body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = media.ContentType
	}
	c.DataFromReader(http.StatusOK, obj.Size, contentType, obj.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", media.FileName),
	})
}

// DeleteMedia deletes an upload owned by the user
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.mediaService.DeleteMedia(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondMediaError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Media deleted successfully"})
}

func respondMediaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMediaNotFound):
		apierrors.NotFound(c, "Media not found")
	case errors.Is(err, services.ErrMediaTooLarge):
		apierrors.RespondWithError(c, http.StatusRequestEntityTooLarge,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, err.Error()))
	case errors.Is(err, services.ErrMediaEmpty),
		errors.Is(err, services.ErrUnsupportedMediaType):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrStorageUnavailable):
		logger.Log.Error("media_storage_failed", zap.Error(err))
		apierrors.ServiceUnavailable(c, "Media storage is unavailable")
	default:
		internalError(c, err)
	}
}
