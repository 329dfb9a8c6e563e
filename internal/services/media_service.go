package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/strivetrack/strivetrack-api/internal/constants"
	"github.com/strivetrack/strivetrack-api/internal/logger"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/repository"
	"github.com/strivetrack/strivetrack-api/internal/storage"
	"github.com/strivetrack/strivetrack-api/internal/utils"
	"go.uber.org/zap"
)

var (
	ErrMediaNotFound        = errors.New("media not found")
	ErrMediaTooLarge        = errors.New("file exceeds the upload size limit")
	ErrMediaEmpty           = errors.New("file is empty")
	ErrUnsupportedMediaType = errors.New("only image and video uploads are supported")
	ErrStorageUnavailable   = errors.New("media storage is unavailable")
)

// MediaService handles media uploads. Payloads live in the object store and
// metadata in the database.
type MediaService struct {
	mediaRepo repository.MediaRepository
	store     storage.ObjectStore
	log       *zap.Logger
}

// NewMediaService creates a new MediaService
func NewMediaService(mediaRepo repository.MediaRepository, store storage.ObjectStore) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		store:     store,
		log:       logger.Component("media"),
	}
}

// UploadInput represents one uploaded file
type UploadInput struct {
	UserID      string
	FileName    string
	ContentType string
	Size        int64
	Description string
	Body        io.Reader
}

// ListMedia returns the user's uploads
func (s *MediaService) ListMedia(ctx context.Context, userID string) ([]models.MediaUpload, error) {
	media, err := s.mediaRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return media, nil
}

// ListAllMedia returns every upload with its owner
func (s *MediaService) ListAllMedia(ctx context.Context, params utils.PaginationParams) ([]repository.MediaWithOwner, int64, error) {
	media, total, err := s.mediaRepo.ListAll(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list media: %w", err)
	}
	return media, total, nil
}

// Upload stores the payload and then its metadata. A failed payload write
// fails the upload; a failed metadata write removes the payload again.
func (s *MediaService) Upload(ctx context.Context, input UploadInput) (*models.MediaUpload, error) {
	if input.Size <= 0 {
		return nil, ErrMediaEmpty
	}
	if input.Size > constants.MaxMediaSizeBytes {
		return nil, ErrMediaTooLarge
	}

	mediaType, ok := mediaTypeOf(input.ContentType)
	if !ok {
		return nil, ErrUnsupportedMediaType
	}

	key := path.Join(input.UserID, uuid.NewString()+strings.ToLower(path.Ext(input.FileName)))
	if err := s.store.Put(ctx, key, input.Body, input.Size, input.ContentType); err != nil {
		s.log.Error("media_put_failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	media := &models.MediaUpload{
		UserID:      input.UserID,
		ObjectKey:   key,
		FileName:    path.Base(input.FileName),
		ContentType: input.ContentType,
		MediaType:   mediaType,
		SizeBytes:   input.Size,
		Description: input.Description,
	}
	if err := s.mediaRepo.Create(ctx, media); err != nil {
		s.removeObject(ctx, key)
		return nil, fmt.Errorf("failed to save media: %w", err)
	}

	s.log.Info("media_uploaded",
		zap.String("user_id", input.UserID),
		zap.String("media_id", media.ID),
		zap.Int64("size_bytes", input.Size),
	)
	return media, nil
}

// Open returns an upload owned by userID with its payload opened for reading
func (s *MediaService) Open(ctx context.Context, userID, mediaID string) (*models.MediaUpload, *storage.Object, error) {
	media, err := s.mediaRepo.FindOwned(ctx, mediaID, userID)
	if err != nil {
		return nil, nil, lookupError(err, ErrMediaNotFound, "media")
	}

	obj, err := s.store.Get(ctx, media.ObjectKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, ErrMediaNotFound
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return media, obj, nil
}

// DeleteMedia deletes an upload owned by userID
func (s *MediaService) DeleteMedia(ctx context.Context, userID, mediaID string) error {
	media, err := s.mediaRepo.FindOwned(ctx, mediaID, userID)
	if err != nil {
		return lookupError(err, ErrMediaNotFound, "media")
	}
	return s.remove(ctx, media)
}

// DeleteAnyMedia deletes an upload regardless of owner
func (s *MediaService) DeleteAnyMedia(ctx context.Context, mediaID string) error {
	media, err := s.mediaRepo.FindByID(ctx, mediaID)
	if err != nil {
		return lookupError(err, ErrMediaNotFound, "media")
	}
	return s.remove(ctx, media)
}

// SetFlag flags or unflags any upload
func (s *MediaService) SetFlag(ctx context.Context, mediaID string, flagged bool, reason string) (*models.MediaUpload, error) {
	if _, err := s.mediaRepo.FindByID(ctx, mediaID); err != nil {
		return nil, lookupError(err, ErrMediaNotFound, "media")
	}
	if err := s.mediaRepo.SetFlag(ctx, mediaID, flagged, reason); err != nil {
		return nil, fmt.Errorf("failed to flag media: %w", err)
	}

	media, err := s.mediaRepo.FindByID(ctx, mediaID)
	if err != nil {
		return nil, lookupError(err, ErrMediaNotFound, "media")
	}
	return media, nil
}

// RemoveObjects deletes payloads whose metadata is already gone
func (s *MediaService) RemoveObjects(ctx context.Context, keys []string) {
	for _, key := range keys {
		s.removeObject(ctx, key)
	}
}

// remove deletes the metadata row first; the payload delete is best-effort.
func (s *MediaService) remove(ctx context.Context, media *models.MediaUpload) error {
	if err := s.mediaRepo.Delete(ctx, media.ID); err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	s.removeObject(ctx, media.ObjectKey)
	return nil
}

func (s *MediaService) removeObject(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		bestEffort(s.log, "media_object_delete", err, zap.String("key", key))
	}
}

func mediaTypeOf(contentType string) (models.MediaType, bool) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaImage, true
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaVideo, true
	}
	return "", false
}
