package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strivetrack/strivetrack-api/internal/constants"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/storage"
)

// flakyStore wraps a MemoryStore and fails the configured operations.
type flakyStore struct {
	*storage.MemoryStore
	putErr    error
	deleteErr error
}

func (f *flakyStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.MemoryStore.Put(ctx, key, r, size, contentType)
}

func (f *flakyStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.MemoryStore.Delete(ctx, key)
}

func upload(name, contentType, body string) UploadInput {
	return UploadInput{
		FileName:    name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Body:        strings.NewReader(body),
	}
}

func TestMediaService_UploadOpenDelete(t *testing.T) {
	store := storage.NewMemoryStore()
	env := setupTestEnvWithStore(t, store)
	user := env.register(t, "media@example.com")
	other := env.register(t, "media-other@example.com")

	input := upload("Progress.JPG", "image/jpeg", "jpeg-bytes")
	input.UserID = user.ID
	media, err := env.media.Upload(env.ctx, input)
	require.NoError(t, err)
	assert.Equal(t, models.MediaImage, media.MediaType)
	assert.True(t, strings.HasPrefix(media.ObjectKey, user.ID+"/"))
	assert.True(t, strings.HasSuffix(media.ObjectKey, ".jpg"))
	assert.True(t, store.Has(media.ObjectKey))

	_, _, err = env.media.Open(env.ctx, other.ID, media.ID)
	assert.ErrorIs(t, err, ErrMediaNotFound)

	_, obj, err := env.media.Open(env.ctx, user.ID, media.ID)
	require.NoError(t, err)
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	obj.Body.Close()
	assert.Equal(t, "jpeg-bytes", string(body))

	assert.ErrorIs(t, env.media.DeleteMedia(env.ctx, other.ID, media.ID), ErrMediaNotFound)
	require.NoError(t, env.media.DeleteMedia(env.ctx, user.ID, media.ID))
	assert.False(t, store.Has(media.ObjectKey))
}

func TestMediaService_UploadValidation(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "media-validation@example.com")

	input := upload("notes.txt", "text/plain", "hello")
	input.UserID = user.ID
	_, err := env.media.Upload(env.ctx, input)
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)

	input = upload("empty.png", "image/png", "")
	input.UserID = user.ID
	_, err = env.media.Upload(env.ctx, input)
	assert.ErrorIs(t, err, ErrMediaEmpty)

	input = upload("huge.mp4", "video/mp4", "x")
	input.UserID = user.ID
	input.Size = constants.MaxMediaSizeBytes + 1
	_, err = env.media.Upload(env.ctx, input)
	assert.ErrorIs(t, err, ErrMediaTooLarge)
}

func TestMediaService_StoreFailures(t *testing.T) {
	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	env := setupTestEnvWithStore(t, store)
	user := env.register(t, "flaky@example.com")

	store.putErr = errors.New("bucket offline")
	input := upload("clip.mp4", "video/mp4", "video")
	input.UserID = user.ID
	_, err := env.media.Upload(env.ctx, input)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	var rows int64
	require.NoError(t, env.db.Model(&models.MediaUpload{}).Count(&rows).Error)
	assert.Zero(t, rows, "no metadata without a stored payload")

	store.putErr = nil
	input = upload("clip.mp4", "video/mp4", "video")
	input.UserID = user.ID
	media, err := env.media.Upload(env.ctx, input)
	require.NoError(t, err)

	store.deleteErr = errors.New("bucket offline")
	require.NoError(t, env.media.DeleteMedia(env.ctx, user.ID, media.ID), "payload delete is best-effort")

	require.NoError(t, env.db.Model(&models.MediaUpload{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestMediaService_SetFlag(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "flag@example.com")

	input := upload("selfie.png", "image/png", "png")
	input.UserID = user.ID
	media, err := env.media.Upload(env.ctx, input)
	require.NoError(t, err)

	flagged, err := env.media.SetFlag(env.ctx, media.ID, true, "spam")
	require.NoError(t, err)
	assert.True(t, flagged.IsFlagged)
	assert.Equal(t, "spam", flagged.FlagReason)

	cleared, err := env.media.SetFlag(env.ctx, media.ID, false, "")
	require.NoError(t, err)
	assert.False(t, cleared.IsFlagged)
	assert.Empty(t, cleared.FlagReason)

	_, err = env.media.SetFlag(env.ctx, "missing", true, "")
	assert.ErrorIs(t, err, ErrMediaNotFound)
}
