package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/veritasai/veritas-backend/errors"
	"github.com/veritasai/veritas-backend/internal/domain/entities"
)

type fakeObjectStore struct {
	buckets map[string]bool
	objects map[string]string
	opts    map[string]minio.PutObjectOptions
	putErr  error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		buckets: map[string]bool{},
		objects: map[string]string{},
		opts:    map[string]minio.PutObjectOptions{},
	}
}

func (f *fakeObjectStore) BucketExists(_ context.Context, bucket string) (bool, error) {
	return f.buckets[bucket], nil
}

func (f *fakeObjectStore) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.buckets[bucket] = true
	return nil
}

func (f *fakeObjectStore) PutObject(_ context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[bucket+"/"+key] = string(data)
	f.opts[key] = opts
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

func TestEmailArchive_CreatesBucketAndUploads(t *testing.T) {
	store := newFakeObjectStore()
	archive := newEmailArchive(store, "veritas-emails")
	require.NoError(t, archive.ensureBucket(context.Background()))
	assert.True(t, store.buckets["veritas-emails"])

	email := entities.NewPendingEmail(uuid.New(), "a@example.com", "f@example.com", "Subject", "<html>body</html>")
	key, err := archive.Archive(context.Background(), email)
	require.NoError(t, err)

	assert.Equal(t, "emails/"+email.MeetingID.String()+"/"+email.ID.String()+".html", key)
	assert.Equal(t, "<html>body</html>", store.objects["veritas-emails/"+key])
	assert.Equal(t, "text/html; charset=utf-8", store.opts[key].ContentType)
	assert.Equal(t, "a@example.com", store.opts[key].UserMetadata["recipient"])
}

func TestEmailArchive_UploadError(t *testing.T) {
	store := newFakeObjectStore()
	store.putErr = errors.New("access denied")
	archive := newEmailArchive(store, "veritas-emails")

	_, err := archive.Archive(context.Background(), entities.NewPendingEmail(uuid.New(), "a@example.com", "f", "s", "h"))

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_INTEGRATION_STORAGE_FAILED, appErr.Code)
	assert.ErrorContains(t, err, "access denied")
}
