package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apperrors "github.com/veritasai/veritas-backend/errors"
	"github.com/veritasai/veritas-backend/internal/domain/entities"
	"github.com/veritasai/veritas-backend/pkg/config"
)

const htmlContentType = "text/html; charset=utf-8"

// objectStore is the subset of the MinIO client used by the archive
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// EmailArchive stores a copy of every generated email body in a bucket
type EmailArchive struct {
	client objectStore
	bucket string
}

// NewEmailArchive connects to MinIO and makes sure the bucket exists
func NewEmailArchive(ctx context.Context, cfg *config.StorageConfig) (*EmailArchive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperrors.ErrStorageFailed("create client", err)
	}

	archive := newEmailArchive(minioClient, cfg.BucketName)
	if err := archive.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return archive, nil
}

func newEmailArchive(client objectStore, bucket string) *EmailArchive {
	return &EmailArchive{client: client, bucket: bucket}
}

// ensureBucket creates the bucket if it does not exist
func (a *EmailArchive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return apperrors.ErrStorageFailed("check bucket", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return apperrors.ErrStorageFailed("create bucket", err)
	}
	return nil
}

// ObjectKey returns where an email body is stored
func ObjectKey(email *entities.EmailNotification) string {
	return fmt.Sprintf("emails/%s/%s.html", email.MeetingID, email.ID)
}

// Archive uploads the email's HTML body and returns its object key
func (a *EmailArchive) Archive(ctx context.Context, email *entities.EmailNotification) (string, error) {
	key := ObjectKey(email)
	_, err := a.client.PutObject(ctx, a.bucket, key, strings.NewReader(email.HTMLContent), int64(len(email.HTMLContent)), minio.PutObjectOptions{
		ContentType: htmlContentType,
		UserMetadata: map[string]string{
			"recipient":  email.RecipientEmail,
			"meeting-id": email.MeetingID.String(),
		},
	})
	if err != nil {
		return "", apperrors.ErrStorageFailed("upload email", err)
	}
	return key, nil
}
