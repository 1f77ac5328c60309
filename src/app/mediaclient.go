package app

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ClientMinio is the slice of the minio client the media gateway uses.
type ClientMinio interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (info minio.UploadInfo, err error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// StoredObject is what the media host hands back after a successful upload.
type StoredObject struct {
	URL      string
	ObjectID string
	Size     int64
}

// MediaStore is the gateway to the external host keeping the actual image
// bytes. Store failure aborts the caller; Destroy failure is non-fatal and
// the caller is expected to log and continue.
type MediaStore interface {
	Store(ctx context.Context, object io.Reader, size int64, contentType, folder string) (*StoredObject, error)
	Destroy(ctx context.Context, objectID string) error
}

// MinioMediaClient stores binaries in an S3-compatible bucket.
type MinioMediaClient struct {
	endpoint   string
	publicBase string
	useSSL     bool
	bucketName string
	client     ClientMinio
}

var contentTypeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
	"image/tiff": ".tiff",
}

// NewMinioMediaClient creates a media gateway backed by the given
// S3-compatible endpoint. publicBase overrides the URL base objects are
// served from; empty means the endpoint itself.
func NewMinioMediaClient(endpoint, accessKeyID, secretAccessKey, bucketName, publicBase string, useSSL bool) (*MinioMediaClient, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	if publicBase == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s", scheme, endpoint)
	}

	return &MinioMediaClient{
		endpoint:   endpoint,
		publicBase: strings.TrimRight(publicBase, "/"),
		useSSL:     useSSL,
		bucketName: bucketName,
		client:     minioClient,
	}, nil
}

// Store uploads the object under folder/<random><ext> and returns its
// durable URL and deletion handle.
func (m *MinioMediaClient) Store(ctx context.Context, object io.Reader, size int64, contentType, folder string) (*StoredObject, error) {
	objectID := path.Join(folder, uuid.NewString()+contentTypeExtensions[contentType])

	info, err := m.client.PutObject(ctx, m.bucketName, objectID, object, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("%w: can not upload object: %v", ErrUpstream, err)
	}

	return &StoredObject{
		URL:      fmt.Sprintf("%s/%s/%s", m.publicBase, m.bucketName, objectID),
		ObjectID: objectID,
		Size:     info.Size,
	}, nil
}

// Destroy removes the object from the bucket.
func (m *MinioMediaClient) Destroy(ctx context.Context, objectID string) error {
	err := m.client.RemoveObject(ctx, m.bucketName, objectID, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("%w: can not remove object %s: %v", ErrUpstream, objectID, err)
	}
	return nil
}
