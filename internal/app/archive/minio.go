package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"voicescribe/internal/config"
)

// MinioArchiver uploads finished recordings to an S3-compatible bucket so
// the audio outlives the ephemeral local playback copies.
type MinioArchiver struct {
	client *minio.Client
	bucket string
}

// NewMinioArchiver creates the archiver and ensures the bucket exists.
// Returns (nil, nil) when no endpoint is configured: archiving is optional.
func NewMinioArchiver(ctx context.Context, settings *config.Settings) (*MinioArchiver, error) {
	if settings.MinioEndpoint == "" {
		return nil, nil
	}

	client, err := minio.New(settings.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(settings.MinioAccessKey, settings.MinioSecretKey, ""),
		Secure: settings.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, settings.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, settings.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioArchiver{client: client, bucket: settings.MinioBucket}, nil
}

// Archive stores the audio payload under a key derived from the entry id.
func (a *MinioArchiver) Archive(ctx context.Context, entryID string, data []byte, mimeType string) error {
	key := fmt.Sprintf("recordings/%s", entryID)

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: mimeType})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
