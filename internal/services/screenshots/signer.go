package screenshots

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

const defaultSignedURLTTL = 5 * time.Minute

var ErrValidation = errors.New("validation error")

// S3Signer presigns short-lived GET URLs for screenshot objects so the
// console can render images from the private bucket.
type S3Signer struct {
	client *minio.Client
	bucket string
}

func NewS3Signer(client *minio.Client, bucket string) *S3Signer {
	return &S3Signer{
		client: client,
		bucket: strings.TrimSpace(bucket),
	}
}

func (s *S3Signer) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("s3 client is nil")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrValidation
	}
	// Keys that already are URLs pass through untouched.
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key, nil
	}
	if ttl <= 0 {
		ttl = defaultSignedURLTTL
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign get object: %w", err)
	}
	return presigned.String(), nil
}
