// internal/storage/s3.go
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	appcfg "bayou-chat/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader stores an image payload and returns a stable reference for it.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// S3Uploader stores uploaded images in an S3-compatible bucket (AWS or MinIO).
type S3Uploader struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

func NewS3Uploader(ctx context.Context, cfg *appcfg.MediaConfig) (*S3Uploader, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
	}, nil
}

// storageKey spreads objects by date so buckets stay listable.
func storageKey() string {
	d := time.Now()
	return fmt.Sprintf("images/%d/%02d/%02d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Upload puts the payload in the bucket and returns its object URL.
func (u *S3Uploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	key := storageKey()

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %v", err)
	}

	if u.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", u.endpoint, u.bucket, key), nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key), nil
}

// DecodeDataURL splits a "data:<mediatype>;base64,<payload>" string into its
// raw bytes and content type. Returns ok=false for anything else (typically a
// plain URL that needs no upload).
func DecodeDataURL(s string) (data []byte, contentType string, ok bool) {
	if !strings.HasPrefix(s, "data:") {
		return nil, "", false
	}

	meta, payload, found := strings.Cut(s[len("data:"):], ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return nil, "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}

	return decoded, strings.TrimSuffix(meta, ";base64"), true
}
