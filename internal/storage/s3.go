// Package storage is the object store for profile avatars and chat image
// attachments. Blobs live in two buckets ("avatars", "chat-images") and are
// served by public URL; the database only carries the URL.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobStore is what the services depend on; *S3Store implements it.
type BlobStore interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error)
	Remove(ctx context.Context, bucket string, keys []string) error
	// KeyFromURL recovers the object key from a public URL previously
	// returned by Upload. Empty string if the URL is not ours.
	KeyFromURL(bucket, url string) string
}

type S3Store struct {
	client    *s3.Client
	publicURL string
}

type Options struct {
	Region string
	// Endpoint overrides the AWS endpoint (MinIO and friends); empty
	// means real S3.
	Endpoint  string
	PublicURL string
}

func NewS3Store(ctx context.Context, opts Options) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:    client,
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s/%s: %w", bucket, key, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, bucket, key), nil
}

func (s *S3Store) Remove(ctx context.Context, bucket string, keys []string) error {
	for _, key := range keys {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return fmt.Errorf("delete object %s/%s: %w", bucket, key, err)
		}
	}
	return nil
}

func (s *S3Store) KeyFromURL(bucket, url string) string {
	prefix := fmt.Sprintf("%s/%s/", s.publicURL, bucket)
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}
