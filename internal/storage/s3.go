package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"kitchen-guide/internal/model"
)

// s3Store uploads images to an S3 bucket under an uploads/ prefix.
// Credentials are resolved from the ambient environment.
type s3Store struct {
	client   *s3.Client
	bucket   string
	region   string
	maxBytes int64
	logger   zerolog.Logger
}

// NewS3Store creates an S3-backed image store.
func NewS3Store(ctx context.Context, bucket, region string, maxBytes int64, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "s3-store").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 image store initialised")

	return &s3Store{
		client:   s3.NewFromConfig(cfg),
		bucket:   bucket,
		region:   region,
		maxBytes: maxBytes,
		logger:   logger,
	}, nil
}

// Save uploads the content to uploads/<uuid>.<ext> and returns the
// fully-qualified object URL.
func (s *s3Store) Save(ctx context.Context, content []byte, originalFilename string) (string, error) {
	ext, err := validate(content, originalFilename, s.maxBytes)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("uploads/%s.%s", uuid.New(), ext)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(ContentType(originalFilename)),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to upload object to S3")
		return "", fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}

	s.logger.Debug().
		Str("bucket", s.bucket).
		Str("key", key).
		Int("bytes", len(content)).
		Msg("object uploaded to S3")

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
