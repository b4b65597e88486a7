package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"pocketcoach/backend/internal/config"
	"pocketcoach/backend/internal/platform/logger"
)

// s3Storage implements PhotoStorage using an S3-compatible backend.
type s3Storage struct {
	client        *s3.Client        // put and delete
	presignClient *s3.PresignClient // presigned GET URLs
	bucketName    string
	log           *logger.Logger
}

// NewS3Storage creates a new S3 storage service instance. A custom endpoint (MinIO, Spaces, ...)
// switches the client to path-style addressing.
func NewS3Storage(ctx context.Context, cfg config.S3Config, log *logger.Logger) (PhotoStorage, error) {
	opts := []func(*awsCfg.LoadOptions) error{awsCfg.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	// Load AWS configuration; static keys win over the default credential chain
	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	// Create the S3 client
	endpoint := strings.TrimSpace(cfg.Endpoint)
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true // required by MinIO and most S3-compatible services
		}
	})

	log.Info("S3 photo storage initialized", "endpoint", endpoint, "bucket", cfg.BucketName)

	return &s3Storage{
		client:        s3Client,
		presignClient: s3.NewPresignClient(s3Client), // presign client built from the regular client
		bucketName:    cfg.BucketName,
		log:           log,
	}, nil
}

func (s *s3Storage) PutObject(ctx context.Context, objectKey, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		s.log.Error("Failed to put object", "key", objectKey, "bucket", s.bucketName, "error", err)
		return err
	}
	return nil
}

// GeneratePresignedDownloadURL creates a temporary URL for downloading (GET).
func (s *s3Storage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		s.log.Error("Failed to presign GET URL", "key", objectKey, "error", err)
		return "", err
	}
	return req.URL, nil
}

// DeleteObject removes an object from the S3 bucket.
func (s *s3Storage) DeleteObject(ctx context.Context, objectKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		s.log.Error("Failed to delete object", "key", objectKey, "bucket", s.bucketName, "error", err)
		return err
	}
	s.log.Info("Deleted object", "key", objectKey, "bucket", s.bucketName)
	return nil
}
