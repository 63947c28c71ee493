// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/MKhiriev/go-dir-backup/internal/config"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
)

// s3API is the part of *s3.Client the storage uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3ArchiveStorage keeps archives as <token>/archive.enc objects in one bucket.
type s3ArchiveStorage struct {
	client s3API
	bucket string

	// spoolDir holds uploads while they are received; PutObject needs a
	// seekable body of known length.
	spoolDir string
	logger   *logger.Logger
}

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

func NewS3ArchiveStorage(ctx context.Context, cfg config.S3, spoolDir string, logger *logger.Logger) (ArchiveStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3ArchiveStorage(client, cfg.Bucket, spoolDir, logger)
}

func newS3ArchiveStorage(client s3API, bucket, spoolDir string, logger *logger.Logger) (ArchiveStorage, error) {
	if err := os.MkdirAll(spoolDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating spool dir: %w", err)
	}

	logger.Debug().Str("bucket", bucket).Msg("creating s3 archive storage")
	return &s3ArchiveStorage{client: client, bucket: bucket, spoolDir: spoolDir, logger: logger}, nil
}

// Save spools r to a local temp file, then puts it as one object. The
// previous object stays visible until the put succeeds.
func (s *s3ArchiveStorage) Save(ctx context.Context, token string, r io.Reader) (int64, error) {
	key, err := objectKey(token)
	if err != nil {
		return 0, err
	}

	spool, err := os.CreateTemp(s.spoolDir, "upload-*.part")
	if err != nil {
		return 0, fmt.Errorf("error creating spool file: %w", err)
	}
	defer func() {
		_ = spool.Close()
		_ = os.Remove(spool.Name())
	}()

	n, err := io.Copy(spool, contextReader{ctx: ctx, r: r})
	if err != nil {
		return n, fmt.Errorf("error spooling archive: %w", err)
	}
	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		return n, fmt.Errorf("error rewinding spool file: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          spool,
		ContentLength: aws.Int64(n),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return n, fmt.Errorf("error putting object: %w", err)
	}

	return n, nil
}

func (s *s3ArchiveStorage) Open(ctx context.Context, token string) (io.ReadCloser, int64, error) {
	key, err := objectKey(token)
	if err != nil {
		return nil, 0, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, 0, ErrArchiveNotFound
		}
		return nil, 0, fmt.Errorf("error getting object: %w", err)
	}

	return out.Body, aws.ToInt64(out.ContentLength), nil
}

func objectKey(token string) (string, error) {
	if token == "" || token == "." || token == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, token)
	}
	for _, r := range token {
		if r == '/' || r == '\\' {
			return "", fmt.Errorf("%w: %q", ErrInvalidKey, token)
		}
	}

	return token + "/" + ArchiveFileName, nil
}
