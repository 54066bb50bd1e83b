// Package storage uploads and downloads objects from S3 compatible storage
// (AWS S3 or Cloudflare R2).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/muhammadolammi/resumeascode/internal/logger"
)

var ErrNotConfigured = errors.New("object storage is not configured")

// Config selects the bucket and credentials. When AccountID is set the R2
// endpoint for that account is used.
type Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccountID string `mapstructure:"account_id"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

func (c Config) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.AccountID != "" {
		return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
	}
	return ""
}

func (c Config) region() string {
	if c.Region != "" {
		return c.Region
	}
	if c.AccountID != "" {
		return "auto"
	}
	return "us-east-1"
}

// S3API is the subset of the S3 client used here.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store reads and writes objects in one bucket.
type Store struct {
	client   S3API
	bucket   string
	attempts uint
	delay    time.Duration
}

// New builds a Store from cfg. Static credentials are used when both keys
// are set; otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, ErrNotConfigured
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.region())}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}

	endpoint := cfg.endpoint()
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return NewWithClient(client, cfg.Bucket), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client S3API, bucket string) *Store {
	return &Store{client: client, bucket: bucket, attempts: 3, delay: 500 * time.Millisecond}
}

// Bucket names the bucket objects are stored in.
func (s *Store) Bucket() string { return s.bucket }

// Download fetches key, retrying transient failures.
func (s *Store) Download(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.retry(ctx, "download", key, func() error {
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return errors.Wrap(err, "failed to get object")
		}
		defer out.Body.Close()

		data, err = io.ReadAll(out.Body)
		return errors.Wrap(err, "failed to read object body")
	})
	return data, err
}

// Upload stores body under key.
func (s *Store) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	return s.retry(ctx, "upload", key, func() error {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String(contentType),
		})
		return errors.Wrap(err, "failed to put object")
	})
}

func (s *Store) retry(ctx context.Context, op, key string, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.G(ctx).WithError(err).
				WithField("operation", op).
				WithField("key", key).
				WithField("attempt", n+1).
				Warn("retrying object storage request")
		}),
	)
}

// PublishKey is the object key of a built artifact: resumes/<profile>/<file>.
func PublishKey(profile, file string) string {
	return path.Join("resumes", profile, filepath.Base(file))
}

// ContentType guesses the content type from the file extension.
func ContentType(file string) string {
	if t := mime.TypeByExtension(filepath.Ext(file)); t != "" {
		return t
	}
	return "application/octet-stream"
}
