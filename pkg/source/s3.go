package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of the S3 API used by S3.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config configures the S3 source. Tags follow pkg/config conventions.
type S3Config struct {
	Bucket      string `env:"S3_BUCKET"`
	Region      string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID string `env:"S3_ACCESS_KEY_ID"`
	SecretKey   string `env:"S3_SECRET_KEY"`

	// Endpoint and ForcePathStyle are for S3-compatible services such as MinIO.
	Endpoint       string `env:"S3_ENDPOINT"`
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// S3Option configures the S3 source.
type S3Option func(*s3Options)

type s3Options struct {
	client     S3Client
	httpClient *http.Client
}

// WithS3Client uses a pre-configured client, mostly for tests.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) { o.client = client }
}

// WithHTTPClient sets the HTTP client used by the AWS SDK.
func WithHTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) { o.httpClient = client }
}

// S3 reads record files from a bucket.
type S3 struct {
	client S3Client
	bucket string
}

// NewS3 builds an S3 source from static config, falling back to the default
// AWS credential chain when no keys are given.
func NewS3(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &s3Options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.client != nil {
		return &S3{client: o.client, bucket: cfg.Bucket}, nil
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		))
	}
	if o.httpClient != nil {
		loadOpts = append(loadOpts, config.WithHTTPClient(o.httpClient))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
	}

	client := s3.NewFromConfig(awsCfg, func(so *s3.Options) {
		if cfg.Endpoint != "" {
			so.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		so.UsePathStyle = cfg.ForcePathStyle
	})
	return &S3{client: client, bucket: cfg.Bucket}, nil
}

// Open fetches the object stored under path.
func (s *S3) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	key := strings.TrimPrefix(path, "/")
	if key == "" || strings.Contains(key, "..") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err, key)
	}
	return out.Body, nil
}

func classifyS3Error(err error, key string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: get %s", ErrOperationTimeout, key)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: get %s", ErrOperationCanceled, key)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		case "NoSuchBucket":
			return ErrBucketNotFound
		case "AccessDenied":
			return fmt.Errorf("%w: get %s", ErrAccessDenied, key)
		case "SlowDown", "ServiceUnavailable":
			return fmt.Errorf("%w: get %s", ErrServiceUnavailable, key)
		default:
			return fmt.Errorf("get %s failed (code: %s): %w", key, apiErr.ErrorCode(), err)
		}
	}
	return fmt.Errorf("%w: %v", ErrFailedToOpen, err)
}
