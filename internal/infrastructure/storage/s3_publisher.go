package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	ledgerapp "github.com/ledgeranchor/backend/internal/application/ledger"
	"github.com/ledgeranchor/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// s3API is the subset of the S3 client used by the publisher
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3AnchorPublisher writes anchor manifests as JSON objects to an
// S3-compatible bucket (AWS S3, MinIO, RustFS).
type S3AnchorPublisher struct {
	client s3API
	bucket string
	prefix string
	logger *zap.Logger
}

// S3AnchorPublisherOption is a functional option for configuring S3AnchorPublisher
type S3AnchorPublisherOption func(*S3AnchorPublisher)

// WithLogger sets a custom logger for S3AnchorPublisher
func WithLogger(logger *zap.Logger) S3AnchorPublisherOption {
	return func(p *S3AnchorPublisher) {
		p.logger = logger
	}
}

// NewS3AnchorPublisher creates a publisher from storage configuration
func NewS3AnchorPublisher(ctx context.Context, cfg *config.StorageConfig, opts ...S3AnchorPublisherOption) (*S3AnchorPublisher, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage access key and secret key are required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	endpoint := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return newS3AnchorPublisher(client, cfg.Bucket, cfg.Prefix, opts...), nil
}

func newS3AnchorPublisher(client s3API, bucket, prefix string, opts ...S3AnchorPublisherOption) *S3AnchorPublisher {
	p := &S3AnchorPublisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// normalizeEndpoint adds a scheme to bare host:port endpoints. An empty
// endpoint keeps the SDK's AWS resolution.
func normalizeEndpoint(endpoint string, useSSL bool) string {
	if endpoint == "" || strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// ObjectKey returns <prefix>/<org>/<period>/<anchor>.json
func (p *S3AnchorPublisher) ObjectKey(manifest ledgerapp.AnchorManifest) string {
	return path.Join(p.prefix, manifest.OrgID.String(), manifest.Period, manifest.AnchorID.String()+".json")
}

// Publish uploads the manifest and returns its s3:// location as external reference
func (p *S3AnchorPublisher) Publish(ctx context.Context, manifest ledgerapp.AnchorManifest) (*ledgerapp.PublishResult, error) {
	if manifest.AnchorID == uuid.Nil {
		return nil, errors.New("anchor id is required")
	}
	body, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to encode anchor manifest: %w", err)
	}

	key := p.ObjectKey(manifest)
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"commitment":  manifest.Commitment,
			"entry-count": fmt.Sprint(manifest.EntryCount),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload anchor manifest %s: %w", key, err)
	}

	ref := fmt.Sprintf("s3://%s/%s", p.bucket, key)
	p.logger.Info("Anchor manifest published",
		zap.String("anchor_id", manifest.AnchorID.String()),
		zap.String("ref", ref),
	)
	return &ledgerapp.PublishResult{ExternalRef: ref, AnchorTxRef: simulatedTxRef()}, nil
}

// EnsureBucket creates the bucket if it does not exist
func (p *S3AnchorPublisher) EnsureBucket(ctx context.Context) error {
	_, err := p.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(p.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	p.logger.Info("Creating anchor bucket", zap.String("bucket", p.bucket))
	_, err = p.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(p.bucket)})
	var alreadyOwned *types.BucketAlreadyOwnedByYou
	if err != nil && !errors.As(err, &alreadyOwned) {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

var _ ledgerapp.AnchorPublisher = (*S3AnchorPublisher)(nil)
