package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	ledgerapp "github.com/ledgeranchor/backend/internal/application/ledger"
	"github.com/ledgeranchor/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockS3API struct {
	mock.Mock
}

func (m *MockS3API) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3API) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadBucketOutput), args.Error(1)
}

func (m *MockS3API) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.CreateBucketOutput), args.Error(1)
}

func sampleManifest() ledgerapp.AnchorManifest {
	return ledgerapp.AnchorManifest{
		AnchorID:   uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"),
		OrgID:      uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002"),
		Period:     "2025-01",
		Commitment: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		EntryCount: 0,
		EntryIDs:   []string{},
		CreatedAt:  time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStubAnchorPublisher(t *testing.T) {
	p := NewStubAnchorPublisher()

	res, err := p.Publish(context.Background(), sampleManifest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ExternalRef, "sim_cid_"))
	assert.True(t, strings.HasPrefix(res.AnchorTxRef, "sim_anchor_"))

	again, err := p.Publish(context.Background(), sampleManifest())
	require.NoError(t, err)
	assert.NotEqual(t, res.ExternalRef, again.ExternalRef)

	_, err = p.Publish(context.Background(), ledgerapp.AnchorManifest{})
	assert.Error(t, err)
}

func TestS3AnchorPublisher_Publish(t *testing.T) {
	client := new(MockS3API)
	p := newS3AnchorPublisher(client, "ledger-anchors", "/anchors/")
	manifest := sampleManifest()
	wantKey := "anchors/bbbbbbbb-0000-0000-0000-000000000002/2025-01/aaaaaaaa-0000-0000-0000-000000000001.json"

	var uploaded ledgerapp.AnchorManifest
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "ledger-anchors" &&
			aws.ToString(in.Key) == wantKey &&
			aws.ToString(in.ContentType) == "application/json" &&
			in.Metadata["commitment"] == manifest.Commitment
	})).Run(func(args mock.Arguments) {
		in := args.Get(1).(*s3.PutObjectInput)
		body, _ := io.ReadAll(in.Body)
		_ = json.Unmarshal(body, &uploaded)
	}).Return(&s3.PutObjectOutput{}, nil)

	res, err := p.Publish(context.Background(), manifest)
	require.NoError(t, err)
	assert.Equal(t, "s3://ledger-anchors/"+wantKey, res.ExternalRef)
	assert.True(t, strings.HasPrefix(res.AnchorTxRef, "sim_anchor_"))
	assert.Equal(t, manifest.Commitment, uploaded.Commitment)
	assert.Equal(t, manifest.Period, uploaded.Period)
	client.AssertExpectations(t)
}

func TestS3AnchorPublisher_PublishError(t *testing.T) {
	client := new(MockS3API)
	p := newS3AnchorPublisher(client, "bucket", "", WithLogger(zap.NewNop()))
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := p.Publish(context.Background(), sampleManifest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestS3AnchorPublisher_EnsureBucket(t *testing.T) {
	t.Run("existing bucket", func(t *testing.T) {
		client := new(MockS3API)
		client.On("HeadBucket", mock.Anything, mock.Anything).Return(&s3.HeadBucketOutput{}, nil)

		require.NoError(t, newS3AnchorPublisher(client, "b", "").EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "CreateBucket", mock.Anything, mock.Anything)
	})

	t.Run("creates missing bucket", func(t *testing.T) {
		client := new(MockS3API)
		client.On("HeadBucket", mock.Anything, mock.Anything).Return(nil, &types.NotFound{})
		client.On("CreateBucket", mock.Anything, mock.Anything).Return(&s3.CreateBucketOutput{}, nil)

		require.NoError(t, newS3AnchorPublisher(client, "b", "").EnsureBucket(context.Background()))
		client.AssertExpectations(t)
	})

	t.Run("already owned is fine", func(t *testing.T) {
		client := new(MockS3API)
		client.On("HeadBucket", mock.Anything, mock.Anything).Return(nil, &types.NoSuchBucket{})
		client.On("CreateBucket", mock.Anything, mock.Anything).Return(nil, &types.BucketAlreadyOwnedByYou{})

		assert.NoError(t, newS3AnchorPublisher(client, "b", "").EnsureBucket(context.Background()))
	})

	t.Run("other head errors are returned", func(t *testing.T) {
		client := new(MockS3API)
		client.On("HeadBucket", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		assert.Error(t, newS3AnchorPublisher(client, "b", "").EnsureBucket(context.Background()))
	})
}

func TestNewS3AnchorPublisher_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := NewS3AnchorPublisher(ctx, nil)
	assert.Error(t, err)

	_, err = NewS3AnchorPublisher(ctx, &config.StorageConfig{AccessKey: "k", SecretKey: "s"})
	assert.ErrorContains(t, err, "bucket")

	_, err = NewS3AnchorPublisher(ctx, &config.StorageConfig{Bucket: "b"})
	assert.ErrorContains(t, err, "access key")

	p, err := NewS3AnchorPublisher(ctx, &config.StorageConfig{
		Bucket: "b", AccessKey: "k", SecretKey: "s", Endpoint: "localhost:9000", UsePathStyle: true, Prefix: "anchors",
	})
	require.NoError(t, err)
	assert.Equal(t, "anchors", p.prefix)
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "", normalizeEndpoint("", true))
	assert.Equal(t, "http://minio:9000", normalizeEndpoint("minio:9000", false))
	assert.Equal(t, "https://minio:9000", normalizeEndpoint("minio:9000", true))
	assert.Equal(t, "http://x", normalizeEndpoint("http://x", true))
}

func TestNewAnchorPublisher(t *testing.T) {
	ctx := context.Background()

	p, err := NewAnchorPublisher(ctx, &config.StorageConfig{Driver: DriverStub}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &StubAnchorPublisher{}, p)

	_, err = NewAnchorPublisher(ctx, &config.StorageConfig{Driver: "ipfs"}, zap.NewNop())
	assert.Error(t, err)
}
