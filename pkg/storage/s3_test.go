package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/storage"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func newS3(t *testing.T, client storage.S3Client, cfg storage.S3Config) *storage.S3Storage {
	t.Helper()
	if cfg.Bucket == "" {
		cfg.Bucket = "qr"
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	s, err := storage.NewS3Storage(context.Background(), cfg, storage.WithS3Client(client))
	require.NoError(t, err)
	return s
}

func keyIs(key string) any {
	return mock.MatchedBy(func(in any) bool {
		switch v := in.(type) {
		case *s3.PutObjectInput:
			return *v.Bucket == "qr" && *v.Key == key
		case *s3.GetObjectInput:
			return *v.Bucket == "qr" && *v.Key == key
		case *s3.HeadObjectInput:
			return *v.Bucket == "qr" && *v.Key == key
		case *s3.DeleteObjectInput:
			return *v.Bucket == "qr" && *v.Key == key
		}
		return false
	})
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	_, err := storage.NewS3Storage(context.Background(), storage.S3Config{Region: "x"})
	assert.True(t, errors.Is(err, storage.ErrInvalidConfig))

	client := &MockS3Client{}
	s := newS3(t, client, storage.S3Config{Region: "eu-west-1"})
	assert.Equal(t, "https://qr.s3.eu-west-1.amazonaws.com/a/b.png", s.URL("/a/b.png"))

	s = newS3(t, client, storage.S3Config{Endpoint: "http://minio:9000/"})
	assert.Equal(t, "http://minio:9000/qr/a.png", s.URL("a.png"))

	s = newS3(t, client, storage.S3Config{BaseURL: "https://cdn.example.com"})
	assert.Equal(t, "https://cdn.example.com/a.png", s.URL("a.png"))
}

func TestS3Storage_Put(t *testing.T) {
	t.Parallel()

	t.Run("uploads bytes", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			body, _ := io.ReadAll(in.Body)
			return *in.Key == "qrcodes/u/1.png" && *in.ContentType == "image/png" &&
				*in.ContentLength == 3 && string(body) == "png"
		})).Return(&s3.PutObjectOutput{}, nil)

		s := newS3(t, client, storage.S3Config{BaseURL: "https://cdn/"})
		obj, err := s.Put(context.Background(), "/qrcodes/u/1.png", []byte("png"), "image/png")
		require.NoError(t, err)
		assert.Equal(t, &storage.Object{
			Key:         "qrcodes/u/1.png",
			Size:        3,
			ContentType: "image/png",
			URL:         "https://cdn/qrcodes/u/1.png",
		}, obj)
		client.AssertExpectations(t)
	})

	t.Run("rejects traversal without calling S3", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		s := newS3(t, client, storage.S3Config{})
		_, err := s.Put(context.Background(), "../x.png", []byte("x"), "image/png")
		assert.True(t, errors.Is(err, storage.ErrInvalidPath))
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
	})

	t.Run("classifies access denied", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, keyIs("x.png")).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})
		s := newS3(t, client, storage.S3Config{})
		_, err := s.Put(context.Background(), "x.png", []byte("x"), "")
		assert.True(t, errors.Is(err, storage.ErrAccessDenied))
	})

	t.Run("upload timeout", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, keyIs("slow.png")).
			Return(nil, context.DeadlineExceeded)
		s, err := storage.NewS3Storage(context.Background(),
			storage.S3Config{Bucket: "qr", Region: "us-east-1"},
			storage.WithS3Client(client),
			storage.WithS3UploadTimeout(time.Second),
		)
		require.NoError(t, err)
		_, err = s.Put(context.Background(), "slow.png", []byte("x"), "image/png")
		assert.True(t, errors.Is(err, storage.ErrOperationTimeout))
	})
}

func TestS3Storage_Get(t *testing.T) {
	t.Parallel()

	client := &MockS3Client{}
	client.On("GetObject", mock.Anything, keyIs("a.png")).
		Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("data"))}, nil)
	client.On("GetObject", mock.Anything, keyIs("missing.png")).
		Return(nil, &types.NoSuchKey{})
	client.On("GetObject", mock.Anything, keyIs("nobucket.png")).
		Return(nil, &types.NoSuchBucket{})

	s := newS3(t, client, storage.S3Config{})

	data, err := s.Get(context.Background(), "a.png")
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	_, err = s.Get(context.Background(), "missing.png")
	assert.True(t, errors.Is(err, storage.ErrObjectNotFound))

	_, err = s.Get(context.Background(), "nobucket.png")
	assert.True(t, errors.Is(err, storage.ErrBucketNotFound))
}

func TestS3Storage_Delete(t *testing.T) {
	t.Parallel()

	t.Run("existing object", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("HeadObject", mock.Anything, keyIs("a.png")).Return(&s3.HeadObjectOutput{}, nil)
		client.On("DeleteObject", mock.Anything, keyIs("a.png")).Return(&s3.DeleteObjectOutput{}, nil)

		s := newS3(t, client, storage.S3Config{})
		require.NoError(t, s.Delete(context.Background(), "a.png"))
		client.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("HeadObject", mock.Anything, keyIs("gone.png")).Return(nil, &types.NotFound{})

		s := newS3(t, client, storage.S3Config{})
		err := s.Delete(context.Background(), "gone.png")
		assert.True(t, errors.Is(err, storage.ErrObjectNotFound))
		client.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
	})
}

func TestS3Storage_Exists(t *testing.T) {
	t.Parallel()

	client := &MockS3Client{}
	client.On("HeadObject", mock.Anything, keyIs("yes.png")).Return(&s3.HeadObjectOutput{}, nil)
	client.On("HeadObject", mock.Anything, keyIs("no.png")).Return(nil, &types.NotFound{})

	s := newS3(t, client, storage.S3Config{})
	assert.True(t, s.Exists(context.Background(), "yes.png"))
	assert.False(t, s.Exists(context.Background(), "no.png"))
	assert.False(t, s.Exists(context.Background(), "../no.png"))
}
