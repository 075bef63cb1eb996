package file_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/htmlsaver/pkg/file"
)

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

func newS3Storage(t *testing.T, client *MockS3Client) *file.S3Storage {
	t.Helper()
	storage, err := file.NewS3Storage(context.Background(), file.S3Config{
		Bucket: "snapshots",
		Region: "us-east-1",
	}, file.WithS3Client(client))
	require.NoError(t, err)
	return storage
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	for _, cfg := range []file.S3Config{
		{Region: "us-east-1"},
		{Bucket: "snapshots"},
	} {
		_, err := file.NewS3Storage(context.Background(), cfg, file.WithS3Client(&MockS3Client{}))
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	}
}

func TestS3Storage_Put(t *testing.T) {
	t.Parallel()

	t.Run("uploads content with type", func(t *testing.T) {
		t.Parallel()

		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			body, err := io.ReadAll(in.Body)
			return err == nil &&
				*in.Bucket == "snapshots" &&
				*in.Key == "v1/home.html" &&
				*in.ContentType == "text/html" &&
				*in.ContentLength == int64(len("<p>hi</p>")) &&
				string(body) == "<p>hi</p>"
		})).Return(&s3.PutObjectOutput{}, nil).Once()

		storage := newS3Storage(t, client)
		require.NoError(t, storage.Put(context.Background(), "/v1/home.html", []byte("<p>hi</p>"), "text/html"))
		client.AssertExpectations(t)
	})

	t.Run("omits empty content type", func(t *testing.T) {
		t.Parallel()

		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return in.ContentType == nil
		})).Return(&s3.PutObjectOutput{}, nil).Once()

		storage := newS3Storage(t, client)
		require.NoError(t, storage.Put(context.Background(), "a.html", nil, ""))
		client.AssertExpectations(t)
	})

	t.Run("rejects invalid keys without calling s3", func(t *testing.T) {
		t.Parallel()

		client := &MockS3Client{}
		storage := newS3Storage(t, client)

		for _, key := range []string{"", "/", "../x.html", "a/../../x.html"} {
			assert.ErrorIs(t, storage.Put(context.Background(), key, []byte("x"), "text/html"), file.ErrInvalidPath)
		}
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
	})

	errCases := []struct {
		name string
		err  error
		want error
	}{
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}, file.ErrAccessDenied},
		{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, file.ErrServiceUnavailable},
		{"service unavailable", &smithy.GenericAPIError{Code: "ServiceUnavailable"}, file.ErrServiceUnavailable},
		{"request timeout", &smithy.GenericAPIError{Code: "RequestTimeout"}, file.ErrRequestTimeout},
		{"no such bucket", &types.NoSuchBucket{}, file.ErrBucketNotFound},
		{"deadline", context.DeadlineExceeded, file.ErrOperationTimeout},
		{"canceled", context.Canceled, file.ErrOperationCanceled},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := &MockS3Client{}
			client.On("PutObject", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			storage := newS3Storage(t, client)
			err := storage.Put(context.Background(), "a.html", []byte("x"), "text/html")
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("unknown api error keeps code", func(t *testing.T) {
		t.Parallel()

		client := &MockS3Client{}
		apiErr := &smithy.GenericAPIError{Code: "EntityTooLarge"}
		client.On("PutObject", mock.Anything, mock.Anything).Return(nil, apiErr).Once()

		storage := newS3Storage(t, client)
		err := storage.Put(context.Background(), "a.html", []byte("x"), "text/html")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EntityTooLarge")
		assert.ErrorAs(t, err, new(smithy.APIError))
	})

	t.Run("plain error is wrapped", func(t *testing.T) {
		t.Parallel()

		client := &MockS3Client{}
		plain := errors.New("connection reset")
		client.On("PutObject", mock.Anything, mock.Anything).Return(nil, plain).Once()

		storage := newS3Storage(t, client)
		assert.ErrorIs(t, storage.Put(context.Background(), "a.html", []byte("x"), "text/html"), plain)
	})
}

func TestS3Storage_ExistsDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := &MockS3Client{}
	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return *in.Key == "present.html"
	})).Return(&s3.HeadObjectOutput{}, nil)
	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return *in.Key == "missing.html"
	})).Return(nil, &types.NoSuchKey{})
	client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return *in.Key == "present.html" && *in.Bucket == "snapshots"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()

	storage := newS3Storage(t, client)

	assert.True(t, storage.Exists(ctx, "present.html"))
	assert.False(t, storage.Exists(ctx, "missing.html"))
	assert.False(t, storage.Exists(ctx, "../x"))

	require.NoError(t, storage.Delete(ctx, "present.html"))
	assert.ErrorIs(t, storage.Delete(ctx, "missing.html"), file.ErrFileNotFound)

	client.AssertExpectations(t)
}
