package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/basebackend-server/internal/model"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr     error
	putKey     string
	putSize    int64
	putOptions minioLib.PutObjectOptions

	getRC  io.ReadCloser
	getErr error

	removeErr error
	removed   string

	statErr error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}

func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, _ io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putKey, f.putSize, f.putOptions = key, size, opts
	return minioLib.UploadInfo{Key: key, Size: size}, f.putErr
}

func (f *fakeMinio) GetObject(_ context.Context, _ string, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}

func (f *fakeMinio) RemoveObject(_ context.Context, _ string, key string, _ minioLib.RemoveObjectOptions) error {
	f.removed = key
	return f.removeErr
}

func (f *fakeMinio) StatObject(_ context.Context, _ string, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

func TestNewClientWithAPI(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket exists", func(t *testing.T) {
		api := &fakeMinio{bucketExists: true}
		c, err := NewClientWithAPI(ctx, api, "b")
		require.NoError(t, err)
		assert.Equal(t, "b", c.bucket)
		assert.Empty(t, api.madeBucket)
	})

	t.Run("creates bucket", func(t *testing.T) {
		api := &fakeMinio{}
		_, err := NewClientWithAPI(ctx, api, "bucket")
		require.NoError(t, err)
		assert.Equal(t, "bucket", api.madeBucket)
	})

	t.Run("check error", func(t *testing.T) {
		c, err := NewClientWithAPI(ctx, &fakeMinio{bucketExistsErr: errors.New("boom")}, "bucket")
		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to ensure bucket exists")
	})

	t.Run("create error", func(t *testing.T) {
		c, err := NewClientWithAPI(ctx, &fakeMinio{makeBucketErr: errors.New("fail")}, "bucket")
		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create bucket")
	})
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b"}
		err := c.Upload(ctx, "files/k", bytes.NewReader([]byte("data")), 4, "text/plain")
		require.NoError(t, err)
		assert.Equal(t, "files/k", api.putKey)
		assert.Equal(t, int64(4), api.putSize)
		assert.Equal(t, "text/plain", api.putOptions.ContentType)
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{putErr: errors.New("put-fail")}, bucket: "b"}
		err := c.Upload(ctx, "k", bytes.NewReader([]byte("data")), 4, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{getRC: io.NopCloser(bytes.NewReader([]byte("abc")))}
		c := &Client{api: api, bucket: "b"}
		rc, err := c.Download(ctx, "k")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), data)
	})

	t.Run("missing key", func(t *testing.T) {
		api := &fakeMinio{statErr: minioLib.ErrorResponse{Code: errCodeNoSuchKey}}
		c := &Client{api: api, bucket: "b"}
		rc, err := c.Download(ctx, "absent")
		assert.Nil(t, rc)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("stat error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{statErr: errors.New("stat-fail")}, bucket: "b"}
		_, err := c.Download(ctx, "k")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to stat object")
	})

	t.Run("get error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{getErr: errors.New("get-fail")}, bucket: "b"}
		rc, err := c.Download(ctx, "k")
		assert.Nil(t, rc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get object")
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b"}
		require.NoError(t, c.Delete(ctx, "k"))
		assert.Equal(t, "k", api.removed)
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{removeErr: errors.New("remove-fail")}, bucket: "b"}
		err := c.Delete(ctx, "k")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete object")
	})
}

func TestClient_Ping(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, (&Client{api: &fakeMinio{bucketExists: true}, bucket: "b"}).Ping(ctx))
	assert.Error(t, (&Client{api: &fakeMinio{}, bucket: "b"}).Ping(ctx))
	assert.Error(t, (&Client{api: &fakeMinio{bucketExistsErr: errors.New("down")}, bucket: "b"}).Ping(ctx))
}

func TestNew_InvalidEndpoint(t *testing.T) {
	_, err := New(context.Background(), Options{Endpoint: "localhost:9000/nested/path", Bucket: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create minio client")
}
