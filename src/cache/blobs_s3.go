package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ironsmile/artframe/src/config"
)

// S3Blobs stores blobs as objects in an S3 compatible bucket. A single
// PutObject is atomic so readers never see partial blobs.
type S3Blobs struct {
	client *minio.Client
	bucket string
	region string
	prefix string

	mu          sync.Mutex
	bucketReady bool
}

// NewS3Blobs returns Blobs stored in the bucket described by cfg. The bucket
// is created on first use when it does not exist.
func NewS3Blobs(cfg config.S3) (*S3Blobs, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(
			strings.TrimSpace(cfg.AccessKey),
			strings.TrimSpace(cfg.SecretKey),
			"",
		),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	prefix := strings.Trim(strings.TrimSpace(cfg.Prefix), "/")
	if prefix != "" {
		prefix += "/"
	}

	return &S3Blobs{
		client: client,
		bucket: bucket,
		region: region,
		prefix: prefix,
	}, nil
}

// ensureBucket creates the bucket when it does not exist. Only a successful
// check is remembered so that a failing one is repeated on the next use.
func (b *S3Blobs) ensureBucket(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bucketReady {
		return nil
	}

	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return err
	}
	if !exists {
		err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{
			Region: b.region,
		})
		if err != nil {
			return err
		}
	}

	b.bucketReady = true
	return nil
}

func (b *S3Blobs) objectKey(key string) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("invalid blob key `%s`", key)
	}
	return b.prefix + key + blobExt, nil
}

// Write implements Blobs.
func (b *S3Blobs) Write(ctx context.Context, key string, data []byte) error {
	objKey, err := b.objectKey(key)
	if err != nil {
		return err
	}
	if err := b.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	_, err = b.client.PutObject(
		ctx,
		b.bucket,
		objKey,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/jpeg"},
	)
	if err != nil {
		return fmt.Errorf("putting object: %w", err)
	}

	return nil
}

// Read implements Blobs.
func (b *S3Blobs) Read(ctx context.Context, key string) ([]byte, error) {
	objKey, err := b.objectKey(key)
	if err != nil {
		return nil, err
	}
	if err := b.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	obj, err := b.client.GetObject(ctx, b.bucket, objKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, notFoundOr(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, notFoundOr(err)
	}

	return data, nil
}

// Exists implements Blobs.
func (b *S3Blobs) Exists(ctx context.Context, key string) (bool, error) {
	objKey, err := b.objectKey(key)
	if err != nil {
		return false, err
	}
	if err := b.ensureBucket(ctx); err != nil {
		return false, fmt.Errorf("ensure bucket: %w", err)
	}

	_, err = b.client.StatObject(ctx, b.bucket, objKey, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}

	if err := notFoundOr(err); errors.Is(err, ErrBlobNotFound) {
		return false, nil
	}
	return false, err
}

// Remove implements Blobs.
func (b *S3Blobs) Remove(ctx context.Context, key string) error {
	objKey, err := b.objectKey(key)
	if err != nil {
		return err
	}
	if err := b.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	err = b.client.RemoveObject(ctx, b.bucket, objKey, minio.RemoveObjectOptions{})
	if err != nil && !errors.Is(notFoundOr(err), ErrBlobNotFound) {
		return fmt.Errorf("removing object: %w", err)
	}

	return nil
}

// Keys implements Blobs.
func (b *S3Blobs) Keys(ctx context.Context) ([]string, error) {
	if err := b.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	var keys []string
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{
		Prefix:    b.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}

		name := strings.TrimPrefix(obj.Key, b.prefix)
		key := strings.TrimSuffix(name, blobExt)
		if key == name || !validKey(key) {
			continue
		}
		keys = append(keys, key)
	}

	return keys, nil
}

func notFoundOr(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return ErrBlobNotFound
	}
	return err
}
