package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"time"

	"givehope/domain"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3-style presigned URLs cannot outlive seven days, so longer configured
// lifetimes are clamped instead of failing every upload.
const maxSignedURLTTL = 7 * 24 * time.Hour

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// Config carries the bucket connection settings read from the environment.
type Config struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	UseSSL       bool
	SignedURLTTL time.Duration
}

// Bucket stores attachments in an object bucket and mints signed retrieval
// URLs. The client is created once at process start and shared after that.
type Bucket struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
	nowMs  func() int64
}

func NewBucket(cfg Config) (*Bucket, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to object storage: %w", err)
	}
	ttl := cfg.SignedURLTTL
	if ttl <= 0 || ttl > maxSignedURLTTL {
		ttl = maxSignedURLTTL
	}
	return &Bucket{
		client: client,
		bucket: cfg.Bucket,
		ttl:    ttl,
		nowMs:  func() int64 { return time.Now().UnixMilli() },
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet. Run once at
// startup; safe to repeat.
func (b *Bucket) EnsureBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("error creating bucket: %w", err)
	}
	return nil
}

// Upload stores the file under a collision-resistant key and returns the
// attachment as readers will see it: original name, signed URL, MIME type,
// size. The storage key never leaves this package.
func (b *Bucket) Upload(ctx context.Context, name, contentType string, size int64, r io.Reader) (domain.Attachment, error) {
	key := objectKey(b.nowMs(), name)

	// non-clobbering: the timestamp prefix should make collisions impossible,
	// but refuse to overwrite rather than trust that
	_, err := b.client.StatObject(ctx, b.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return domain.Attachment{}, fmt.Errorf("object %q already exists", key)
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return domain.Attachment{}, fmt.Errorf("error checking object: %w", err)
	}

	_, err = b.client.PutObject(ctx, b.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("error storing object: %w", err)
	}

	signed, err := b.client.PresignedGetObject(ctx, b.bucket, key, b.ttl, url.Values{})
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("error signing object URL: %w", err)
	}

	return domain.Attachment{
		Name: name,
		URL:  signed.String(),
		Type: contentType,
		Size: size,
	}, nil
}

// objectKey prefixes the sanitized original filename with a millisecond
// timestamp. Sanitization strips path and special characters so the name can
// be embedded in a storage key.
func objectKey(nowMs int64, name string) string {
	return fmt.Sprintf("%d_%s", nowMs, unsafeKeyChars.ReplaceAllString(name, "_"))
}
