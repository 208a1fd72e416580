package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

var (
	ErrDisabled      = errors.New("photo storage not configured")
	ErrPhotoNotFound = errors.New("photo not found")
	ErrInvalidKey    = errors.New("invalid object key")
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Prefix    string
}

func (c S3Config) complete() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// PhotoStore keeps gallery photo blobs in an S3 bucket. A store built from
// an incomplete config is disabled and every call returns ErrDisabled.
type PhotoStore struct {
	client s3Client
	bucket string
	prefix string
}

func NewPhotoStore(cfg S3Config) *PhotoStore {
	if !cfg.complete() {
		return &PhotoStore{}
	}
	return &PhotoStore{
		client: newS3Client(cfg),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

func (p *PhotoStore) Enabled() bool {
	return p.client != nil
}

// NewKey returns a fresh object key that keeps the extension of filename.
func NewKey(filename string) string {
	return uuid.NewString() + strings.ToLower(path.Ext(filename))
}

// Put uploads body under key.
func (p *PhotoStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	if !p.Enabled() {
		return ErrDisabled
	}
	objKey, err := p.objectKey(key)
	if err != nil {
		return err
	}
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(objKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload photo: %w", err)
	}
	return nil
}

// Photo is an open photo object. The caller must close Body.
type Photo struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// Open streams the object stored under key.
func (p *PhotoStore) Open(ctx context.Context, key string) (*Photo, error) {
	if !p.Enabled() {
		return nil, ErrDisabled
	}
	objKey, err := p.objectKey(key)
	if err != nil {
		return nil, err
	}
	out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("download photo: %w", err)
	}
	return &Photo{
		Body:          out.Body,
		ContentType:   aws.ToString(out.ContentType),
		ContentLength: aws.ToInt64(out.ContentLength),
	}, nil
}

// Delete removes the object stored under key.
func (p *PhotoStore) Delete(ctx context.Context, key string) error {
	if !p.Enabled() {
		return ErrDisabled
	}
	objKey, err := p.objectKey(key)
	if err != nil {
		return err
	}
	_, err = p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}

// objectKey places key under the store's prefix. Keys are single path
// segments so a caller can never address objects outside the prefix.
func (p *PhotoStore) objectKey(key string) (string, error) {
	if !ValidKey(key) {
		return "", ErrInvalidKey
	}
	if p.prefix == "" {
		return key, nil
	}
	return p.prefix + "/" + key, nil
}

// ValidKey reports whether key is a single, non-relative path segment.
func ValidKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, "/\\")
}
