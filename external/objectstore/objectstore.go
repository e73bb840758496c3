//go:generate mockgen -destination=../../api/mocks/objectstore.go -package=mocks github.com/bitmark-inc/health-metrics-api/external/objectstore ObjectStore

package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

const (
	logPrefix       = "objectstore"
	noSuchKeyCode   = "NoSuchKey"
	CSVContentType  = "text/csv"
	defaultMimeType = "application/octet-stream"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStore - interface to read and write objects of one bucket
type ObjectStore interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Config - connection settings of an s3 compatible storage
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
}

type objectStore struct {
	client *minio.Client
	bucket string
}

// New - new ObjectStore interface
func New(cfg Config) (ObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":   logPrefix,
			"endpoint": cfg.Endpoint,
			"error":    err,
		}).Error("new s3 client")

		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	return &objectStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Get returns a reader of the object content
func (s *objectStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"bucket": s.bucket,
		"key":    key,
	}).Info("get object")

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("s3 get object: %w", err)
	}

	// GetObject is lazy, a missing key only shows up on the first request
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if isNotFound(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("s3 stat object: %w", err)
	}

	return obj, nil
}

// Put uploads data under key
func (s *objectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = defaultMimeType
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"bucket": s.bucket,
		"key":    key,
		"size":   len(data),
	}).Info("put object")

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}

	return nil
}

func isNotFound(err error) bool {
	return minio.ToErrorResponse(err).Code == noSuchKeyCode
}
