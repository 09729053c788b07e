// Package s3 implements capability.ObjectStore against an S3-compatible
// bucket: standard AWS SDK v2 client construction, per-object locking, and
// download-modify-reupload emulation of Append (S3 has no native append).
//
// This lives outside the translator's core by design — the object-store
// transport is an external collaborator the core reaches only through the
// capability.ObjectStore interface. Retry/backoff policy here is this
// package's own transport concern, not a core behavior the Adaptor adds on
// top of it.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/lattixfs/s3adaptor/internal/logger"
	"github.com/lattixfs/s3adaptor/internal/telemetry"
)

// Config configures the S3-backed ObjectStore.
type Config struct {
	// Client is a pre-constructed S3 client. If nil, New builds one from
	// Endpoint/Region/AccessKeyID/SecretAccessKey/ForcePathStyle.
	Client *s3.Client

	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	ForcePathStyle  bool

	// Bucket is the bucket all objects are read from and written to.
	Bucket string

	// KeyPrefix is prepended to every object name, letting multiple
	// adaptors share one bucket.
	KeyPrefix string

	// MaxRetries is the number of retries for transient errors beyond the
	// first attempt (default 3).
	MaxRetries uint

	// InitialBackoff is the delay before the first retry (default 100ms);
	// subsequent retries back off exponentially up to MaxBackoff.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// ObjectStore implements capability.ObjectStore against S3.
type ObjectStore struct {
	client    *s3.Client
	bucket    string
	keyPrefix string

	maxRetries     uint
	initialBackoff time.Duration
	maxBackoff     time.Duration

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New constructs an ObjectStore, building an S3 client from cfg if one was
// not supplied.
func New(ctx context.Context, cfg Config) (*ObjectStore, error) {
	client := cfg.Client
	if client == nil {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		)
		if err != nil {
			return nil, fmt.Errorf("objectstore/s3: load aws config: %w", err)
		}
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	if cfg.Bucket == "" {
		return nil, fmt.Errorf("objectstore/s3: bucket is required")
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}
	initialBackoff := cfg.InitialBackoff
	if initialBackoff == 0 {
		initialBackoff = 100 * time.Millisecond
	}
	maxBackoff := cfg.MaxBackoff
	if maxBackoff == 0 {
		maxBackoff = 2 * time.Second
	}

	return &ObjectStore{
		client:         client,
		bucket:         cfg.Bucket,
		keyPrefix:      cfg.KeyPrefix,
		maxRetries:     maxRetries,
		initialBackoff: initialBackoff,
		maxBackoff:     maxBackoff,
		locks:          make(map[string]*sync.Mutex),
	}, nil
}

func (o *ObjectStore) key(name string) string {
	if o.keyPrefix == "" {
		return name
	}
	return o.keyPrefix + "/" + name
}

func (o *ObjectStore) objectLock(name string) *sync.Mutex {
	o.locksMu.Lock()
	defer o.locksMu.Unlock()
	l, ok := o.locks[name]
	if !ok {
		l = &sync.Mutex{}
		o.locks[name] = l
	}
	return l
}

// Upload implements capability.ObjectStore: a fresh PutObject, replacing
// whatever was previously stored at name.
func (o *ObjectStore) Upload(ctx context.Context, name string, data []byte) (int, error) {
	ctx, span := telemetry.StartObjectStoreSpan(ctx, "upload", name, telemetry.Bucket(o.bucket), telemetry.Bytes(len(data)))
	defer span.End()

	key := o.key(name)
	err := o.withRetry(ctx, "upload", key, func() error {
		_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(o.bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(data),
		})
		return err
	})
	if err != nil {
		telemetry.RecordError(ctx, err)
		return 0, err
	}
	return len(data), nil
}

// Append implements capability.ObjectStore. S3 objects are immutable, so
// this emulates append with a locked download-modify-reupload: the existing
// object is read in full, data is concatenated, and the result replaces the
// object under a per-name lock that serializes concurrent appenders.
func (o *ObjectStore) Append(ctx context.Context, name string, data []byte) (int, error) {
	ctx, span := telemetry.StartObjectStoreSpan(ctx, "append", name, telemetry.Bucket(o.bucket), telemetry.Bytes(len(data)))
	defer span.End()

	lock := o.objectLock(name)
	lock.Lock()
	defer lock.Unlock()

	key := o.key(name)

	var existing []byte
	err := o.withRetry(ctx, "append-read", key, func() error {
		out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(o.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return err
		}
		defer out.Body.Close()
		existing, err = io.ReadAll(out.Body)
		return err
	})
	if err != nil {
		err = fmt.Errorf("objectstore/s3: append read %q: %w", name, err)
		telemetry.RecordError(ctx, err)
		return 0, err
	}

	merged := make([]byte, 0, len(existing)+len(data))
	merged = append(merged, existing...)
	merged = append(merged, data...)

	err = o.withRetry(ctx, "append-write", key, func() error {
		_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(o.bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(merged),
		})
		return err
	})
	if err != nil {
		err = fmt.Errorf("objectstore/s3: append write %q: %w", name, err)
		telemetry.RecordError(ctx, err)
		return 0, err
	}

	return len(data), nil
}

// Download implements capability.ObjectStore, issuing a GetObject with an
// HTTP Range header to fetch exactly [offset, offset+length).
func (o *ObjectStore) Download(ctx context.Context, name string, dst []byte, offset, length uint64) (int, error) {
	ctx, span := telemetry.StartObjectStoreSpan(ctx, "download", name, telemetry.Bucket(o.bucket), telemetry.Offset(offset), telemetry.Length(length))
	defer span.End()

	key := o.key(name)
	rangeHeader := fmt.Sprintf("bytes=%d-%d", offset, offset+length-1)

	var n int
	err := o.withRetry(ctx, "download", key, func() error {
		out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(o.bucket),
			Key:    aws.String(key),
			Range:  aws.String(rangeHeader),
		})
		if err != nil {
			return err
		}
		defer out.Body.Close()
		n, err = io.ReadFull(out.Body, dst[:length])
		if err == io.ErrUnexpectedEOF {
			err = nil
		}
		return err
	})
	if err != nil {
		err = fmt.Errorf("objectstore/s3: download %q: %w", name, err)
		telemetry.RecordError(ctx, err)
		return 0, err
	}
	return n, nil
}

func (o *ObjectStore) withRetry(ctx context.Context, op, key string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= int(o.maxRetries); attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Min(
				float64(o.initialBackoff)*math.Pow(2, float64(attempt-1)),
				float64(o.maxBackoff),
			))
			logger.Debug("objectstore/s3 retrying", logger.Attempt(attempt), logger.MaxRetries(int(o.maxRetries)), logger.ObjectName(key))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
		logger.Debug("objectstore/s3 transient error", logger.ObjectName(key), logger.Err(lastErr))
	}
	return fmt.Errorf("%s: exceeded %d retries: %w", op, o.maxRetries, lastErr)
}

// isRetryable reports whether err is worth retrying: throttling and
// server-side API errors are, as are errors that carry no API error code
// (such as transport failures); other API errors (missing object, bad
// request) and context cancellation are not.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "Throttling", "ThrottlingException", "RequestThrottled", "SlowDown",
			"ProvisionedThroughputExceededException", "InternalError", "ServiceUnavailable":
			return true
		default:
			return false
		}
	}

	return true
}
