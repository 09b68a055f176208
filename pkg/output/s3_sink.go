package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// S3Config describes the bucket a render is uploaded to
type S3Config struct {
	Bucket    string
	Key       string
	Region    string
	Endpoint  string // Empty for AWS, set for S3-compatible stores
	AccessKey string
	SecretKey string
}

// Enabled reports whether an upload target was configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// NewS3Client creates an S3 client with static credentials and path-style addressing
func NewS3Client(cfg S3Config) (*s3.S3, error) {
	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("create S3 session: %w", err)
	}
	return s3.New(sess), nil
}

// S3Sink uploads the encoded frame to a bucket on every flush
type S3Sink struct {
	client s3iface.S3API
	bucket string
	key    string
	format Format
	logger core.Logger
}

// NewS3Sink creates a sink uploading to bucket/key. The format follows the key's extension.
func NewS3Sink(client s3iface.S3API, bucket, key string, logger core.Logger) (*S3Sink, error) {
	if bucket == "" || key == "" {
		return nil, errors.New("S3 sink needs a bucket and a key")
	}
	format, err := FormatFromPath(key)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &S3Sink{client: client, bucket: bucket, key: key, format: format, logger: logger}, nil
}

// Flush implements renderer.FrameSink. Each upload is bounded only by UploadTimeout;
// use Upload to tie it to a caller's context.
func (s *S3Sink) Flush(width, height int, pixels []byte) error {
	return s.Upload(context.Background(), width, height, pixels)
}

// Upload encodes the frame and puts it to bucket/key, giving up when ctx is done
// or after UploadTimeout
func (s *S3Sink) Upload(ctx context.Context, width, height int, pixels []byte) error {
	img, err := ToImage(width, height, pixels)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, s.format); err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(buf.Len())
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(s.format.ContentType()),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", s.key, err)
	}

	s.logger.Printf("Uploaded s3://%s/%s (%d bytes)\n", s.bucket, s.key, size)
	return nil
}
