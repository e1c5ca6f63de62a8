package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"tripwise/internal/archive"
	"tripwise/internal/config"
	"tripwise/internal/port"
)

// Uploader is the subset of manager.Uploader used by Archive.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Archive stores extraction records as JSON objects in a bucket.
type Archive struct {
	uploader Uploader
	bucket   string
	prefix   string
}

// NewArchive creates an S3-backed ExtractionArchive.
func NewArchive(cfg *config.S3Config, prefix string) (*Archive, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return NewArchiveWithUploader(manager.NewUploader(client), cfg.Bucket, prefix), nil
}

// NewArchiveWithUploader creates an archive over a custom uploader (for testing).
func NewArchiveWithUploader(u Uploader, bucket, prefix string) *Archive {
	return &Archive{uploader: u, bucket: bucket, prefix: prefix}
}

func (a *Archive) Store(ctx context.Context, rec *port.ExtractionRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling extraction record: %w", err)
	}

	_, err = a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(archive.ObjectKey(a.prefix, rec)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 upload: %w", err)
	}
	return nil
}
