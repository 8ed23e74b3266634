package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Options struct {
	Bucket    string
	Key       string
	Endpoint  string // R2 or MinIO endpoint; empty means AWS
	AccessKey string
	SecretKey string
}

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Loader reads the catalog export, a JSON array of records, from an
// S3-compatible bucket.
type S3Loader struct {
	client objectGetter
	bucket string
	key    string
}

func NewS3Loader(ctx context.Context, opts S3Options) (*S3Loader, error) {
	if opts.Bucket == "" || opts.Key == "" {
		return nil, fmt.Errorf("s3 catalog needs both bucket and key")
	}
	client, err := newS3Client(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &S3Loader{client: client, bucket: opts.Bucket, key: opts.Key}, nil
}

func newS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
			o.Region = "auto"
		}
	})
	return client, nil
}

func (l *S3Loader) Source() string { return "s3" }

func (l *S3Loader) Load(ctx context.Context) ([]Record, error) {
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.key),
	})
	if err != nil {
		return nil, fmt.Errorf("could not fetch s3://%s/%s: %w", l.bucket, l.key, err)
	}
	defer out.Body.Close()

	var records []Record
	if err := json.NewDecoder(out.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode s3://%s/%s: %w", l.bucket, l.key, err)
	}
	return records, nil
}
