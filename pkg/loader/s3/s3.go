package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/project-simone/simone/internal/util"
	"github.com/project-simone/simone/pkg/loader"
)

const readAttempts = 3

// ObjectAPI is the subset of *s3.Client used by the loader.
type ObjectAPI interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3EpisodeLoader is an EpisodeFileLoader that reads episode analyses from
// an S3 bucket, optionally restricted to a key prefix. It uses the AWS SDK
// v2 for Go and works with S3 compatible stores such as MinIO.
type S3EpisodeLoader struct {
	bucket string
	prefix string
	client ObjectAPI
	cache  *loader.ReadCache

	retryBackoff time.Duration
}

// NewS3EpisodeLoaderWithClient creates a loader around an existing client.
// This is useful to reuse a preconfigured AWS client.
func NewS3EpisodeLoaderWithClient(bucket, prefix string, client ObjectAPI) *S3EpisodeLoader {
	return &S3EpisodeLoader{
		bucket: bucket,
		prefix: prefix,
		client: client,
		cache:  loader.NewReadCache(),

		retryBackoff: 200 * time.Millisecond,
	}
}

// NewS3EpisodeLoaderParams defines the configuration for NewS3EpisodeLoader.
//
// Endpoint allows overriding the S3 endpoint for S3 compatible storage.
// AccessKey and SecretKey provide static credentials.
type NewS3EpisodeLoaderParams struct {
	Bucket    string
	Prefix    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3EpisodeLoader creates a loader with its own S3 client using static
// credentials and path style addressing.
func NewS3EpisodeLoader(ctx context.Context, params NewS3EpisodeLoaderParams) (*S3EpisodeLoader, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(params.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			params.AccessKey,
			params.SecretKey,
			"",
		)),
	}
	if params.Endpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(params.Endpoint))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return NewS3EpisodeLoaderWithClient(params.Bucket, params.Prefix, client), nil
}

// List returns the keys of all episode files below the prefix, sorted.
func (l *S3EpisodeLoader) List(ctx context.Context) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(l.bucket),
	}
	if l.prefix != "" {
		input.Prefix = aws.String(l.prefix)
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(l.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects with prefix %q: %w", l.prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if loader.IsEpisodeFile(key) {
				keys = append(keys, key)
			}
		}
	}

	sort.Strings(keys)
	return keys, nil
}

// Read fetches the object stored under key, retrying transient failures.
// Results are cached until Refresh is called.
func (l *S3EpisodeLoader) Read(ctx context.Context, key string) ([]byte, error) {
	return l.cache.Get(key, func() ([]byte, error) {
		return util.RetryWithContext(ctx, readAttempts, l.retryBackoff, func(ctx context.Context) ([]byte, error) {
			return l.fetch(ctx, key)
		})
	})
}

func (l *S3EpisodeLoader) fetch(ctx context.Context, key string) ([]byte, error) {
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from S3: %w", key, err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return buf.Bytes(), nil
}

// Refresh drops cached object contents.
func (l *S3EpisodeLoader) Refresh() {
	l.cache.Reset()
}
