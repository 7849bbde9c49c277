package registry

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/starui-dev/star/internal/output"
)

// DefaultS3Region is used when no region is configured.
const DefaultS3Region = "us-east-1"

// ObjectGetter is the subset of the S3 API the registry needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3 returns a Client reading from bucket under prefix.
func NewS3(api ObjectGetter, bucket, prefix string) *Catalog {
	return NewCatalog(&s3Fetcher{api: api, bucket: bucket, prefix: prefix},
		"s3://"+path.Join(bucket, prefix))
}

// NewS3Client creates an S3 client from the SDK's default configuration
// chain: environment, shared config and profiles, SSO, web identity and
// instance metadata. When the chain holds no credentials the client makes
// anonymous requests, which works for public buckets.
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(s3Config(ctx, cfg)), nil
}

// s3Config fills in the default region and falls back to anonymous
// credentials when none can be retrieved.
func s3Config(ctx context.Context, cfg aws.Config) aws.Config {
	if cfg.Region == "" {
		cfg.Region = DefaultS3Region
	}
	if cfg.Credentials == nil {
		cfg.Credentials = aws.AnonymousCredentials{}
		return cfg
	}
	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		output.Debug("no AWS credentials, using anonymous access", "err", err)
		cfg.Credentials = aws.AnonymousCredentials{}
	}
	return cfg
}

type s3Fetcher struct {
	api    ObjectGetter
	bucket string
	prefix string
}

func (f *s3Fetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	key := path.Join(f.prefix, name)

	out, err := f.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("s3://%s/%s: %w", f.bucket, key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func isS3NotFound(err error) bool {
	var nsk *types.NoSuchKey
	if stderrors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
