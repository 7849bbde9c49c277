package registry

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starui-dev/star/internal/errors"
)

type fakeS3 struct {
	objects map[string]string
	keys    []string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, aws.ToString(in.Bucket)+"/"+key)
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(body))}, nil
}

func TestS3Catalog(t *testing.T) {
	ctx := context.Background()
	api := &fakeS3{objects: map[string]string{
		"ui/v1/manifest.json":        testManifest,
		"ui/v1/components/utils.py":  "def cn(): ...\n",
		"ui/v1/components/button.py": "from .utils import cn\n",
	}}
	c := NewS3(api, "acme-registry", "ui/v1")
	assert.Equal(t, "s3://acme-registry/ui/v1", c.Location())

	names, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"button", "ghost", "utils"}, names)

	src, err := c.Source(ctx, "button")
	require.NoError(t, err)
	assert.Equal(t, "from .utils import cn\n", src)

	_, err = c.Source(ctx, "ghost")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	assert.Equal(t, []string{
		"acme-registry/ui/v1/manifest.json",
		"acme-registry/ui/v1/components/button.py",
		"acme-registry/ui/v1/components/ghost.py",
	}, api.keys)
}

func TestS3MissingManifest(t *testing.T) {
	_, err := NewS3(&fakeS3{}, "empty", "").List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrRegistry)
}

// isolateAWS keeps the default AWS configuration chain away from the
// machine's profiles, credentials and instance metadata.
func isolateAWS(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "aws-config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "aws-credentials"))
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
}

func TestS3Config(t *testing.T) {
	ctx := context.Background()
	static := aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{AccessKeyID: "AKID", SecretAccessKey: "secret", Source: "test"}, nil
	})
	failing := aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{}, stderrors.New("no credentials in chain")
	})

	tests := []struct {
		name       string
		in         aws.Config
		wantRegion string
		wantAnon   bool
	}{
		{name: "defaults", in: aws.Config{}, wantRegion: DefaultS3Region, wantAnon: true},
		{name: "chain credentials kept", in: aws.Config{Region: "eu-west-1", Credentials: static}, wantRegion: "eu-west-1"},
		{name: "empty chain is anonymous", in: aws.Config{Credentials: failing}, wantRegion: DefaultS3Region, wantAnon: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := s3Config(ctx, tt.in)
			assert.Equal(t, tt.wantRegion, cfg.Region)
			_, anon := cfg.Credentials.(aws.AnonymousCredentials)
			assert.Equal(t, tt.wantAnon, anon)
		})
	}
}

func TestNewS3ClientUsesSharedConfig(t *testing.T) {
	dir := t.TempDir()
	isolateAWS(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aws-config"), []byte("[profile registry]\nregion = ap-south-1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aws-credentials"), []byte("[registry]\naws_access_key_id = AKID\naws_secret_access_key = secret\n"), 0644))
	t.Setenv("AWS_PROFILE", "registry")

	client, err := NewS3Client(context.Background())
	require.NoError(t, err)

	opts := client.Options()
	assert.Equal(t, "ap-south-1", opts.Region)
	creds, err := opts.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKID", creds.AccessKeyID)
}
