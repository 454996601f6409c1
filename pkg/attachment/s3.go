package attachment

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/plunk/pkg/contenttype"
	"github.com/dmitrymomot/plunk/pkg/mailer"
)

// S3Config holds S3-compatible storage configuration for attachment sources.
// Endpoint and PathStyle are only needed for MinIO and similar services.
type S3Config struct {
	AccessKey string `env:"ATTACHMENTS_S3_ACCESS_KEY"`
	SecretKey string `env:"ATTACHMENTS_S3_SECRET_KEY"`
	Region    string `env:"ATTACHMENTS_S3_REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"ATTACHMENTS_S3_ENDPOINT"`
	PathStyle bool   `env:"ATTACHMENTS_S3_PATH_STYLE"`
	MaxSize   int64  `env:"ATTACHMENTS_MAX_SIZE"`
}

// Enabled reports whether credentials are configured.
func (c S3Config) Enabled() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

// objectGetter is the subset of *s3.Client used by S3Loader.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Loader reads attachments referenced as s3://bucket/key.
type S3Loader struct {
	client  objectGetter
	maxSize int64
}

// NewS3Loader creates an S3Loader with static credentials.
func NewS3Loader(cfg S3Config) (*S3Loader, error) {
	if !cfg.Enabled() {
		return nil, ErrInvalidConfig
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return newS3Loader(s3.New(s3.Options{}, opts...), cfg.MaxSize), nil
}

func newS3Loader(client objectGetter, maxSize int64) *S3Loader {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &S3Loader{client: client, maxSize: maxSize}
}

// Load fetches the object and uses the stored content type when present.
func (l *S3Loader) Load(ctx context.Context, source string) (mailer.Attachment, error) {
	bucket, key, err := parseS3Source(source)
	if err != nil {
		return mailer.Attachment{}, err
	}

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return mailer.Attachment{}, wrapS3Error(err)
	}
	defer out.Body.Close()

	if out.ContentLength != nil && *out.ContentLength > l.maxSize {
		return mailer.Attachment{}, ErrTooLarge
	}

	content, err := readLimited(out.Body, l.maxSize)
	if err != nil {
		return mailer.Attachment{}, err
	}

	name := path.Base(key)
	contentType := contenttype.Normalize(aws.ToString(out.ContentType))
	if contentType == "" || contentType == contenttype.OctetStream {
		contentType = contenttype.Detect(name, content)
	}

	return mailer.Attachment{
		Filename:    name,
		ContentType: contentType,
		Content:     content,
	}, nil
}

func parseS3Source(source string) (bucket, key string, err error) {
	u, err := url.Parse(source)
	if err != nil || !strings.EqualFold(u.Scheme, "s3") {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidSource, source)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidSource, source)
	}
	return u.Host, key, nil
}
