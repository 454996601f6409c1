package attachment

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjectGetter struct {
	mock.Mock
}

func (m *mockObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func objectInput(bucket, key string) any {
	return mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Bucket) == bucket && aws.ToString(in.Key) == key
	})
}

func TestS3Loader_Load(t *testing.T) {
	t.Parallel()

	client := &mockObjectGetter{}
	client.On("GetObject", mock.Anything, objectInput("invoices", "2024/03/invoice.pdf")).Return(&s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader([]byte("%PDF-1.4"))),
		ContentType:   aws.String("application/pdf"),
		ContentLength: aws.Int64(8),
	}, nil)

	a, err := newS3Loader(client, 0).Load(context.Background(), "s3://invoices/2024/03/invoice.pdf")

	require.NoError(t, err)
	require.Equal(t, "invoice.pdf", a.Filename)
	require.Equal(t, "application/pdf", a.ContentType)
	require.Equal(t, []byte("%PDF-1.4"), a.Content)
	client.AssertExpectations(t)
}

func TestS3Loader_InfersGenericContentType(t *testing.T) {
	t.Parallel()

	client := &mockObjectGetter{}
	client.On("GetObject", mock.Anything, objectInput("assets", "logo.png")).Return(&s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader([]byte("png"))),
		ContentType: aws.String("binary/octet-stream; charset=binary"),
	}, nil)

	a, err := newS3Loader(client, 0).Load(context.Background(), "s3://assets/logo.png")

	require.NoError(t, err)
	require.Equal(t, "binary/octet-stream", a.ContentType)
}

func TestS3Loader_NotFound(t *testing.T) {
	t.Parallel()

	client := &mockObjectGetter{}
	client.On("GetObject", mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "missing"})

	_, err := newS3Loader(client, 0).Load(context.Background(), "s3://bucket/missing.txt")

	require.ErrorIs(t, err, ErrNotFound)
}

func TestS3Loader_AccessDenied(t *testing.T) {
	t.Parallel()

	client := &mockObjectGetter{}
	client.On("GetObject", mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})

	_, err := newS3Loader(client, 0).Load(context.Background(), "s3://bucket/secret.txt")

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestS3Loader_TooLarge(t *testing.T) {
	t.Parallel()

	client := &mockObjectGetter{}
	client.On("GetObject", mock.Anything, mock.Anything).Return(&s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(make([]byte, 64))),
		ContentLength: aws.Int64(64),
	}, nil)

	_, err := newS3Loader(client, 16).Load(context.Background(), "s3://bucket/big.bin")

	require.ErrorIs(t, err, ErrTooLarge)
}

func TestS3Loader_InvalidSource(t *testing.T) {
	t.Parallel()

	client := &mockObjectGetter{}
	loader := newS3Loader(client, 0)

	for _, src := range []string{"s3://bucket-only", "s3:///key", "https://bucket/key"} {
		_, err := loader.Load(context.Background(), src)
		require.ErrorIs(t, err, ErrInvalidSource, src)
	}
	client.AssertNotCalled(t, "GetObject")
}

func TestNewS3Loader_RequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := NewS3Loader(S3Config{Region: "eu-west-1"})

	require.ErrorIs(t, err, ErrInvalidConfig)
}
