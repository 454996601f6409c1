package attachment

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/plunk/pkg/mailer"
)

type stubLoader struct {
	calls atomic.Int32
	fail  string
}

func (s *stubLoader) Load(_ context.Context, source string) (mailer.Attachment, error) {
	s.calls.Add(1)
	if source == s.fail {
		return mailer.Attachment{}, ErrNotFound
	}
	name := source[strings.LastIndex(source, "/")+1:]
	return mailer.Attachment{Filename: name, Content: []byte(source)}, nil
}

func TestResolver_DispatchesByScheme(t *testing.T) {
	t.Parallel()

	s3 := &stubLoader{}
	r := NewResolver(0).Register("S3", s3)

	a, err := r.Load(context.Background(), "s3://bucket/report.pdf")

	require.NoError(t, err)
	require.Equal(t, "report.pdf", a.Filename)
	require.EqualValues(t, 1, s3.calls.Load())
}

func TestResolver_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	_, err := NewResolver(0).Load(context.Background(), "gs://bucket/file.txt")

	require.ErrorIs(t, err, ErrUnsupported)
}

func TestResolver_PlainPathUsesFileLoader(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "note.txt", []byte("note"))

	a, err := NewResolver(0).Load(context.Background(), path)

	require.NoError(t, err)
	require.Equal(t, "note.txt", a.Filename)
}

func TestLoadAll_PreservesOrderAndOverrides(t *testing.T) {
	t.Parallel()

	loader := &stubLoader{}
	sources := []Source{
		{Ref: "mem://a/first.txt"},
		{Ref: "mem://a/logo.png", ContentID: "<logo@example.com>"},
		{Ref: "mem://a/raw", Filename: "renamed.csv"},
	}

	got, err := LoadAll(context.Background(), loader, sources)

	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "first.txt", got[0].Filename)
	require.False(t, got[0].Inline())
	require.Equal(t, "logo.png", got[1].Filename)
	require.Equal(t, "<logo@example.com>", got[1].ContentID)
	require.Equal(t, "renamed.csv", got[2].Filename)
	require.Equal(t, "text/csv", got[2].ContentType)
}

func TestLoadAll_ReturnsFirstError(t *testing.T) {
	t.Parallel()

	loader := &stubLoader{fail: "mem://a/broken.txt"}
	sources := []Source{{Ref: "mem://a/ok.txt"}, {Ref: "mem://a/broken.txt"}}

	got, err := LoadAll(context.Background(), loader, sources)

	require.Nil(t, got)
	require.True(t, errors.Is(err, ErrNotFound))
	require.Contains(t, err.Error(), "mem://a/broken.txt")
}
