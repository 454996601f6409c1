package attachment

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/plunk/pkg/contenttype"
	"github.com/dmitrymomot/plunk/pkg/mailer"
)

// DefaultMaxSize caps a single attachment. Plunk rejects oversized mail with 413 anyway.
const DefaultMaxSize = 10 << 20

// Loader reads an attachment from a source reference.
type Loader interface {
	Load(ctx context.Context, source string) (mailer.Attachment, error)
}

// Source describes one attachment to load.
// ContentID marks it inline; Filename overrides the name derived from Ref.
type Source struct {
	Ref       string `yaml:"source"`
	Filename  string `yaml:"filename"`
	ContentID string `yaml:"content_id"`
}

// Resolver dispatches sources to loaders by URL scheme.
// References without a scheme go to the "file" loader.
type Resolver struct {
	loaders map[string]Loader
}

// NewResolver creates a resolver with a file loader registered.
func NewResolver(maxSize int64) *Resolver {
	return &Resolver{
		loaders: map[string]Loader{"file": NewFileLoader(maxSize)},
	}
}

// Register adds or replaces the loader for scheme.
func (r *Resolver) Register(scheme string, l Loader) *Resolver {
	r.loaders[strings.ToLower(scheme)] = l
	return r
}

// Load implements Loader.
func (r *Resolver) Load(ctx context.Context, source string) (mailer.Attachment, error) {
	scheme := "file"
	if u, err := url.Parse(source); err == nil && len(u.Scheme) > 1 {
		scheme = strings.ToLower(u.Scheme)
	}

	l, ok := r.loaders[scheme]
	if !ok {
		return mailer.Attachment{}, fmt.Errorf("%w: %s", ErrUnsupported, scheme)
	}
	return l.Load(ctx, source)
}

// LoadAll loads sources concurrently and returns attachments in source order.
// The first failure cancels the remaining loads.
func LoadAll(ctx context.Context, l Loader, sources []Source) ([]mailer.Attachment, error) {
	out := make([]mailer.Attachment, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, src := range sources {
		g.Go(func() error {
			a, err := l.Load(ctx, src.Ref)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Ref, err)
			}
			if src.Filename != "" {
				a.Filename = src.Filename
				a.ContentType = contenttype.Detect(a.Filename, a.Content)
			}
			a.ContentID = src.ContentID
			out[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// readLimited reads r fully, failing with ErrTooLarge past maxSize bytes.
func readLimited(r io.Reader, maxSize int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	if int64(len(data)) > maxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
