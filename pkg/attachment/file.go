package attachment

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/plunk/pkg/contenttype"
	"github.com/dmitrymomot/plunk/pkg/mailer"
)

// FileLoader reads attachments from the local filesystem.
type FileLoader struct {
	maxSize int64
}

// NewFileLoader creates a FileLoader. A non-positive maxSize uses DefaultMaxSize.
func NewFileLoader(maxSize int64) *FileLoader {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &FileLoader{maxSize: maxSize}
}

// Load reads a path or file:// URL.
func (l *FileLoader) Load(_ context.Context, source string) (mailer.Attachment, error) {
	path := strings.TrimPrefix(source, "file://")
	if path == "" {
		return mailer.Attachment{}, ErrInvalidSource
	}

	f, err := os.Open(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return mailer.Attachment{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		case errors.Is(err, fs.ErrPermission):
			return mailer.Attachment{}, fmt.Errorf("%w: %s", ErrAccessDenied, path)
		}
		return mailer.Attachment{}, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	defer f.Close()

	content, err := readLimited(f, l.maxSize)
	if err != nil {
		return mailer.Attachment{}, err
	}

	name := filepath.Base(path)
	return mailer.Attachment{
		Filename:    name,
		ContentType: contenttype.Detect(name, content),
		Content:     content,
	}, nil
}
