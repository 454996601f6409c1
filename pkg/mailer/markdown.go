package mailer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Body is a pair of alternative bodies for one message.
type Body struct {
	HTML string
	Text string
}

// Markdown converts a markdown document into an HTML body.
// The markdown source itself is kept as the text alternative.
func Markdown(source []byte) (Body, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(source, &buf); err != nil {
		return Body{}, fmt.Errorf("%w: %v", ErrMarkdownFailed, err)
	}

	return Body{
		HTML: buf.String(),
		Text: string(source),
	}, nil
}
