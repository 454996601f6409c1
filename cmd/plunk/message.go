package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/plunk"
	"github.com/dmitrymomot/plunk/pkg/attachment"
	"github.com/dmitrymomot/plunk/pkg/mailer"
	plunksender "github.com/dmitrymomot/plunk/pkg/mailer/plunk"
)

// message is a send request as read from a YAML file and command-line flags.
type message struct {
	From        string              `yaml:"from"`
	To          []string            `yaml:"to"`
	Cc          []string            `yaml:"cc"`
	Bcc         []string            `yaml:"bcc"`
	ReplyTo     string              `yaml:"reply_to"`
	Subject     string              `yaml:"subject"`
	Text        string              `yaml:"text"`
	HTML        string              `yaml:"html"`
	Body        string              `yaml:"body"`
	Category    string              `yaml:"category"`
	Headers     map[string]string   `yaml:"headers"`
	Attachments []attachment.Source `yaml:"attachments"`
	Template    string              `yaml:"template"`
	Variables   map[string]string   `yaml:"variables"`
}

func readMessageFile(path string) (message, error) {
	var m message

	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read message file: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse message file %s: %w", path, err)
	}

	// Relative body and attachment paths resolve against the file's directory.
	dir := filepath.Dir(path)
	if m.Body != "" && !filepath.IsAbs(m.Body) {
		m.Body = filepath.Join(dir, m.Body)
	}
	for i, src := range m.Attachments {
		if isLocalPath(src.Ref) && !filepath.IsAbs(src.Ref) {
			m.Attachments[i].Ref = filepath.Join(dir, src.Ref)
		}
	}
	return m, nil
}

func isLocalPath(ref string) bool {
	return ref != "" && !strings.Contains(ref, "://")
}

// merge overlays flag values on m. Scalars replace, lists append,
// maps merge key by key.
func (m *message) merge(o message) {
	setIf(&m.From, o.From)
	setIf(&m.ReplyTo, o.ReplyTo)
	setIf(&m.Subject, o.Subject)
	setIf(&m.Text, o.Text)
	setIf(&m.HTML, o.HTML)
	setIf(&m.Body, o.Body)
	setIf(&m.Category, o.Category)
	setIf(&m.Template, o.Template)

	m.To = append(m.To, o.To...)
	m.Cc = append(m.Cc, o.Cc...)
	m.Bcc = append(m.Bcc, o.Bcc...)
	m.Attachments = append(m.Attachments, o.Attachments...)

	if len(o.Headers) > 0 {
		if m.Headers == nil {
			m.Headers = make(map[string]string, len(o.Headers))
		}
		maps.Copy(m.Headers, o.Headers)
	}
	if len(o.Variables) > 0 {
		if m.Variables == nil {
			m.Variables = make(map[string]string, len(o.Variables))
		}
		maps.Copy(m.Variables, o.Variables)
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// loadBody fills Text and HTML from the body file. Markdown files produce
// both, .html files the HTML part and anything else the text part.
// Explicit text or html values are kept.
func (m *message) loadBody() error {
	if m.Body == "" {
		return nil
	}

	data, err := os.ReadFile(m.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	switch strings.ToLower(filepath.Ext(m.Body)) {
	case ".md", ".markdown":
		body, err := mailer.Markdown(data)
		if err != nil {
			return err
		}
		setIf(&body.HTML, m.HTML)
		setIf(&body.Text, m.Text)
		m.HTML, m.Text = body.HTML, body.Text
	case ".html", ".htm":
		if m.HTML == "" {
			m.HTML = string(data)
		}
	default:
		if m.Text == "" {
			m.Text = string(data)
		}
	}
	return nil
}

// email converts m into a host pipeline message with the pipeline defaults applied.
func (m message) email(defaults mailer.Config) *mailer.Email {
	e := &mailer.Email{
		From:    m.From,
		To:      m.To,
		CC:      m.Cc,
		BCC:     m.Bcc,
		ReplyTo: m.ReplyTo,
		Subject: m.Subject,
		Text:    m.Text,
		HTML:    m.HTML,
		Headers: m.Headers,
	}
	if m.Category != "" {
		e.Tags = mailer.Category(m.Category)
	}
	return mailer.Prepare(e, defaults)
}

// payload builds the API payload, loading attachments through loader.
func (m message) payload(ctx context.Context, loader attachment.Loader, defaults mailer.Config) (plunk.Payload, error) {
	if len(m.To) == 0 {
		return nil, mailer.ErrNoRecipient
	}

	e := m.email(defaults)

	if m.Template != "" {
		if len(m.Attachments) > 0 {
			return nil, errors.New("attachments are not supported with templates")
		}
		mail, err := plunksender.FromMessage(e)
		if err != nil {
			return nil, err
		}
		return &plunk.TemplateMail{
			Envelope:          mail.Envelope,
			TemplateUUID:      m.Template,
			TemplateVariables: m.Variables,
		}, nil
	}

	if e.Text == "" && e.HTML == "" {
		return nil, mailer.ErrNoContent
	}

	if len(m.Attachments) > 0 {
		atts, err := attachment.LoadAll(ctx, loader, m.Attachments)
		if err != nil {
			return nil, fmt.Errorf("load attachments: %w", err)
		}
		e.Attachments = atts
	}

	return plunksender.FromMessage(e)
}

// parsePairs splits "key=value" arguments.
func parsePairs(flag string, pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("--%s: expected key=value, got %q", flag, p)
		}
		out[k] = v
	}
	return out, nil
}

// parseInline splits "cid=source" arguments into inline attachment sources.
func parseInline(pairs []string) ([]attachment.Source, error) {
	out := make([]attachment.Source, 0, len(pairs))
	for _, p := range pairs {
		cid, ref, ok := strings.Cut(p, "=")
		cid = strings.TrimSpace(cid)
		if !ok || cid == "" || ref == "" {
			return nil, fmt.Errorf("--inline: expected cid=source, got %q", p)
		}
		out = append(out, attachment.Source{Ref: ref, ContentID: cid})
	}
	return out, nil
}
