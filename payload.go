package plunk

import (
	"encoding/base64"

	"github.com/dmitrymomot/plunk/pkg/contenttype"
)

// Attachment dispositions on the wire.
const (
	DispositionAttachment = "attachment"
	DispositionInline     = "inline"
)

// Payload is anything Send can deliver.
// Wire returns nil for a nil payload.
type Payload interface {
	Wire() *WireMessage
}

// Address is a mailbox with an optional display name.
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Attachment is a file sent along with a Mail.
// A non-empty ContentID makes it inline; ContentType is inferred when empty.
type Attachment struct {
	Content     []byte
	Filename    string
	ContentType string
	ContentID   string
}

// Inline reports whether the attachment is referenced from the HTML body.
func (a Attachment) Inline() bool {
	return a.ContentID != ""
}

// Envelope holds the addressing shared by every payload.
type Envelope struct {
	Headers map[string]string
	From    Address
	To      []Address
	Cc      []Address
	Bcc     []Address
	ReplyTo []Address
}

// Mail is a payload with literal content.
// Text and HTML are sent as given; either, both or neither may be set.
type Mail struct {
	Envelope
	Subject     string
	Text        string
	HTML        string
	Category    string
	Attachments []Attachment
}

// TemplateMail is a payload rendered server-side from a stored template.
type TemplateMail struct {
	Envelope
	TemplateVariables map[string]string
	TemplateUUID      string
}

// WireMessage is the JSON body of POST /v1/send.
type WireMessage struct {
	From              *Address          `json:"from,omitempty"`
	To                []Address         `json:"to"`
	Cc                []Address         `json:"cc,omitempty"`
	Bcc               []Address         `json:"bcc,omitempty"`
	ReplyTo           []Address         `json:"reply_to,omitempty"`
	Headers           map[string]string `json:"headers,omitempty"`
	Subject           string            `json:"subject,omitempty"`
	Text              string            `json:"text,omitempty"`
	HTML              string            `json:"html,omitempty"`
	Category          string            `json:"category,omitempty"`
	Attachments       []WireAttachment  `json:"attachments,omitempty"`
	TemplateUUID      string            `json:"template_uuid,omitempty"`
	TemplateVariables map[string]string `json:"template_variables,omitempty"`
}

// WireAttachment is an attachment with base64 content.
type WireAttachment struct {
	Content     string `json:"content"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Disposition string `json:"disposition"`
	ContentID   string `json:"content_id,omitempty"`
}

// Wire implements Payload.
func (m *Mail) Wire() *WireMessage {
	if m == nil {
		return nil
	}

	w := m.Envelope.wire()
	w.Subject = m.Subject
	w.Text = m.Text
	w.HTML = m.HTML
	w.Category = m.Category
	if len(m.Attachments) > 0 {
		w.Attachments = make([]WireAttachment, len(m.Attachments))
		for i, a := range m.Attachments {
			w.Attachments[i] = a.wire()
		}
	}
	return w
}

// Wire implements Payload.
func (m *TemplateMail) Wire() *WireMessage {
	if m == nil {
		return nil
	}

	w := m.Envelope.wire()
	w.TemplateUUID = m.TemplateUUID
	if len(m.TemplateVariables) > 0 {
		w.TemplateVariables = m.TemplateVariables
	}
	return w
}

func (e Envelope) wire() *WireMessage {
	w := &WireMessage{
		To:      addresses(e.To),
		Cc:      e.Cc,
		Bcc:     e.Bcc,
		ReplyTo: e.ReplyTo,
	}
	if w.To == nil {
		w.To = []Address{}
	}
	if e.From != (Address{}) {
		from := e.From
		w.From = &from
	}
	if len(e.Headers) > 0 {
		w.Headers = e.Headers
	}
	return w
}

func (a Attachment) wire() WireAttachment {
	contentType := a.ContentType
	if contentType == "" {
		contentType = contenttype.Detect(a.Filename, a.Content)
	}

	disposition := DispositionAttachment
	if a.Inline() {
		disposition = DispositionInline
	}

	return WireAttachment{
		Content:     base64.StdEncoding.EncodeToString(a.Content),
		Filename:    a.Filename,
		ContentType: contentType,
		Disposition: disposition,
		ContentID:   a.ContentID,
	}
}

func addresses(in []Address) []Address {
	if len(in) == 0 {
		return nil
	}
	out := make([]Address, len(in))
	copy(out, in)
	return out
}
