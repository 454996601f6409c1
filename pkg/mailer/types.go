package mailer

import "fmt"

// TagCategory is the tag name providers read as the message category.
const TagCategory = "category"

// Tags represents email tags/categories that can be either presence-only
// (using struct{}{}) or key-value pairs (using string values).
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Category returns tags carrying a single category value.
func Category(name string) Tags {
	return Tags{TagCategory: name}
}

// Category returns the string value of the category tag, if any.
func (t Tags) Category() string {
	if v, ok := t[TagCategory].(string); ok {
		return v
	}
	return ""
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is the generic outgoing message handed to a Sender.
// Address fields hold RFC 5322 strings; a single To entry may itself be a
// comma-separated list.
type Email struct {
	Headers     map[string]string // Custom headers
	Tags        Tags              // Provider-specific tags/categories
	Subject     string            // Email subject
	HTML        string            // HTML body content
	Text        string            // Plain text alternative
	From        string            // Sender; Mailer fills it from Config when empty
	ReplyTo     string            // Reply-to address
	To          []string          // Recipients (at least one required)
	CC          []string          // Carbon copy recipients
	BCC         []string          // Blind carbon copy recipients
	Attachments []Attachment      // File attachments
}

// Attachment represents an email attachment.
// A non-empty ContentID marks the attachment as inline.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "application/pdf"); inferred when empty
	ContentID   string // Content-ID for inline attachments
	Content     []byte // Raw file content
}

// Inline reports whether the attachment is embedded in the body.
func (a Attachment) Inline() bool {
	return a.ContentID != ""
}
