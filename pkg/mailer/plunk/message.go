package plunk

import (
	"fmt"
	"maps"
	"net/mail"
	"strings"

	"github.com/dmitrymomot/plunk"
	"github.com/dmitrymomot/plunk/pkg/mailer"
)

// FromMessage converts a host pipeline message into a plunk.Mail.
// Address fields accept "Name <email>" or bare addresses, and a single entry
// may hold a comma-separated list. Recipient order and count are preserved.
func FromMessage(email *mailer.Email) (*plunk.Mail, error) {
	if email == nil {
		return nil, invalidArgument("message is nil")
	}

	m := &plunk.Mail{
		Subject:  email.Subject,
		Text:     email.Text,
		HTML:     email.HTML,
		Category: email.Tags.Category(),
	}

	var err error
	if strings.TrimSpace(email.From) != "" {
		if m.From, err = parseAddress("from", email.From); err != nil {
			return nil, err
		}
	}
	if m.To, err = parseAddressList("to", email.To); err != nil {
		return nil, err
	}
	if m.Cc, err = parseAddressList("cc", email.CC); err != nil {
		return nil, err
	}
	if m.Bcc, err = parseAddressList("bcc", email.BCC); err != nil {
		return nil, err
	}
	if strings.TrimSpace(email.ReplyTo) != "" {
		if m.ReplyTo, err = parseAddressList("reply_to", []string{email.ReplyTo}); err != nil {
			return nil, err
		}
	}

	if len(email.Headers) > 0 {
		m.Headers = maps.Clone(email.Headers)
	}

	if len(email.Attachments) > 0 {
		m.Attachments = make([]plunk.Attachment, len(email.Attachments))
		for i, a := range email.Attachments {
			m.Attachments[i] = plunk.Attachment{
				Content:     a.Content,
				Filename:    a.Filename,
				ContentType: a.ContentType,
				ContentID:   a.ContentID,
			}
		}
	}

	return m, nil
}

func parseAddress(field, raw string) (plunk.Address, error) {
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return plunk.Address{}, invalidArgument(fmt.Sprintf("%s: invalid address %q: %v", field, raw, err))
	}
	return plunk.Address{Email: addr.Address, Name: addr.Name}, nil
}

func parseAddressList(field string, raw []string) ([]plunk.Address, error) {
	var out []plunk.Address
	for _, entry := range raw {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		list, err := mail.ParseAddressList(entry)
		if err != nil {
			return nil, invalidArgument(fmt.Sprintf("%s: invalid address %q: %v", field, entry, err))
		}
		for _, a := range list {
			out = append(out, plunk.Address{Email: a.Address, Name: a.Name})
		}
	}
	return out, nil
}

func invalidArgument(message string) *plunk.Error {
	return &plunk.Error{Kind: plunk.KindInvalidArgument, Messages: []string{message}}
}
