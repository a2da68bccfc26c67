package mailer

import "fmt"

// Tags represents message tags/categories that can be either presence-only
// (using struct{}{}) or key-value pairs (using string values). Provider
// adapters convert them to whatever shape their API expects.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is the composed message handed to the transport boundary. At least
// one of Subject, HTML, or Text must be non-blank, or Attachments non-empty;
// the composer enforces this before any delivery attempt.
type Email struct {
	Headers     map[string]string
	Tags        Tags
	Subject     string
	HTML        string
	Text        string
	From        string
	ReplyTo     string
	To          []string
	CC          []string
	BCC         []string
	Attachments []Attachment
}

// Attachment represents an email attachment.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "application/pdf")
	ContentID   string // Optional Content-ID for inline attachments
	Content     []byte // Raw file content
}

// clone returns a deep-enough copy of the email: slices and maps are
// duplicated, attachment payloads are shared.
func (e *Email) clone() *Email {
	if e == nil {
		return &Email{}
	}

	out := *e
	out.To = append([]string(nil), e.To...)
	out.CC = append([]string(nil), e.CC...)
	out.BCC = append([]string(nil), e.BCC...)
	out.Attachments = append([]Attachment(nil), e.Attachments...)

	if e.Headers != nil {
		out.Headers = make(map[string]string, len(e.Headers))
		for k, v := range e.Headers {
			out.Headers[k] = v
		}
	}
	if e.Tags != nil {
		out.Tags = make(Tags, len(e.Tags))
		for k, v := range e.Tags {
			out.Tags[k] = v
		}
	}

	return &out
}
