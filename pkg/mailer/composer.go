package mailer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jaytaylor/html2text"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/mailtpl/pkg/templates"
)

// compose merges rendered template output into the message and applies the
// final policies. Precedence is exact: explicit message fields always win,
// rendered output only fills the gaps, and attachments are never rendered.
func (m *Mailer) compose(template string, rendered *templates.Result, msg *Email) error {
	if rendered != nil {
		if msg.Subject == "" {
			msg.Subject = rendered.Subject
		}
		if msg.HTML == "" {
			msg.HTML = rendered.HTML
		}
		if msg.Text == "" {
			msg.Text = rendered.Text
		}
	}

	if m.sanitize != nil && msg.HTML != "" {
		msg.HTML = m.sanitize.Sanitize(msg.HTML)
	}

	if msg.Subject != "" && m.config.SubjectPrefix != "" {
		msg.Subject = m.config.SubjectPrefix + msg.Subject
	}
	msg.Subject = strings.TrimSpace(msg.Subject)

	if m.config.HTMLToText && msg.Text == "" && msg.HTML != "" {
		text, err := html2text.FromString(msg.HTML, html2text.Options{})
		if err != nil {
			return errors.Join(ErrComposeFailed, err)
		}
		msg.Text = text
	}

	if m.config.TextOnly {
		msg.HTML = ""
	}

	if isBlank(msg.Subject) && isBlank(msg.Text) && isBlank(msg.HTML) && len(msg.Attachments) == 0 {
		return fmt.Errorf("%w: check that the files for the template %q exist", ErrEmptyMessage, template)
	}

	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// EmailPolicy returns a bluemonday policy suited for sanitizing outbound
// email HTML: common markup elements are allowed and inline style
// attributes survive, so inlined CSS is not stripped.
func EmailPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("style").Globally()
	p.AllowElements("table", "thead", "tbody", "tfoot", "tr", "td", "th", "center", "font")
	p.AllowAttrs("align", "valign", "width", "height", "cellpadding", "cellspacing", "border", "bgcolor").Globally()
	return p
}
