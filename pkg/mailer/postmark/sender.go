// Package postmark implements mailer.Sender on top of the Postmark API.
package postmark

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/mailtpl/pkg/mailer"
)

// Config holds Postmark email provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN,required"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail  string `env:"POSTMARK_FROM_EMAIL,required"`
}

// ErrInvalidConfig indicates required Postmark configuration is missing.
var ErrInvalidConfig = errors.New("postmark: invalid config")

// Sender delivers composed messages through Postmark.
type Sender struct {
	client *postmark.Client
	config Config
}

// New creates a Postmark transport. The server token and sender email are
// required up front - failing fast beats silent delivery failures later.
func New(cfg Config) (*Sender, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: ServerToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}

	return &Sender{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		config: cfg,
	}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("postmark: message has no recipients")
	}

	from := email.From
	if from == "" {
		from = s.config.SenderEmail
	}

	msg := postmark.Email{
		From:     from,
		To:       strings.Join(email.To, ","),
		Cc:       strings.Join(email.CC, ","),
		Bcc:      strings.Join(email.BCC, ","),
		ReplyTo:  email.ReplyTo,
		Subject:  email.Subject,
		HTMLBody: email.HTML,
		TextBody: email.Text,
		Tag:      firstTag(email.Tags),
	}

	for name, value := range email.Headers {
		msg.Headers = append(msg.Headers, postmark.Header{Name: name, Value: value})
	}

	for _, a := range email.Attachments {
		msg.Attachments = append(msg.Attachments, postmark.Attachment{
			Name:        a.Filename,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			ContentType: a.ContentType,
			ContentID:   a.ContentID,
		})
	}

	resp, err := s.client.SendEmail(ctx, msg)
	if err != nil {
		return fmt.Errorf("postmark: failed to send email: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("postmark: send rejected: %d - %s", resp.ErrorCode, resp.Message)
	}

	return nil
}

// firstTag picks the lexicographically first tag name: Postmark supports a
// single tag per message while mailer.Tags allows several.
func firstTag(tags mailer.Tags) string {
	if len(tags) == 0 {
		return ""
	}

	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0]
}
