package mailer

import "errors"

var (
	// ErrInvalidConfig indicates the mailer was constructed with unusable
	// configuration, e.g. real sending enabled without a transport.
	ErrInvalidConfig = errors.New("invalid mailer config")

	// ErrEmptyMessage indicates the composed message has no subject, html,
	// text, or attachments. Sending it would deliver a blank email.
	ErrEmptyMessage = errors.New("no content was passed for subject, html, text, nor attachments")

	// ErrComposeFailed indicates a post-render composition step failed
	// (e.g. deriving text from html).
	ErrComposeFailed = errors.New("failed to compose message")

	// ErrSendFailed indicates the transport failed to deliver the message.
	ErrSendFailed = errors.New("failed to send email")
)
