package mailer

import "context"

// Sender is the transport capability: it accepts a fully-composed Email and
// performs delivery. The core attaches no retry logic around it; delivery
// errors pass through to the caller unmodified.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}
