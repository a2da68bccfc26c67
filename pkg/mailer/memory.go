package mailer

import (
	"context"
	"sync"
)

// MemorySender is an in-memory transport that records every message instead
// of delivering it. The mailer uses one automatically when Config.Send is
// false; tests can also pass it explicitly as the Sender.
type MemorySender struct {
	mu       sync.Mutex
	messages []*Email
}

// NewMemorySender creates an empty in-memory transport.
func NewMemorySender() *MemorySender {
	return &MemorySender{}
}

// Send implements Sender by recording the message verbatim.
func (s *MemorySender) Send(_ context.Context, email *Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, email)
	return nil
}

// Messages returns a snapshot of all recorded messages in send order.
func (s *MemorySender) Messages() []*Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Email(nil), s.messages...)
}

// Last returns the most recently recorded message, or nil.
func (s *MemorySender) Last() *Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return nil
	}
	return s.messages[len(s.messages)-1]
}

// Reset discards all recorded messages.
func (s *MemorySender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}
