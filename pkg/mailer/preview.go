package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// PreviewSender is a transport for local development: it writes each
// composed message to a directory as html, txt, and json files instead of
// delivering it, so the rendered output can be opened in a browser.
type PreviewSender struct {
	dir string
}

// NewPreviewSender creates a preview transport writing into dir.
// The directory is created on first use.
func NewPreviewSender(dir string) *PreviewSender {
	return &PreviewSender{dir: dir}
}

// Send implements Sender by writing the message to disk.
func (s *PreviewSender) Send(_ context.Context, email *Email) error {
	_, err := writePreview(s.dir, email)
	return err
}

// previewMetadata is the envelope data saved next to the rendered bodies.
type previewMetadata struct {
	Timestamp string   `json:"timestamp"`
	From      string   `json:"from,omitempty"`
	To        []string `json:"to,omitempty"`
	CC        []string `json:"cc,omitempty"`
	BCC       []string `json:"bcc,omitempty"`
	Subject   string   `json:"subject,omitempty"`
}

// writePreview stores the message under a shared random id:
// <id>.html, <id>.txt (when the bodies exist) and <id>.json (always).
func writePreview(dir string, email *Email) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create preview directory: %w", err)
	}

	id := uuid.NewString()
	var files []string

	if email.HTML != "" {
		htmlPath := filepath.Join(dir, id+".html")
		if err := os.WriteFile(htmlPath, []byte(email.HTML), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write html preview: %w", err)
		}
		files = append(files, htmlPath)
	}

	if email.Text != "" {
		textPath := filepath.Join(dir, id+".txt")
		if err := os.WriteFile(textPath, []byte(email.Text), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write text preview: %w", err)
		}
		files = append(files, textPath)
	}

	meta := previewMetadata{
		Timestamp: time.Now().Format(time.RFC3339),
		From:      email.From,
		To:        email.To,
		CC:        email.CC,
		BCC:       email.BCC,
		Subject:   email.Subject,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preview metadata: %w", err)
	}

	jsonPath := filepath.Join(dir, id+".json")
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write preview metadata: %w", err)
	}
	files = append(files, jsonPath)

	return files, nil
}
