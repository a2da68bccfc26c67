package mailer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySender(t *testing.T) {
	t.Parallel()

	s := NewMemorySender()
	assert.Nil(t, s.Last())
	assert.Empty(t, s.Messages())

	first := &Email{Subject: "first"}
	second := &Email{Subject: "second"}
	require.NoError(t, s.Send(context.Background(), first))
	require.NoError(t, s.Send(context.Background(), second))

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Same(t, first, msgs[0])
	assert.Same(t, second, s.Last())

	s.Reset()
	assert.Empty(t, s.Messages())
	assert.Nil(t, s.Last())
}

func TestPreviewSender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewPreviewSender(dir)

	err := s.Send(context.Background(), &Email{
		From:    "no-reply@example.com",
		To:      []string{"ann@example.com"},
		Subject: "Welcome",
		HTML:    "<h4>hi</h4>",
		Text:    "hi",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	var meta previewMetadata
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &meta))
	}

	assert.Equal(t, "Welcome", meta.Subject)
	assert.Equal(t, []string{"ann@example.com"}, meta.To)
	assert.Equal(t, "no-reply@example.com", meta.From)
}

func TestPreviewSender_TextOnlyMessage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewPreviewSender(dir)

	require.NoError(t, s.Send(context.Background(), &Email{Subject: "s", Text: "plain"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".html"))
	}
}
