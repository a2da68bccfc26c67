package templates

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Template_Cached(t *testing.T) {
	t.Parallel()

	cat := newCatalog(fstest.MapFS{
		"welcome/html.tmpl": &fstest.MapFile{Data: []byte("<p>hi</p>")},
	})

	assert.Same(t, cat.Template("welcome"), cat.Template("welcome"))
	assert.NotSame(t, cat.Template("welcome"), cat.Template("goodbye"))
}

func TestCatalog_Template_AbsolutePath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, "invoice")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "html.tmpl"), []byte("<p>{{.total}}</p>"), 0o644))

	cat := newCatalog(fstest.MapFS{})

	res, err := cat.Render(context.Background(), dir, map[string]any{"total": "42"}, "")
	require.NoError(t, err)
	assert.Equal(t, "<p>42</p>", res.HTML)
}

func TestCatalog_Exists(t *testing.T) {
	t.Parallel()

	cat := newCatalog(fstest.MapFS{
		"welcome/html.tmpl":   &fstest.MapFile{Data: []byte("<p>hi</p>")},
		"textonly/text.txt":   &fstest.MapFile{Data: []byte("plain")},
		"empty/html.tmpl":     &fstest.MapFile{Data: []byte{}},
		"styleonly/style.css": &fstest.MapFile{Data: []byte("p{}")},
	})

	assert.True(t, cat.Exists("welcome"))
	assert.True(t, cat.Exists("textonly"))
	assert.False(t, cat.Exists("empty"))
	assert.False(t, cat.Exists("styleonly"))
	assert.False(t, cat.Exists("missing"))
}
