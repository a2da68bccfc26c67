package templates

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		locale   string
		expected string
	}{
		{name: "empty becomes default", locale: "", expected: "en-us"},
		{name: "lowercase kept", locale: "pt-br", expected: "pt-br"},
		{name: "mixed case lowered", locale: "pt-BR", expected: "pt-br"},
		{name: "underscore separator", locale: "pt_BR", expected: "pt-br"},
		{name: "bare language", locale: "FR", expected: "fr"},
		{name: "unparseable lowered as-is", locale: "Not A Locale", expected: "not a locale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, NormalizeLocale(tt.locale))
		})
	}
}

func TestResolveDir(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"welcome/html.tmpl":       &fstest.MapFile{Data: []byte("root")},
		"welcome/pt-br/html.tmpl": &fstest.MapFile{Data: []byte("localized")},
		"plainfile":               &fstest.MapFile{Data: []byte("not a dir")},
	}

	t.Run("default locale uses root", func(t *testing.T) {
		t.Parallel()

		dir, err := resolveDir(fsys, "welcome", DefaultLocale)
		require.NoError(t, err)
		assert.Equal(t, "welcome", dir)
	})

	t.Run("localized subdirectory preferred", func(t *testing.T) {
		t.Parallel()

		dir, err := resolveDir(fsys, "welcome", "pt-br")
		require.NoError(t, err)
		assert.Equal(t, "welcome/pt-br", dir)
	})

	t.Run("missing locale falls back to root", func(t *testing.T) {
		t.Parallel()

		dir, err := resolveDir(fsys, "welcome", "fr")
		require.NoError(t, err)
		assert.Equal(t, "welcome", dir)
	})

	t.Run("missing template errors", func(t *testing.T) {
		t.Parallel()

		_, err := resolveDir(fsys, "missing", DefaultLocale)
		require.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("empty name errors", func(t *testing.T) {
		t.Parallel()

		_, err := resolveDir(fsys, "", DefaultLocale)
		require.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("file instead of directory errors", func(t *testing.T) {
		t.Parallel()

		_, err := resolveDir(fsys, "plainfile", DefaultLocale)
		require.ErrorIs(t, err, ErrTemplateNotFound)
	})
}
