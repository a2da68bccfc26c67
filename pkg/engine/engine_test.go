package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Render_Passthrough(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	tests := []struct {
		name string
		file string
	}{
		{name: "html", file: "welcome/html.html"},
		{name: "css", file: "welcome/style.css"},
		{name: "txt", file: "welcome/text.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := reg.Render(context.Background(), tt.file, "raw content", nil)
			require.NoError(t, err)
			assert.Equal(t, "raw content", out)
		})
	}
}

func TestRegistry_Render_TextTemplate(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	out, err := reg.Render(context.Background(), "welcome/html.tmpl", "<h4>{{.item}}</h4>", map[string]any{"item": "test"})
	require.NoError(t, err)
	assert.Equal(t, "<h4>test</h4>", out)
}

func TestRegistry_Render_HTMLTemplateEscapes(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	out, err := reg.Render(context.Background(), "welcome/html.gohtml", "<p>{{.item}}</p>", map[string]any{"item": "<script>"})
	require.NoError(t, err)
	assert.Equal(t, "<p>&lt;script&gt;</p>", out)
}

func TestRegistry_Render_UnknownExtension(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	_, err := reg.Render(context.Background(), "welcome/html.ejs", "<h4><%= item %></h4>", nil)
	require.ErrorIs(t, err, ErrEngineNotFound)
	assert.Contains(t, err.Error(), `".ejs"`)
}

func TestRegistry_Render_Alias(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(WithAlias("hbs", "tmpl"))

	out, err := reg.Render(context.Background(), "welcome/subject.hbs", "Hello {{.name}}", map[string]any{"name": "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ann", out)
}

func TestRegistry_Render_DefaultExtension(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(WithDefaultExtension("tmpl"))

	out, err := reg.Render(context.Background(), "welcome/subject", "Hi {{.name}}", map[string]any{"name": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, "Hi Bob", out)
}

func TestRegistry_Render_CustomEngine(t *testing.T) {
	t.Parallel()

	upper := Func(func(_ context.Context, source string, _ map[string]any) (string, error) {
		return strings.ToUpper(source), nil
	})
	reg := NewRegistry(WithEngine("shout", upper))

	out, err := reg.Render(context.Background(), "welcome/subject.shout", "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", out)
}

func TestRegistry_Render_InjectsFileContext(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	out, err := reg.Render(context.Background(), "welcome/html.tmpl", "{{.filename}}|{{.engine}}|{{.templatePath}}", nil)
	require.NoError(t, err)
	assert.Equal(t, "welcome/html.tmpl|.tmpl|welcome", out)
}

func TestRegistry_Render_DoesNotMutateLocals(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	locals := map[string]any{"item": "test"}

	_, err := reg.Render(context.Background(), "welcome/html.tmpl", "{{.item}}", locals)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"item": "test"}, locals)
	assert.NotContains(t, locals, "filename")
}

func TestRegistry_Render_TemplateSyntaxError(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	_, err := reg.Render(context.Background(), "welcome/html.tmpl", "{{.item", nil)
	require.ErrorIs(t, err, ErrRenderFailed)
}

func TestRegistry_Render_TemplateFuncs(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(WithTemplateFuncs(map[string]any{
		"upper": strings.ToUpper,
	}))

	out, err := reg.Render(context.Background(), "welcome/subject.tmpl", `{{upper .name}}`, map[string]any{"name": "ann"})
	require.NoError(t, err)
	assert.Equal(t, "ANN", out)
}

func TestRegistry_Supports(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(WithAlias("hbs", "tmpl"))

	assert.True(t, reg.Supports("tmpl"))
	assert.True(t, reg.Supports(".tmpl"))
	assert.True(t, reg.Supports("hbs"))
	assert.False(t, reg.Supports("ejs"))
}
