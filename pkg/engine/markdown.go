package engine

import (
	"bytes"
	"context"
	"fmt"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// markdownEngine renders markdown assets: an optional YAML frontmatter block
// is parsed and exposed to the template as the "meta" local, the body is
// executed as a Go text template, and the result is converted to HTML.
type markdownEngine struct {
	md    goldmark.Markdown
	funcs texttemplate.FuncMap
}

func newMarkdownEngine(funcs texttemplate.FuncMap) Engine {
	return &markdownEngine{
		md:    goldmark.New(),
		funcs: funcs,
	}
}

func (e *markdownEngine) Render(_ context.Context, source string, locals map[string]any) (string, error) {
	meta, body, err := splitFrontmatter(source)
	if err != nil {
		return "", err
	}
	if len(meta) > 0 {
		// locals is the registry's private copy, safe to extend here.
		locals["meta"] = meta
	}

	tmpl, err := texttemplate.New(templateName(locals)).Funcs(e.funcs).Parse(body)
	if err != nil {
		return "", err
	}

	var processed bytes.Buffer
	if err := tmpl.Execute(&processed, locals); err != nil {
		return "", err
	}

	var html bytes.Buffer
	if err := e.md.Convert(processed.Bytes(), &html); err != nil {
		return "", err
	}

	return html.String(), nil
}

var frontmatterDelimiter = []byte("---")

// splitFrontmatter separates an optional leading YAML frontmatter block
// (fenced by "---" lines) from the markdown body.
func splitFrontmatter(source string) (map[string]any, string, error) {
	content := []byte(source)
	if !bytes.HasPrefix(content, frontmatterDelimiter) {
		return nil, source, nil
	}

	rest := bytes.TrimPrefix(content, frontmatterDelimiter)
	rest = bytes.TrimLeft(rest, "\r\n")

	end := bytes.Index(rest, frontmatterDelimiter)
	if end == -1 {
		return nil, "", fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	block := rest[:end]
	body := rest[end+len(frontmatterDelimiter):]
	body = bytes.TrimLeft(body, "\r\n")

	meta := make(map[string]any)
	if len(bytes.TrimSpace(block)) > 0 {
		if err := yaml.Unmarshal(block, &meta); err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrInvalidFrontmatter, err)
		}
	}

	return meta, string(body), nil
}
