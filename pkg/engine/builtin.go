package engine

import (
	"bytes"
	"context"
	htmltemplate "html/template"
	"path"
	texttemplate "text/template"
)

// registerBuiltins installs the default handlers for extensions that have
// no engine yet. Keys already taken by WithEngine options are left alone.
func registerBuiltins(r *Registry) {
	builtins := map[string]Engine{
		// Plain content needs no rendering.
		"html": passthrough(),
		"css":  passthrough(),
		"txt":  passthrough(),
		"":     passthrough(),

		// Go templates.
		"tmpl":   textTemplate(r.funcs),
		"gotmpl": textTemplate(r.funcs),
		"gohtml": htmlTemplate(r.funcs),

		// Markdown with optional YAML frontmatter.
		"md":       newMarkdownEngine(r.funcs),
		"markdown": newMarkdownEngine(r.funcs),
	}

	for ext, e := range builtins {
		if _, ok := r.engines[ext]; !ok {
			r.engines[ext] = e
		}
	}
}

func passthrough() Engine {
	return Func(func(_ context.Context, source string, _ map[string]any) (string, error) {
		return source, nil
	})
}

// textTemplate renders via text/template, the right default for subject and
// text assets where HTML escaping would corrupt the output.
func textTemplate(funcs texttemplate.FuncMap) Engine {
	return Func(func(_ context.Context, source string, locals map[string]any) (string, error) {
		tmpl, err := texttemplate.New(templateName(locals)).Funcs(funcs).Parse(source)
		if err != nil {
			return "", err
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, locals); err != nil {
			return "", err
		}
		return buf.String(), nil
	})
}

// htmlTemplate renders via html/template with contextual escaping.
func htmlTemplate(funcs texttemplate.FuncMap) Engine {
	return Func(func(_ context.Context, source string, locals map[string]any) (string, error) {
		tmpl, err := htmltemplate.New(templateName(locals)).Funcs(htmltemplate.FuncMap(funcs)).Parse(source)
		if err != nil {
			return "", err
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, locals); err != nil {
			return "", err
		}
		return buf.String(), nil
	})
}

// templateName derives a template name from the injected filename local.
func templateName(locals map[string]any) string {
	if file, ok := locals["filename"].(string); ok && file != "" {
		return path.Base(file)
	}
	return "template"
}
