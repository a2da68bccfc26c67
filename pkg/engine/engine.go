package engine

import (
	"context"
	"fmt"
	"maps"
	"path"
	"strings"
	texttemplate "text/template"
)

// Engine renders a template source string against a set of locals.
// Implementations must treat locals as read-only.
type Engine interface {
	Render(ctx context.Context, source string, locals map[string]any) (string, error)
}

// Func adapts a plain function to the Engine interface.
type Func func(ctx context.Context, source string, locals map[string]any) (string, error)

// Render implements Engine.
func (f Func) Render(ctx context.Context, source string, locals map[string]any) (string, error) {
	return f(ctx, source, locals)
}

// Registry dispatches template sources to engines by file extension.
// It is built once via NewRegistry and read-only afterwards, so it is
// safe for concurrent use without locking.
type Registry struct {
	engines    map[string]Engine
	aliases    map[string]string
	funcs      texttemplate.FuncMap
	defaultExt string
}

// Option configures a Registry during construction.
type Option func(*Registry)

// WithEngine registers an engine for the given extension (without leading dot),
// replacing any built-in handler for that extension.
func WithEngine(ext string, e Engine) Option {
	return func(r *Registry) {
		r.engines[normalizeExt(ext)] = e
	}
}

// WithAlias maps one extension to another before engine lookup,
// e.g. WithAlias("markdown", "md"). This is the extension-map option:
// files with the aliased extension render through the target's engine.
func WithAlias(ext, target string) Option {
	return func(r *Registry) {
		r.aliases[normalizeExt(ext)] = normalizeExt(target)
	}
}

// WithDefaultExtension sets the extension assumed for files that have none.
func WithDefaultExtension(ext string) Option {
	return func(r *Registry) {
		r.defaultExt = normalizeExt(ext)
	}
}

// WithTemplateFuncs adds functions available to the built-in Go template
// engines (tmpl, gotmpl, gohtml, md).
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(r *Registry) {
		maps.Copy(r.funcs, funcs)
	}
}

// NewRegistry creates a registry with the built-in handlers registered.
// Options may replace built-ins or add engines for new extensions.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		engines: make(map[string]Engine),
		aliases: make(map[string]string),
		funcs:   make(texttemplate.FuncMap),
	}

	for _, opt := range opts {
		opt(r)
	}

	// Built-ins fill the gaps left by options. Registered last so that
	// WithTemplateFuncs has already collected every function.
	registerBuiltins(r)

	return r
}

// Render dispatches the source of the given file to the engine matching its
// extension. The locals map is shallow-copied before the file-relative keys
// (filename, engine, templatePath) are injected; caller data is never mutated.
//
// An unregistered extension is a hard error: silently returning the raw
// source would ship unrendered markup.
func (r *Registry) Render(ctx context.Context, file, source string, locals map[string]any) (string, error) {
	ext := strings.TrimPrefix(path.Ext(file), ".")
	if ext == "" && r.defaultExt != "" {
		ext = r.defaultExt
	}

	key := normalizeExt(ext)
	if target, ok := r.aliases[key]; ok {
		key = target
	}

	e, ok := r.engines[key]
	if !ok {
		return "", fmt.Errorf("%w for the %q file extension", ErrEngineNotFound, "."+ext)
	}

	loc := make(map[string]any, len(locals)+3)
	maps.Copy(loc, locals)
	loc["filename"] = file
	loc["engine"] = "." + ext
	loc["templatePath"] = path.Dir(file)

	out, err := e.Render(ctx, source, loc)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRenderFailed, file, err)
	}

	return out, nil
}

// Supports reports whether an engine is registered for the given extension.
func (r *Registry) Supports(ext string) bool {
	key := normalizeExt(strings.TrimPrefix(ext, "."))
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	_, ok := r.engines[key]
	return ok
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimSpace(ext))
}
