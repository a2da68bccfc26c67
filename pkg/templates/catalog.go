package templates

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/dmitrymomot/mailtpl/pkg/engine"
	"github.com/dmitrymomot/mailtpl/pkg/inliner"
)

// Catalog hands out Template instances over a shared template root, engine
// registry, and style inliner. Templates are cached by name so repeated
// renders of the same template reuse its locale cache.
type Catalog struct {
	fsys   fs.FS
	reg    *engine.Registry
	styler *inliner.Inliner
	log    *slog.Logger

	mu   sync.Mutex
	tpls map[string]*Template
}

// CatalogOption configures a Catalog during construction.
type CatalogOption func(*Catalog)

// WithInliner replaces the default style inliner.
func WithInliner(styler *inliner.Inliner) CatalogOption {
	return func(c *Catalog) {
		c.styler = styler
	}
}

// WithLogger sets the logger used for render tracing. Defaults to discard.
func WithLogger(log *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		c.log = log
	}
}

// NewCatalog creates a catalog over the given template root.
func NewCatalog(fsys fs.FS, reg *engine.Registry, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		fsys: fsys,
		reg:  reg,
		tpls: make(map[string]*Template),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.styler == nil {
		c.styler = inliner.New(inliner.Options{})
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}

	return c
}

// Template returns the cached renderer for a template name, creating it on
// first use. This is the batch surface: hold on to the returned Template to
// render many messages without repeating asset discovery.
//
// An absolute name escapes the catalog root: the path's directory becomes
// the template's private root and its basename the view name.
func (c *Catalog) Template(name string) *Template {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.tpls[name]; ok {
		return t
	}

	fsys, view := c.fsys, name
	if filepath.IsAbs(name) {
		fsys = os.DirFS(filepath.Dir(name))
		view = filepath.Base(name)
	}

	t := newTemplate(fsys, view, c.reg, c.styler, c.log)
	c.tpls[name] = t
	return t
}

// Render is the one-shot surface: resolve, render, and return the triple.
func (c *Catalog) Render(ctx context.Context, name string, locals map[string]any, locale string) (*Result, error) {
	return c.Template(name).Render(ctx, locals, locale)
}

// Exists reports whether the template directory resolves and contains at
// least one non-empty candidate for an html or text asset, mirroring the
// usability rule the renderer itself enforces.
func (c *Catalog) Exists(name string) bool {
	t := c.Template(name)

	dir, err := resolveDir(t.fsys, t.name, "")
	if err != nil {
		return false
	}

	for _, kind := range []Kind{KindHTML, KindText} {
		matches, err := fs.Glob(t.fsys, path.Join(dir, "*"+string(kind)+".*"))
		if err != nil {
			continue
		}
		for _, m := range matches {
			if info, err := fs.Stat(t.fsys, m); err == nil && info.Size() > 0 {
				return true
			}
		}
	}

	return false
}
