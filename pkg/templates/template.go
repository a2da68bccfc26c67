package templates

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/mailtpl/pkg/engine"
	"github.com/dmitrymomot/mailtpl/pkg/inliner"
)

// Result is the output of rendering one template: any field may be empty
// when the corresponding asset is absent.
type Result struct {
	Subject string
	HTML    string
	Text    string
}

// Template renders one template directory. It owns a per-locale cache of
// discovered assets and the compiled stylesheet, so it doubles as the batch
// renderer: reuse one Template to render many messages against the same
// directory without repeating discovery or style compilation.
//
// The stylesheet is compiled at most once per locale and memoized. It is
// therefore assumed to be independent of the render locals; stylesheets with
// per-recipient personalization are not supported by this cache.
type Template struct {
	fsys    fs.FS
	name    string
	engines *engine.Registry
	styler  *inliner.Inliner
	log     *slog.Logger

	mu      sync.RWMutex
	locales map[string]*bundle

	styles singleflight.Group
}

// bundle is the resolved per-locale state. Once stored in Template.locales
// the asset map is read-only; only the style fields are mutated afterwards,
// under mu.
type bundle struct {
	dir    string
	assets map[Kind]*Asset

	mu    sync.Mutex
	style *string // nil until the first successful style render
}

// newTemplate is only called by Catalog, which owns the shared wiring.
func newTemplate(fsys fs.FS, name string, reg *engine.Registry, styler *inliner.Inliner, log *slog.Logger) *Template {
	return &Template{
		fsys:    fsys,
		name:    name,
		engines: reg,
		styler:  styler,
		log:     log,
		locales: make(map[string]*bundle),
	}
}

// Name returns the template's view name.
func (t *Template) Name() string { return t.name }

// Render produces the subject/html/text triple for the given locals and
// locale. The html, text, and subject assets render concurrently with no
// ordering dependency; any stage failure aborts the whole render and
// surfaces that stage's error.
func (t *Template) Render(ctx context.Context, locals map[string]any, locale string) (*Result, error) {
	locale = NormalizeLocale(locale)

	b, err := t.bundle(locale)
	if err != nil {
		return nil, err
	}

	var res Result
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		html, err := t.renderHTML(gctx, b, locals, locale)
		if err != nil {
			return err
		}
		res.HTML = html
		return nil
	})

	g.Go(func() error {
		text, err := t.renderAsset(gctx, b.assets[KindText], locals, locale)
		if err != nil {
			return err
		}
		res.Text = text
		return nil
	})

	g.Go(func() error {
		subject, err := t.renderAsset(gctx, b.assets[KindSubject], locals, locale)
		if err != nil {
			return err
		}
		res.Subject = subject
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &res, nil
}

// bundle returns the cached locale bundle, performing discovery on first
// use. A failed discovery stores nothing, so the next call retries cleanly.
func (t *Template) bundle(locale string) (*bundle, error) {
	t.mu.RLock()
	if b, ok := t.locales[locale]; ok {
		t.mu.RUnlock()
		return b, nil
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	// Double-check after acquiring write lock.
	if b, ok := t.locales[locale]; ok {
		return b, nil
	}

	dir, err := resolveDir(t.fsys, t.name, locale)
	if err != nil {
		return nil, err
	}

	assets, err := loadAssets(t.fsys, dir, t.log)
	if err != nil {
		return nil, err
	}

	if assets[KindHTML] == nil && assets[KindText] == nil {
		return nil, fmt.Errorf("%w: neither html nor text template files found, or both are empty, in template %q", ErrNoContent, t.name)
	}

	t.log.Debug("template initialized",
		slog.String("template", t.name),
		slog.String("locale", locale),
		slog.String("dir", dir))

	b := &bundle{dir: dir, assets: assets}
	t.locales[locale] = b
	return b, nil
}

// renderHTML renders the html asset and passes it through the style inliner
// together with the (possibly cached) compiled stylesheet.
func (t *Template) renderHTML(ctx context.Context, b *bundle, locals map[string]any, locale string) (string, error) {
	asset := b.assets[KindHTML]
	if asset == nil {
		return "", nil
	}

	html, err := t.renderAsset(ctx, asset, locals, locale)
	if err != nil {
		return "", err
	}

	style, err := t.compiledStyle(ctx, b, locals, locale)
	if err != nil {
		return "", err
	}

	return t.styler.Inline(html, style)
}

// compiledStyle renders the style asset at most once per locale, even under
// concurrent first calls: singleflight collapses the race, and the memoized
// value is reused for every later render against the same locale regardless
// of locals. A render failure is not memoized.
func (t *Template) compiledStyle(ctx context.Context, b *bundle, locals map[string]any, locale string) (string, error) {
	b.mu.Lock()
	if b.style != nil {
		style := *b.style
		b.mu.Unlock()
		return style, nil
	}
	b.mu.Unlock()

	// b.mu is never held across Do: the callback re-acquires it, and holding
	// a lock through an engine render would stall the concurrent html and
	// text renders. singleflight collapses racing first calls instead.
	v, err, _ := t.styles.Do(locale, func() (any, error) {
		b.mu.Lock()
		if b.style != nil {
			style := *b.style
			b.mu.Unlock()
			return style, nil
		}
		b.mu.Unlock()

		style := ""
		if asset := b.assets[KindStyle]; asset != nil {
			rendered, err := t.renderAsset(ctx, asset, locals, locale)
			if err != nil {
				return nil, err
			}
			style = rendered
			t.log.Debug("stylesheet compiled and cached",
				slog.String("template", t.name),
				slog.String("locale", locale))
		}

		b.mu.Lock()
		b.style = &style
		b.mu.Unlock()
		return style, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

// renderAsset dispatches one asset through the engine registry. Locals are
// copied before the locale key is injected, and non-html assets additionally
// get pretty=false so markup engines skip whitespace indentation.
func (t *Template) renderAsset(ctx context.Context, asset *Asset, locals map[string]any, locale string) (string, error) {
	if asset == nil {
		return "", nil
	}

	loc := make(map[string]any, len(locals)+2)
	maps.Copy(loc, locals)
	loc["locale"] = locale
	if asset.Kind != KindHTML {
		loc["pretty"] = false
	}

	return t.engines.Render(ctx, asset.Path, asset.Content, loc)
}
