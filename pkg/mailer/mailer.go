package mailer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/mailtpl/pkg/engine"
	"github.com/dmitrymomot/mailtpl/pkg/inliner"
	"github.com/dmitrymomot/mailtpl/pkg/templates"
)

// Mailer renders email templates and dispatches composed messages through a
// transport. It is safe for concurrent use.
type Mailer struct {
	sender     Sender
	memory     *MemorySender
	catalog    *templates.Catalog
	config     Config
	log        *slog.Logger
	base       *Email
	baseLocals map[string]any
	sanitize   *bluemonday.Policy

	// construction-time state consumed by New
	fsys       fs.FS
	engineOpts []engine.Option
	extraCSS   []string
}

// Option configures a Mailer during construction.
type Option func(*Mailer)

// WithLogger sets the logger for render/send tracing. Defaults to discard.
func WithLogger(log *slog.Logger) Option {
	return func(m *Mailer) { m.log = log }
}

// WithFS overrides the template root filesystem (Config.TemplatesDir is
// ignored). Useful with embed.FS or fstest.MapFS.
func WithFS(fsys fs.FS) Option {
	return func(m *Mailer) { m.fsys = fsys }
}

// WithEngine registers a custom rendering engine for a file extension.
func WithEngine(ext string, e engine.Engine) Option {
	return func(m *Mailer) {
		m.engineOpts = append(m.engineOpts, engine.WithEngine(ext, e))
	}
}

// WithEngineAlias maps one extension to another engine's key,
// e.g. WithEngineAlias("hbs", "tmpl").
func WithEngineAlias(ext, target string) Option {
	return func(m *Mailer) {
		m.engineOpts = append(m.engineOpts, engine.WithAlias(ext, target))
	}
}

// WithTemplateFuncs adds functions to the built-in Go template engines.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(m *Mailer) {
		m.engineOpts = append(m.engineOpts, engine.WithTemplateFuncs(funcs))
	}
}

// WithExtraCSS appends stylesheets inlined into every rendered html body.
func WithExtraCSS(css ...string) Option {
	return func(m *Mailer) { m.extraCSS = append(m.extraCSS, css...) }
}

// WithSanitizerPolicy sanitizes composed html with the given bluemonday
// policy before delivery. Off by default; use EmailPolicy for a policy that
// keeps inline style attributes intact.
func WithSanitizerPolicy(policy *bluemonday.Policy) Option {
	return func(m *Mailer) { m.sanitize = policy }
}

// WithBaseMessage sets defaults (from, reply-to, headers, attachments, ...)
// merged into every outbound message; explicit per-send values win.
func WithBaseMessage(base *Email) Option {
	return func(m *Mailer) { m.base = base }
}

// WithDefaultLocals sets locals merged under every render's locals;
// per-send locals win on key conflicts.
func WithDefaultLocals(locals map[string]any) Option {
	return func(m *Mailer) { m.baseLocals = locals }
}

// New creates a Mailer with the given transport and configuration.
// The sender may be nil when Config.Send is false.
func New(sender Sender, cfg Config, opts ...Option) (*Mailer, error) {
	cfg = cfg.withDefaults()

	m := &Mailer{
		sender: sender,
		config: cfg,
		log:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(m)
	}

	if cfg.Send && m.sender == nil {
		return nil, fmt.Errorf("%w: a transport is required when sending is enabled", ErrInvalidConfig)
	}
	if !cfg.Send {
		m.memory = NewMemorySender()
	}

	if m.fsys == nil {
		m.fsys = os.DirFS(cfg.TemplatesDir)
	}

	engineOpts := append(
		[]engine.Option{engine.WithDefaultExtension(cfg.DefaultExtension)},
		m.engineOpts...,
	)

	styler := inliner.New(inliner.Options{
		Disabled:      cfg.DisableInlining,
		KeepStyleTags: cfg.InlinerKeepStyleTags,
		ExtraCSS:      m.extraCSS,
		RelativeTo:    cfg.InlinerRelativeTo,
	})

	m.catalog = templates.NewCatalog(
		m.fsys,
		engine.NewRegistry(engineOpts...),
		templates.WithInliner(styler),
		templates.WithLogger(m.log),
	)

	return m, nil
}

// SendOptions are the parameters of one Send call.
type SendOptions struct {
	// Template is the template directory name under the root (or an
	// absolute path to a template directory). Optional: a send with only
	// explicit Message content is valid.
	Template string

	// Message carries explicit overrides. Fields set here always win over
	// rendered template output.
	Message *Email

	// Locals is the data passed to template engines. Never mutated.
	Locals map[string]any

	// Locale forces a template locale, bypassing i18n derivation.
	Locale string
}

// DeliveryResult reports the outcome of a Send call. Message is always the
// fully composed email, so disabled-send environments can assert on it.
type DeliveryResult struct {
	Message      *Email
	PreviewFiles []string
	Delivered    bool
}

// Render renders a template's subject/html/text triple without composing or
// sending anything. The optional locale argument selects a localized
// variant, falling back to the root template when it does not exist.
func (m *Mailer) Render(ctx context.Context, template string, locals map[string]any, locale ...string) (*templates.Result, error) {
	loc := ""
	if len(locale) > 0 {
		loc = locale[0]
	}
	return m.catalog.Render(ctx, template, mergeLocals(m.baseLocals, locals), loc)
}

// TemplateExists reports whether the template directory resolves and holds
// at least one usable html or text asset.
func (m *Mailer) TemplateExists(template string) bool {
	return m.catalog.Exists(template)
}

// Outbox returns the in-memory sender recording messages when Config.Send
// is false, or nil when real delivery is enabled.
func (m *Mailer) Outbox() *MemorySender {
	return m.memory
}

// Send renders the template, composes the final message, optionally writes
// a preview, and delivers it through the transport (or the in-memory outbox
// when sending is disabled).
func (m *Mailer) Send(ctx context.Context, opts SendOptions) (*DeliveryResult, error) {
	locals := mergeLocals(m.baseLocals, opts.Locals)

	locale := opts.Locale
	if locale == "" && m.config.I18N {
		locale = deriveLocale(locals, m.config.LastLocaleField)
	}

	msg := m.newMessage(opts.Message)

	var rendered *templates.Result
	if opts.Template != "" {
		res, err := m.catalog.Render(ctx, opts.Template, locals, locale)
		if err != nil {
			return nil, err
		}
		rendered = res
	}

	if err := m.compose(opts.Template, rendered, msg); err != nil {
		return nil, err
	}

	result := &DeliveryResult{Message: msg}

	if m.config.PreviewDir != "" {
		files, err := writePreview(m.config.PreviewDir, msg)
		if err != nil {
			return nil, errors.Join(ErrComposeFailed, err)
		}
		result.PreviewFiles = files
		m.log.Debug("preview written",
			slog.String("template", opts.Template),
			slog.Any("files", files))
	}

	sender := m.sender
	if !m.config.Send {
		sender = m.memory
	}

	if err := sender.Send(ctx, msg); err != nil {
		return nil, errors.Join(ErrSendFailed, err)
	}
	result.Delivered = m.config.Send

	m.log.Debug("message sent",
		slog.String("template", opts.Template),
		slog.Bool("delivered", result.Delivered))

	return result, nil
}

// newMessage layers the per-send override over the base message defaults.
// Explicit override fields always win.
func (m *Mailer) newMessage(override *Email) *Email {
	msg := m.base.clone()
	if override == nil {
		return msg
	}

	if override.From != "" {
		msg.From = override.From
	}
	if override.ReplyTo != "" {
		msg.ReplyTo = override.ReplyTo
	}
	if override.Subject != "" {
		msg.Subject = override.Subject
	}
	if override.HTML != "" {
		msg.HTML = override.HTML
	}
	if override.Text != "" {
		msg.Text = override.Text
	}
	if len(override.To) > 0 {
		msg.To = append([]string(nil), override.To...)
	}
	if len(override.CC) > 0 {
		msg.CC = append([]string(nil), override.CC...)
	}
	if len(override.BCC) > 0 {
		msg.BCC = append([]string(nil), override.BCC...)
	}
	if len(override.Attachments) > 0 {
		msg.Attachments = append([]Attachment(nil), override.Attachments...)
	}
	if len(override.Headers) > 0 {
		if msg.Headers == nil {
			msg.Headers = make(map[string]string, len(override.Headers))
		}
		for k, v := range override.Headers {
			msg.Headers[k] = v
		}
	}
	if len(override.Tags) > 0 {
		if msg.Tags == nil {
			msg.Tags = make(Tags, len(override.Tags))
		}
		for k, v := range override.Tags {
			msg.Tags[k] = v
		}
	}

	return msg
}

func mergeLocals(base, override map[string]any) map[string]any {
	if len(base) == 0 {
		return override
	}

	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
