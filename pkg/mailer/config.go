package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	// TemplatesDir is the base directory holding template folders. Ignored
	// when a filesystem is supplied with WithFS.
	TemplatesDir string `env:"MAILER_TEMPLATES_DIR" envDefault:"emails"`

	// DefaultExtension is the engine assumed for asset files without one.
	DefaultExtension string `env:"MAILER_DEFAULT_EXTENSION" envDefault:"tmpl"`

	// Send performs real delivery through the transport. When false,
	// composed messages are recorded in the in-memory outbox instead,
	// which is what tests and offline environments want.
	Send bool `env:"MAILER_SEND" envDefault:"false"`

	// PreviewDir, when set, writes every composed message to this
	// directory as html/txt/json files in addition to delivery.
	PreviewDir string `env:"MAILER_PREVIEW_DIR"`

	// I18N enables locale derivation from locals: the user's last-locale
	// field first, then the top-level "locale" key.
	I18N bool `env:"MAILER_I18N" envDefault:"false"`

	// LastLocaleField names the key inside locals["user"] that carries the
	// recipient's preferred locale.
	LastLocaleField string `env:"MAILER_LAST_LOCALE_FIELD" envDefault:"last_locale"`

	// SubjectPrefix is prepended to every rendered subject.
	SubjectPrefix string `env:"MAILER_SUBJECT_PREFIX"`

	// HTMLToText derives a plain-text body from the html one when the
	// template has no text asset and no explicit text was supplied.
	HTMLToText bool `env:"MAILER_HTML_TO_TEXT" envDefault:"false"`

	// TextOnly drops the html body from the final message.
	TextOnly bool `env:"MAILER_TEXT_ONLY" envDefault:"false"`

	// DisableInlining leaves stylesheet content un-inlined.
	DisableInlining bool `env:"MAILER_DISABLE_INLINING" envDefault:"false"`

	// InlinerKeepStyleTags retains the full stylesheet as a <style> block in
	// the html body in addition to inlining, for clients that honor it.
	InlinerKeepStyleTags bool `env:"MAILER_INLINER_KEEP_STYLE_TAGS" envDefault:"false"`

	// InlinerRelativeTo resolves relative url(...) references in
	// stylesheets against this base path.
	InlinerRelativeTo string `env:"MAILER_INLINER_RELATIVE_TO"`
}

func (c Config) withDefaults() Config {
	if c.TemplatesDir == "" {
		c.TemplatesDir = "emails"
	}
	if c.DefaultExtension == "" {
		c.DefaultExtension = "tmpl"
	}
	if c.LastLocaleField == "" {
		c.LastLocaleField = "last_locale"
	}
	return c
}
