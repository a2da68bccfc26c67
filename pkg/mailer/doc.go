// Package mailer sends templated transactional email.
//
// It glues the template pipeline (pkg/templates, pkg/engine, pkg/inliner)
// to a transport (Sender): a template directory renders into subject, html,
// and text parts, stylesheets are inlined into the html, and the composed
// message is delivered through a provider adapter.
//
// # Usage
//
//	sender := resend.New(resend.Config{
//		APIKey:      os.Getenv("RESEND_API_KEY"),
//		SenderEmail: "team@example.com",
//	})
//
//	m, err := mailer.New(sender, mailer.Config{
//		TemplatesDir: "emails",
//		Send:         true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := m.Send(ctx, mailer.SendOptions{
//		Template: "welcome",
//		Message:  &mailer.Email{To: []string{"user@example.com"}},
//		Locals:   map[string]any{"name": "Ann"},
//	})
//
// # Template directories
//
// A template is a directory under TemplatesDir holding up to four assets,
// matched by the *<kind>.* pattern:
//
//	emails/welcome/subject.tmpl   Welcome, {{.name}}!
//	emails/welcome/html.tmpl      <h1>Hello {{.name}}</h1>
//	emails/welcome/text.tmpl      Hello {{.name}}
//	emails/welcome/style.css      h1 { color: #333 }
//
// Localized variants live in locale subdirectories (emails/welcome/pt-br/);
// a missing variant silently falls back to the root template.
//
// # Composition precedence
//
// Explicit SendOptions.Message fields always win; rendered template output
// fills only the absent ones. When both subject, html, and text end up
// blank and there are no attachments, Send fails with ErrEmptyMessage
// rather than delivering an empty email.
//
// # Disabled sending and previews
//
// With Config.Send false (the default) no transport is required: composed
// messages are recorded in an in-memory outbox, and the DeliveryResult
// carries the composed message for assertions. Config.PreviewDir
// additionally writes each message to disk; PreviewSender does the same as
// a standalone transport.
//
// # Providers
//
// Provider adapters live in subpackages (resend, postmark). Any transport
// implementing the Sender interface works.
package mailer
