// Package templates locates, loads, and renders email template directories.
//
// # On-disk contract
//
// A template is a directory holding up to four asset files, discovered by
// the "contains the kind token" glob *<kind>.*:
//
//	<root>/<templateName>/[<locale>/]{html,text,style,subject}.<ext>
//
// The extension selects the rendering engine (see the engine package). A
// localized variant lives in a locale-named subdirectory; when it is absent
// the root template is used silently - locale fallback never errors. At
// least one of the html or text assets must exist and be non-empty, or
// rendering fails with ErrNoContent.
//
// # Rendering
//
//	cat := templates.NewCatalog(os.DirFS("emails"), engine.NewRegistry())
//	res, err := cat.Render(ctx, "welcome", map[string]any{"name": "Ann"}, "pt-br")
//	// res.Subject, res.HTML, res.Text
//
// Subject, html, and text render concurrently. When a style asset exists its
// rendered CSS is inlined into the html output. The compiled stylesheet is
// memoized per locale for the lifetime of the Template, so only the first
// render of a locale pays for style compilation; locals passed to later
// renders do not re-render the stylesheet.
//
// For batch sending, Catalog.Template returns the reusable renderer
// directly instead of the one-shot Catalog.Render.
package templates
