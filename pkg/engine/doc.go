// Package engine dispatches email template assets to rendering engines by
// file extension.
//
// A Registry maps extensions (without the leading dot) to Engine
// implementations. It ships with built-in handlers:
//
//   - html, css, txt, and extension-less files pass through unchanged
//   - tmpl, gotmpl render via text/template
//   - gohtml renders via html/template
//   - md, markdown strip optional YAML frontmatter, execute the body as a
//     text template, and convert the result to HTML
//
// Unknown extensions fail with ErrEngineNotFound rather than passing the raw
// source through, because unrendered template syntax in an outbound email is
// worse than a loud error.
//
// # Usage
//
//	reg := engine.NewRegistry(
//		engine.WithAlias("hbs", "tmpl"),
//		engine.WithEngine("mjml", myMJMLEngine),
//		engine.WithTemplateFuncs(map[string]any{"upper": strings.ToUpper}),
//	)
//
//	out, err := reg.Render(ctx, "welcome/html.tmpl", source, locals)
//
// Before dispatch the registry copies the locals map and injects three
// file-relative keys for engines that resolve imports against the asset's
// location: "filename" (asset path), "engine" (".ext"), and "templatePath"
// (the asset's directory). The caller's map is never mutated.
package engine
