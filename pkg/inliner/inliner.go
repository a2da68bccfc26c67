package inliner

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	douceur "github.com/aymerick/douceur/inliner"
)

// ErrInline indicates the CSS inlining step failed (malformed CSS or HTML).
var ErrInline = errors.New("failed to inline styles")

// Options configures an Inliner.
type Options struct {
	// Disabled returns HTML unchanged, for clients that honor <style> blocks.
	Disabled bool

	// KeepStyleTags retains the complete injected stylesheet as a <style>
	// block in the output in addition to inlining. By default only rules
	// that cannot be inlined survive as a <style> element.
	KeepStyleTags bool

	// ExtraCSS is appended to every stylesheet passed to Inline, letting
	// batch callers accumulate shared rules instead of replacing them.
	ExtraCSS []string

	// RelativeTo rewrites relative url(...) references in the stylesheet
	// against this base path before inlining.
	RelativeTo string
}

// Inliner moves CSS declarations into style attributes of matching HTML
// elements. Most email clients strip <head> or ignore <style> blocks, so
// inlining is the only reliable way to style HTML email.
//
// The actual HTML/CSS parsing is delegated to douceur; declarations marked
// !important are preserved, and rules that cannot be inlined (media queries,
// pseudo-classes) are kept in a <style> element.
type Inliner struct {
	opts Options
}

// New creates an Inliner with the given options.
func New(opts Options) *Inliner {
	return &Inliner{opts: opts}
}

// Inline applies the given stylesheet (plus any configured ExtraCSS) to the
// HTML document. When css is empty and no extra CSS is configured, or when
// the inliner is disabled, the HTML is returned unchanged.
func (i *Inliner) Inline(html, css string) (string, error) {
	if i.opts.Disabled {
		return html, nil
	}

	sheets := make([]string, 0, len(i.opts.ExtraCSS)+1)
	if strings.TrimSpace(css) != "" {
		sheets = append(sheets, css)
	}
	sheets = append(sheets, i.opts.ExtraCSS...)
	if len(sheets) == 0 {
		return html, nil
	}

	stylesheet := strings.Join(sheets, "\n")
	if i.opts.RelativeTo != "" {
		stylesheet = rewriteRelativeURLs(stylesheet, i.opts.RelativeTo)
	}

	fragment := !strings.Contains(strings.ToLower(html), "<html")

	out, err := douceur.Inline(injectStyle(html, stylesheet))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInline, err)
	}

	if fragment {
		// The parser wraps fragments in a full document, and douceur hoists
		// rules it cannot inline (media queries, pseudo-classes) into a
		// <style> element in the synthetic head. Carry those over so the
		// unwrap does not lose them.
		out = headStyles(out) + unwrapBody(out)
	}

	if i.opts.KeepStyleTags {
		out = injectStyle(out, stylesheet)
	}

	return out, nil
}

// injectStyle places the stylesheet into the document head, or prepends it
// when the markup is a fragment without one.
func injectStyle(html, css string) string {
	tag := "<style type=\"text/css\">" + css + "</style>"

	if idx := strings.Index(strings.ToLower(html), "</head>"); idx >= 0 {
		return html[:idx] + tag + html[idx:]
	}
	return tag + html
}

// headStyles returns the concatenated <style> elements of the document head,
// where douceur keeps the rules it could not inline.
func headStyles(html string) string {
	lower := strings.ToLower(html)

	start := strings.Index(lower, "<head")
	end := strings.Index(lower, "</head>")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	head, headLower := html[start:end], lower[start:end]

	var styles strings.Builder
	for {
		open := strings.Index(headLower, "<style")
		if open == -1 {
			break
		}
		stop := strings.Index(headLower[open:], "</style>")
		if stop == -1 {
			break
		}
		stop += open + len("</style>")
		styles.WriteString(head[open:stop])
		head, headLower = head[stop:], headLower[stop:]
	}

	return styles.String()
}

// unwrapBody undoes the full-document wrapping the HTML parser applies to
// fragments, so fragment input yields fragment output.
func unwrapBody(html string) string {
	lower := strings.ToLower(html)

	start := strings.Index(lower, "<body")
	if start == -1 {
		return html
	}
	open := strings.Index(html[start:], ">")
	if open == -1 {
		return html
	}
	start += open + 1

	end := strings.LastIndex(lower, "</body>")
	if end == -1 || end < start {
		return html
	}

	return html[start:end]
}

var cssURLPattern = regexp.MustCompile(`url\(\s*['"]?([^'")]+)['"]?\s*\)`)

// rewriteRelativeURLs resolves relative url(...) references against base.
// Absolute URLs, data URIs, and root-relative paths are left untouched.
func rewriteRelativeURLs(css, base string) string {
	base = strings.TrimRight(base, "/")

	return cssURLPattern.ReplaceAllStringFunc(css, func(match string) string {
		ref := cssURLPattern.FindStringSubmatch(match)[1]
		if isAbsoluteRef(ref) {
			return match
		}
		return "url(" + base + "/" + ref + ")"
	})
}

func isAbsoluteRef(ref string) bool {
	switch {
	case strings.HasPrefix(ref, "http://"),
		strings.HasPrefix(ref, "https://"),
		strings.HasPrefix(ref, "data:"),
		strings.HasPrefix(ref, "//"),
		strings.HasPrefix(ref, "/"):
		return true
	}
	return false
}
