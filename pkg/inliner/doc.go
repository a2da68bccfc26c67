// Package inliner turns a rendered HTML body plus a rendered stylesheet into
// email-client-safe HTML with the CSS declarations inlined onto matching
// elements. Parsing is delegated to douceur; this package only decides what
// to inline (toggles, extra CSS accumulation, relative URL rewriting) and
// guarantees that malformed CSS surfaces as ErrInline instead of being
// swallowed.
package inliner
