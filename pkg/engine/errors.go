package engine

import "errors"

var (
	// ErrEngineNotFound indicates no render engine is registered for a file extension.
	ErrEngineNotFound = errors.New("engine not found")

	// ErrRenderFailed indicates an engine failed to compile or execute a template source.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrInvalidFrontmatter indicates a markdown asset carries malformed YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")
)
