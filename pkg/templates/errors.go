package templates

import "errors"

var (
	// ErrTemplateNotFound indicates the template directory does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrNoContent indicates a template directory has neither a usable html
	// nor text asset. Sending from such a template would produce a blank
	// email, so this is a hard usage error rather than a fallback.
	ErrNoContent = errors.New("no content")

	// ErrIO indicates an unexpected filesystem failure (permissions, disk).
	ErrIO = errors.New("filesystem error")
)
