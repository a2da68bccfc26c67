package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is the locale assumed when none is requested. Template
// directories themselves are the default-locale variant; only other locales
// live in subdirectories.
const DefaultLocale = "en-us"

// NormalizeLocale canonicalizes a locale identifier for cache keying and
// directory lookup: BCP 47 spellings of the same locale ("pt_BR", "pt-BR",
// "pt-br") collapse to one lowercase form. An empty locale becomes
// DefaultLocale; unparseable values are lowercased as-is.
func NormalizeLocale(locale string) string {
	if locale == "" {
		return DefaultLocale
	}

	locale = strings.ReplaceAll(locale, "_", "-")

	tag, err := language.Parse(locale)
	if err != nil {
		return strings.ToLower(locale)
	}
	return strings.ToLower(tag.String())
}

// resolveDir computes the asset directory for a template name and locale.
//
// A non-default locale probes the "<name>/<locale>" subdirectory first; if
// that subdirectory is absent the root template directory is used silently.
// A missing localized variant never errors - that is the locale-fallback
// contract. Only a missing root directory is ErrTemplateNotFound.
func resolveDir(fsys fs.FS, name, locale string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty template name", ErrTemplateNotFound)
	}

	if locale != "" && locale != DefaultLocale {
		localized := path.Join(name, locale)
		info, err := fs.Stat(fsys, localized)
		switch {
		case err == nil && info.IsDir():
			return localized, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("%w: stat %q: %w", ErrIO, localized, err)
		}
	}

	info, err := fs.Stat(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: template directory %q does not exist", ErrTemplateNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: stat %q: %w", ErrIO, name, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %q is not a directory", ErrTemplateNotFound, name)
	}

	return name, nil
}
