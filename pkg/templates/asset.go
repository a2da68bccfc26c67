package templates

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
)

// Kind identifies the role of a template asset within its directory.
type Kind string

// The four recognized asset kinds.
const (
	KindHTML    Kind = "html"
	KindText    Kind = "text"
	KindStyle   Kind = "style"
	KindSubject Kind = "subject"
)

var allKinds = [...]Kind{KindHTML, KindText, KindStyle, KindSubject}

// Asset is one discovered template file. An asset with empty content is
// never constructed; emptiness is normalized to absence by the loader.
type Asset struct {
	Kind    Kind
	Path    string
	Ext     string
	Content string
}

// loadAssets discovers the asset files of a resolved template directory.
// Kinds with no matching (or only empty) files are simply missing from the
// returned map.
func loadAssets(fsys fs.FS, dir string, log *slog.Logger) (map[Kind]*Asset, error) {
	assets := make(map[Kind]*Asset, len(allKinds))

	for _, kind := range allKinds {
		asset, err := loadAsset(fsys, dir, kind, log)
		if err != nil {
			return nil, err
		}
		if asset != nil {
			assets[kind] = asset
		}
	}

	return assets, nil
}

// loadAsset finds the file for one kind via the "*<kind>.*" glob, so both
// "html.tmpl" and "custom-name-html.tmpl" qualify. fs.Glob returns matches
// in lexicographic order and the first one wins, which keeps multi-match
// resolution deterministic across platforms.
func loadAsset(fsys fs.FS, dir string, kind Kind, log *slog.Logger) (*Asset, error) {
	pattern := path.Join(dir, "*"+string(kind)+".*")

	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: glob %q: %w", ErrIO, pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	if len(matches) > 1 {
		log.Debug("multiple asset candidates, using first",
			slog.String("kind", string(kind)),
			slog.String("dir", dir),
			slog.Any("candidates", matches))
	}

	file := matches[0]
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %w", ErrIO, file, err)
	}
	if len(data) == 0 {
		// An empty file is indistinguishable from a missing one.
		return nil, nil
	}

	return &Asset{
		Kind:    kind,
		Path:    file,
		Ext:     path.Ext(file),
		Content: string(data),
	}, nil
}
