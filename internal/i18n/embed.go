package i18n

import (
	"embed"

	"github.com/spf13/afero"
)

//go:embed locales/*.json
var embedded embed.FS

// EmbeddedFs exposes the dictionaries compiled into the binary as an afero
// filesystem rooted so that "locales/<lang>.json" resolves.
func EmbeddedFs() afero.Fs {
	return afero.FromIOFS{FS: embedded}
}

// NewDefaultBundle returns a bundle loaded from the embedded dictionaries,
// overlaid with <overrideDir>/<lang>.json from the OS filesystem when
// overrideDir is set.
func NewDefaultBundle(defaultLang, overrideDir string) (*Bundle, error) {
	b := NewBundle(defaultLang)
	b.AddSource(EmbeddedFs(), "locales")
	if overrideDir != "" {
		b.AddSource(afero.NewOsFs(), overrideDir)
	}
	if err := b.Load(); err != nil {
		return nil, err
	}
	return b, nil
}
