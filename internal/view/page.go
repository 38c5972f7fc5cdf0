package view

import (
	"strings"

	"github.com/irrigo/dashboard/internal/i18n"
)

// Viewer is the signed-in user as shown in the page chrome.
type Viewer struct {
	ID   string
	Name string
}

// Page carries what every rendered page needs besides its own content.
type Page struct {
	Title string
	Loc   i18n.Localizer
	// Prefix is the locale segment of the request URL ("/es") or "".
	Prefix string
	// Path is the request path without the locale prefix, query included.
	Path   string
	Viewer Viewer
	Flash  FlashData
}

// SignedIn reports whether the page is rendered for a signed-in viewer.
func (p Page) SignedIn() bool {
	return p.Viewer.ID != ""
}

// T translates key in the page's language.
func (p Page) T(key string, params ...string) string {
	return p.Loc.T(key, params...)
}

// Link prefixes an app path with the page's locale segment.
func (p Page) Link(path string) string {
	if p.Prefix != "" && path == "/" {
		return p.Prefix
	}
	return p.Prefix + path
}

// LangLink returns the current page in another language.
func (p Page) LangLink(lang string) string {
	path := p.Path
	if path == "" {
		path = "/"
	}
	if path == "/" {
		return i18n.Prefix(lang)
	}
	if strings.HasPrefix(path, "/?") {
		return i18n.Prefix(lang) + path[1:]
	}
	return i18n.Prefix(lang) + path
}
