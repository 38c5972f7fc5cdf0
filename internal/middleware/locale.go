package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/irrigo/dashboard/internal/i18n"
)

const (
	// LocaleContextKey holds the request's i18n.Localizer.
	LocaleContextKey = "locale"
	// LocalePrefixContextKey holds the URL prefix ("/es") the request came in
	// with, or "" when the language was negotiated.
	LocalePrefixContextKey = "locale_prefix"
)

// Locale picks the request language and must run in echo's Pre stage so the
// language segment is stripped before routing: "/es/scripts" is routed as
// "/scripts" with Spanish selected. Without a prefix the Accept-Language
// header decides, then the bundle's default.
func Locale(bundle *i18n.Bundle) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			lang, rest, ok := i18n.SplitPrefix(req.URL.Path)
			prefix := ""
			if ok {
				prefix = i18n.Prefix(lang)
				req.URL.Path = rest
				req.URL.RawPath = ""
			} else {
				lang = i18n.MatchAcceptLanguage(req.Header.Get("Accept-Language"), bundle.DefaultLanguage())
			}

			c.Set(LocaleContextKey, bundle.For(lang))
			c.Set(LocalePrefixContextKey, prefix)
			c.Response().Header().Set("Content-Language", lang)
			return next(c)
		}
	}
}

// Localizer returns the request's localizer. Outside the Locale middleware
// it returns a zero Localizer, which echoes keys back.
func Localizer(c echo.Context) i18n.Localizer {
	l, _ := c.Get(LocaleContextKey).(i18n.Localizer)
	return l
}

// LocalePrefix returns the locale segment the request arrived with.
func LocalePrefix(c echo.Context) string {
	p, _ := c.Get(LocalePrefixContextKey).(string)
	return p
}

// LocalPath re-applies the request's locale prefix to an app path.
func LocalPath(c echo.Context, path string) string {
	prefix := LocalePrefix(c)
	if prefix != "" && path == "/" {
		return prefix
	}
	return prefix + path
}
