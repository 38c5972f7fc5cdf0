package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Localizer binds a bundle to one language. It is cheap to copy and is what
// views receive.
type Localizer struct {
	bundle *Bundle
	lang   string
}

// For returns a Localizer for lang; unsupported languages use the default.
func (b *Bundle) For(lang string) Localizer {
	if !IsSupported(lang) {
		lang = b.defaultLang
	}
	return Localizer{bundle: b, lang: lang}
}

// Lang returns the language code of the localizer.
func (l Localizer) Lang() string {
	return l.lang
}

// T translates key, see Bundle.T.
func (l Localizer) T(key string, params ...string) string {
	if l.bundle == nil {
		return key
	}
	return l.bundle.T(l.lang, key, params...)
}

// Percent formats a 0..1 ratio as a locale-aware percentage.
func (l Localizer) Percent(ratio float64, digits uint64) string {
	if l.bundle == nil {
		return ""
	}
	return l.bundle.locale(l.lang).FmtPercent(ratio*100, digits)
}

// Number formats n with the locale's grouping and decimal separators.
func (l Localizer) Number(n float64, digits uint64) string {
	if l.bundle == nil {
		return ""
	}
	return l.bundle.locale(l.lang).FmtNumber(n, digits)
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Spanish,
	language.Portuguese,
})

// MatchAcceptLanguage picks the best supported language for an
// Accept-Language header value, or fallback when nothing matches.
func MatchAcceptLanguage(header, fallback string) string {
	if strings.TrimSpace(header) == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return Languages()[idx]
}

// SplitPrefix detects a leading language segment in path ("/es/scripts").
// It returns the language, the path without the segment and whether a
// prefix was found. "/es" alone maps to "/".
func SplitPrefix(path string) (lang, rest string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, tail, _ := strings.Cut(trimmed, "/")
	if !IsSupported(seg) {
		return "", path, false
	}
	return seg, "/" + tail, true
}

// Prefix returns the URL prefix for lang ("/es"), or "" when lang is empty.
func Prefix(lang string) string {
	if lang == "" {
		return ""
	}
	return "/" + lang
}
