// Package i18n loads the flat JSON translation tables and serves lookups for
// the views. Lookups fall back from the requested language to the default
// language and finally to the key itself, so a missing translation is visible
// on the page rather than silently blank.
package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/pt"
	ut "github.com/go-playground/universal-translator"
	"github.com/spf13/afero"
)

// Dictionary maps translation keys to localized text.
type Dictionary map[string]string

// supportedLocales returns the locale implementations the dashboard ships
// dictionaries for, in preference order.
func supportedLocales() []locales.Translator {
	return []locales.Translator{en.New(), es.New(), pt.New()}
}

// Languages returns the supported language codes in preference order.
func Languages() []string {
	langs := make([]string, 0, 3)
	for _, l := range supportedLocales() {
		langs = append(langs, l.Locale())
	}
	return langs
}

// Bundle holds the loaded dictionaries for every supported language.
type Bundle struct {
	mu          sync.RWMutex
	uni         *ut.UniversalTranslator
	dicts       map[string]Dictionary
	defaultLang string
	sources     []source
}

type source struct {
	fs  afero.Fs
	dir string
}

// NewBundle creates an empty bundle. defaultLang must be one of Languages();
// anything else falls back to "en".
func NewBundle(defaultLang string) *Bundle {
	defaultLang = strings.ToLower(defaultLang)
	if !IsSupported(defaultLang) {
		defaultLang = "en"
	}
	return &Bundle{
		defaultLang: defaultLang,
		dicts:       make(map[string]Dictionary),
	}
}

// IsSupported reports whether lang has a dictionary.
func IsSupported(lang string) bool {
	for _, l := range Languages() {
		if l == lang {
			return true
		}
	}
	return false
}

// DefaultLanguage returns the language used when a lookup misses.
func (b *Bundle) DefaultLanguage() string {
	return b.defaultLang
}

// AddSource registers a directory of <lang>.json files. Later sources
// override keys from earlier ones. Sources are re-read on every Load.
func (b *Bundle) AddSource(fsys afero.Fs, dir string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sources = append(b.sources, source{fs: fsys, dir: dir})
}

// Load reads every registered source and replaces the active dictionaries.
// On error the previously loaded dictionaries stay in place.
func (b *Bundle) Load() error {
	b.mu.RLock()
	sources := append([]source(nil), b.sources...)
	b.mu.RUnlock()

	dicts := make(map[string]Dictionary)
	for _, src := range sources {
		for _, lang := range Languages() {
			dict, err := readDictionary(src.fs, path.Join(src.dir, lang+".json"))
			if err != nil {
				return err
			}
			if dict == nil {
				continue
			}
			if dicts[lang] == nil {
				dicts[lang] = make(Dictionary, len(dict))
			}
			for k, v := range dict {
				dicts[lang][k] = v
			}
		}
	}

	uni, err := buildTranslator(b.defaultLang, dicts)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.uni = uni
	b.dicts = dicts
	b.mu.Unlock()

	slog.Info("loaded i18n dictionaries", "languages", len(dicts), "default", b.defaultLang)
	return nil
}

func readDictionary(fsys afero.Fs, name string) (Dictionary, error) {
	data, err := afero.ReadFile(fsys, name)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read %s: %w", name, err)
	}
	var dict Dictionary
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", name, err)
	}
	return dict, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func buildTranslator(defaultLang string, dicts map[string]Dictionary) (*ut.UniversalTranslator, error) {
	var fallback locales.Translator
	supported := supportedLocales()
	for _, l := range supported {
		if l.Locale() == defaultLang {
			fallback = l
		}
	}
	uni := ut.New(fallback, supported...)

	for lang, dict := range dicts {
		trans, found := uni.GetTranslator(lang)
		if !found {
			continue
		}
		for key, text := range dict {
			if err := trans.Add(key, text, true); err != nil {
				return nil, fmt.Errorf("i18n %s: %w", lang, err)
			}
		}
	}
	return uni, nil
}

// T looks up key for lang, substituting {0}, {1}, ... with params.
func (b *Bundle) T(lang, key string, params ...string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.uni == nil {
		return key
	}
	for _, l := range []string{lang, b.defaultLang} {
		text, ok := b.dicts[l][key]
		if !ok {
			continue
		}
		trans, found := b.uni.GetTranslator(l)
		if !found {
			continue
		}
		s, err := trans.T(key, padParams(params, placeholderSlots(text))...)
		if err == nil {
			return s
		}
	}
	return key
}

var placeholderRe = regexp.MustCompile(`\{(\d+)\}`)

// placeholderSlots returns the highest {n} index in text plus one.
func placeholderSlots(text string) int {
	slots := 0
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n+1 > slots {
			slots = n + 1
		}
	}
	return slots
}

// padParams makes sure the translator never indexes past the supplied params.
func padParams(params []string, n int) []string {
	if len(params) >= n {
		return params
	}
	padded := make([]string, n)
	copy(padded, params)
	return padded
}

// locale returns the CLDR formatter for lang (default language on a miss).
func (b *Bundle) locale(lang string) locales.Translator {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.uni == nil {
		return en.New()
	}
	trans, _ := b.uni.GetTranslator(lang)
	return trans
}

// Keys returns the sorted keys of lang's dictionary.
func (b *Bundle) Keys(lang string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.dicts[lang]))
	for k := range b.dicts[lang] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Problem is a consistency issue found by Check.
type Problem struct {
	Lang   string
	Key    string
	Reason string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %s", p.Lang, p.Key, p.Reason)
}

// Check compares every language against the default language and reports
// missing keys, extra keys and placeholder count mismatches.
func (b *Bundle) Check() []Problem {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var problems []Problem
	base := b.dicts[b.defaultLang]
	for _, lang := range Languages() {
		if lang == b.defaultLang {
			continue
		}
		dict := b.dicts[lang]
		for key, text := range base {
			other, ok := dict[key]
			if !ok {
				problems = append(problems, Problem{Lang: lang, Key: key, Reason: "missing"})
				continue
			}
			if strings.Count(text, "{") != strings.Count(other, "{") {
				problems = append(problems, Problem{Lang: lang, Key: key, Reason: "placeholder count differs"})
			}
		}
		for key := range dict {
			if _, ok := base[key]; !ok {
				problems = append(problems, Problem{Lang: lang, Key: key, Reason: "not in " + b.defaultLang})
			}
		}
	}
	sort.Slice(problems, func(i, j int) bool {
		if problems[i].Lang != problems[j].Lang {
			return problems[i].Lang < problems[j].Lang
		}
		return problems[i].Key < problems[j].Key
	})
	return problems
}
