// Package i18n resolves UI strings for the supported site locales.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

const (
	DefaultLocale  = "en"
	DefaultSection = "common"
)

// SupportedLocales is the closed set of locales served by the site.
var SupportedLocales = []string{"en", "es", "fr"}

//go:embed locales/*.json
var localeFiles embed.FS

// Dictionary maps section -> key -> string, where values may nest further.
type Dictionary map[string]any

// Bundle holds every dictionary. It is read-only once loaded.
type Bundle struct {
	dictionaries map[string]Dictionary
}

func IsSupported(locale string) bool {
	for _, l := range SupportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

// LoadBundle decodes the embedded dictionaries for all supported locales.
func LoadBundle() (*Bundle, error) {
	dicts := make(map[string]Dictionary, len(SupportedLocales))
	for _, locale := range SupportedLocales {
		raw, err := localeFiles.ReadFile("locales/" + locale + ".json")
		if err != nil {
			return nil, fmt.Errorf("error reading dictionary %s: %w", locale, err)
		}
		var d Dictionary
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("error decoding dictionary %s: %w", locale, err)
		}
		dicts[locale] = d
	}
	return NewBundle(dicts)
}

// NewBundle builds a bundle from in-memory dictionaries. Every supported
// locale must be present.
func NewBundle(dicts map[string]Dictionary) (*Bundle, error) {
	for _, locale := range SupportedLocales {
		if _, ok := dicts[locale]; !ok {
			return nil, fmt.Errorf("missing dictionary for locale %q", locale)
		}
	}
	return &Bundle{dictionaries: dicts}, nil
}

// Dictionary returns the dictionary of a supported locale.
func (b *Bundle) Dictionary(locale string) (Dictionary, bool) {
	if !IsSupported(locale) {
		return nil, false
	}
	d, ok := b.dictionaries[locale]
	return d, ok
}

// FromLocale returns a Localizer starting at locale. Unsupported values fall
// back to DefaultLocale.
func (b *Bundle) FromLocale(locale string) *Localizer {
	if !IsSupported(locale) {
		locale = DefaultLocale
	}
	return &Localizer{bundle: b, locale: locale, dict: b.dictionaries[locale]}
}

// Localizer is the active-locale view over a Bundle. One instance belongs to
// one request or view; it is safe for concurrent use.
type Localizer struct {
	bundle *Bundle

	mu     sync.RWMutex
	locale string
	dict   Dictionary
}

func (l *Localizer) Locale() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.locale
}

// SetLocale swaps the active dictionary. Unsupported locales are ignored and
// false is returned.
func (l *Localizer) SetLocale(locale string) bool {
	if !IsSupported(locale) {
		return false
	}
	l.mu.Lock()
	l.locale = locale
	l.dict = l.bundle.dictionaries[locale]
	l.mu.Unlock()
	return true
}

// T resolves a dotted key under section. The key itself is returned when any
// segment is missing or the leaf is not a string.
func (l *Localizer) T(key, section string) string {
	if section == "" {
		section = DefaultSection
	}
	l.mu.RLock()
	dict := l.dict
	l.mu.RUnlock()

	var current any = map[string]any(dict)
	for _, segment := range append([]string{section}, strings.Split(key, ".")...) {
		node, ok := current.(map[string]any)
		if !ok {
			return key
		}
		current, ok = node[segment]
		if !ok {
			return key
		}
	}
	if s, ok := current.(string); ok {
		return s
	}
	return key
}

// Section flattens one section into dotted keys, e.g. "features.bestPrices".
func (l *Localizer) Section(section string) map[string]string {
	l.mu.RLock()
	dict := l.dict
	l.mu.RUnlock()

	out := map[string]string{}
	node, ok := dict[section].(map[string]any)
	if !ok {
		return out
	}
	flatten("", node, out)
	return out
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		switch v := node[k].(type) {
		case string:
			out[full] = v
		case map[string]any:
			flatten(full, v, out)
		}
	}
}
