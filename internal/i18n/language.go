// Package i18n holds the active-language convention shared by the content
// entities: the list of supported languages, the default (fallback)
// language, and the request-scoped active language carried in a context.
package i18n

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no configuration overrides it.
const DefaultLanguage = "de"

// DefaultLanguages is the stock set of supported languages, default first.
var DefaultLanguages = []string{"de", "en", "fr", "es", "it"}

type ctxKey struct{}

var (
	mu        sync.RWMutex
	defLang   = DefaultLanguage
	languages = append([]string(nil), DefaultLanguages...)
	matcher   = buildMatcher(languages)
)

// Configure replaces the supported languages and the default language.
// The default language is always moved to the front of the list.
func Configure(langs []string, def string) {
	def = normalize(def)
	if def == "" {
		def = DefaultLanguage
	}

	ordered := []string{def}
	for _, l := range langs {
		l = normalize(l)
		if l == "" || l == def || contains(ordered, l) {
			continue
		}
		ordered = append(ordered, l)
	}

	mu.Lock()
	defer mu.Unlock()
	defLang = def
	languages = ordered
	matcher = buildMatcher(ordered)
}

// Default returns the default language code.
func Default() string {
	mu.RLock()
	defer mu.RUnlock()
	return defLang
}

// Languages returns the supported language codes, default first.
func Languages() []string {
	mu.RLock()
	defer mu.RUnlock()
	return append([]string(nil), languages...)
}

// NonDefault returns every supported language except the default one.
func NonDefault() []string {
	langs := Languages()
	return langs[1:]
}

// IsSupported reports whether lang is one of the configured languages.
func IsSupported(lang string) bool {
	mu.RLock()
	defer mu.RUnlock()
	return contains(languages, normalize(lang))
}

// WithLanguage returns a copy of ctx carrying lang as the active language.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, normalize(lang))
}

// FromContext returns the active language of ctx, or the default language
// when ctx carries none or an unsupported one.
func FromContext(ctx context.Context) string {
	if ctx != nil {
		if lang, ok := ctx.Value(ctxKey{}).(string); ok && IsSupported(lang) {
			return lang
		}
	}
	return Default()
}

// Match picks the best supported language for an Accept-Language header.
func Match(accept string) string {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return Default()
	}

	mu.RLock()
	m, langs := matcher, languages
	mu.RUnlock()

	_, idx, conf := m.Match(tags...)
	if conf == language.No {
		return Default()
	}
	return langs[idx]
}

func buildMatcher(langs []string) language.Matcher {
	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tags = append(tags, language.Make(l))
	}
	return language.NewMatcher(tags)
}

func normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if idx := strings.IndexAny(lang, "-_"); idx >= 0 {
		lang = lang[:idx]
	}
	return lang
}

func contains(list []string, v string) bool {
	for _, l := range list {
		if l == v {
			return true
		}
	}
	return false
}
