package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Translator looks messages up in a loaded catalog. It is safe for
// concurrent use.
type Translator struct {
	translations   map[string]map[string]any
	languages      []string
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	mu             sync.RWMutex
}

// NewTranslator loads the catalog from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, messages := range translations {
		if lang == "" || messages == nil {
			return nil, fmt.Errorf("%w: empty language %q", ErrInvalidCatalog, lang)
		}
	}

	t.translations = translations
	t.languages = make([]string, 0, len(translations))
	for lang := range translations {
		t.languages = append(t.languages, lang)
	}
	slices.Sort(t.languages)

	t.logger.DebugContext(ctx, "catalog loaded", slog.Any("languages", t.languages))
	return t, nil
}

// SupportedLanguages returns the catalog languages, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.languages)
}

// DefaultLanguage returns the fallback language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Match resolves a user preference to a catalog language.
func (t *Translator) Match(preferred string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return MatchLanguage(preferred, t.languages, t.defaultLang)
}

// HasTranslation reports whether lang has a string message at key.
func (t *Translator) HasTranslation(lang, key string) bool {
	_, ok := t.lookup(lang, key)
	return ok
}

// T translates key. Args are name/value pairs substituted into %{name}
// placeholders:
//
//	t.T("en", "validation.min_length", "field", "Password", "required_length", "4")
//
// A missing key falls back to the default language, then to the key
// itself unless WithFallbackToKey(false) was given.
func (t *Translator) T(lang, key string, args ...string) string {
	params := pairs(args)
	if msg, ok := t.lookup(lang, key); ok {
		return namedSprintf(msg, params)
	}
	if t.fallbackToKey {
		return namedSprintf(key, params)
	}
	return ""
}

// Td works like T but falls back to defaultValue.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	params := pairs(args)
	if msg, ok := t.lookup(lang, key); ok {
		return namedSprintf(msg, params)
	}
	return namedSprintf(defaultValue, params)
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, l := range []string{lang, t.defaultLang} {
		messages, ok := t.translations[l]
		if !ok {
			continue
		}
		if s, ok := getString(messages, key); ok {
			return s, true
		}
	}
	if t.missingLogMode {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
	}
	return "", false
}

// getString walks dot-separated keys through nested maps.
func getString(m map[string]any, key string) (string, bool) {
	var cur any = m
	for part := range strings.SplitSeq(key, ".") {
		node, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		if cur, ok = node[part]; !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}

func pairs(args []string) map[string]string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// namedSprintf replaces %{name} placeholders. Unknown names are left as is.
func namedSprintf(tmpl string, params map[string]string) string {
	if len(params) == 0 {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
