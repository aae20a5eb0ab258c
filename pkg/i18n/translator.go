package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translator renders messages from a catalog loaded through a TranslationAdapter.
type Translator struct {
	translations   map[string]map[string]any
	langs          []string
	matcher        language.Matcher
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	mu             sync.RWMutex
}

// NewTranslator creates a Translator and loads its catalog.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, tr := range translations {
		if lang == "" {
			return nil, fmt.Errorf("%w: empty language code", ErrInvalidLanguage)
		}
		if tr == nil {
			return nil, fmt.Errorf("%w: nil translations for %q", ErrInvalidLanguage, lang)
		}
	}

	t.translations = translations
	t.buildMatcher()
	t.logger.InfoContext(ctx, "translations loaded", "languages", t.langs)
	return t, nil
}

// buildMatcher orders languages with the default first so it wins ties and
// serves as the matcher's fallback.
func (t *Translator) buildMatcher() {
	t.langs = t.langs[:0]
	for lang := range t.translations {
		t.langs = append(t.langs, lang)
	}
	slices.Sort(t.langs)
	if i := slices.Index(t.langs, t.defaultLang); i > 0 {
		t.langs = slices.Insert(slices.Delete(t.langs, i, i+1), 0, t.defaultLang)
	}

	if len(t.langs) == 0 {
		return
	}

	tags := make([]language.Tag, len(t.langs))
	for i, lang := range t.langs {
		tags[i] = language.Make(lang)
	}
	t.matcher = language.NewMatcher(tags)
}

// SupportedLanguages returns the loaded language codes, default first.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.langs)
}

// Match returns the loaded language that best serves locale, or the default
// language when nothing matches.
func (t *Translator) Match(locale string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.match(locale)
}

func (t *Translator) match(locale string) string {
	if _, ok := t.translations[locale]; ok {
		return locale
	}
	if len(t.langs) == 0 {
		return t.defaultLang
	}

	normalized, err := NormalizeLocale(locale)
	if err != nil {
		return t.defaultLang
	}
	_, idx, conf := t.matcher.Match(language.Make(normalized))
	if conf == language.No {
		return t.defaultLang
	}
	return t.langs[idx]
}

// HasTranslation checks if a translation exists for the exact language and key.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langMap, ok := t.translations[lang]
	if !ok {
		return false
	}
	_, ok = lookup(langMap, key)
	return ok
}

// T translates key for lang with key/value pairs substituted into %{name}
// placeholders:
//
//	translator.T("en", "welcome", "name", "John") // "Hello, John!"
//
// Missing translations fall back to the default language and then to the
// key itself (unless WithFallbackToKey(false) was given).
func (t *Translator) T(lang, key string, args ...string) string {
	return t.render(lang, key, "", pairs(args))
}

// Td is T with an explicit fallback template instead of the key.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	return t.render(lang, key, defaultValue, pairs(args))
}

// Tc translates key using the locale stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Render translates key with placeholder values of any type, formatted with fmt.Sprint.
func (t *Translator) Render(lang, key string, values map[string]any) string {
	return t.render(lang, key, "", stringify(values))
}

// Renderd is Render with an explicit fallback template.
func (t *Translator) Renderd(lang, key, defaultValue string, values map[string]any) string {
	return t.render(lang, key, defaultValue, stringify(values))
}

func (t *Translator) render(lang, key, defaultValue string, params map[string]string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	resolved := t.match(lang)
	for _, candidate := range []string{resolved, t.defaultLang} {
		if tmpl, ok := t.template(candidate, key); ok {
			return Interpolate(tmpl, params)
		}
	}

	if t.missingLogMode {
		t.logger.Warn("translation not found", "lang", lang, "resolved", resolved, "key", key)
	}
	if defaultValue != "" {
		return Interpolate(defaultValue, params)
	}
	if t.fallbackToKey {
		return Interpolate(key, params)
	}
	return ""
}

func (t *Translator) template(lang, key string) (string, bool) {
	langMap, ok := t.translations[lang]
	if !ok {
		return "", false
	}
	val, ok := lookup(langMap, key)
	if !ok {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		if t.missingLogMode {
			t.logger.Warn("translation is not a string", "lang", lang, "key", key, "type", fmt.Sprintf("%T", v))
		}
		return "", false
	}
}

// lookup walks dot-separated keys through nested maps: "validation.gte_sum"
// reads m["validation"]["gte_sum"]. A flat key containing dots wins over the
// nested path.
func lookup(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}

	head, rest, nested := strings.Cut(key, ".")
	if !nested {
		return nil, false
	}
	switch next := m[head].(type) {
	case map[string]any:
		return lookup(next, rest)
	case map[any]any:
		converted := make(map[string]any, len(next))
		for k, v := range next {
			if ks, ok := k.(string); ok {
				converted[ks] = v
			}
		}
		return lookup(converted, rest)
	default:
		return nil, false
	}
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Interpolate replaces %{name} placeholders with values from params.
// Unknown placeholders are left untouched.
func Interpolate(tmpl string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// pairs turns key, value, key, value... into a map; an odd trailing key is ignored.
func pairs(args []string) map[string]string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

func stringify(values map[string]any) map[string]string {
	params := make(map[string]string, len(values))
	for k, v := range values {
		params[k] = fmt.Sprint(v)
	}
	return params
}
