package rules

import (
	"context"
	"embed"

	"github.com/dmitrymomot/fieldcheck/pkg/i18n"
)

//go:embed locales/*.yaml
var locales embed.FS

// DefaultTranslator loads the embedded validation catalog (English and German)
// with overrides layered on top in order. Later overrides win.
func DefaultTranslator(ctx context.Context, overrides []i18n.TranslationAdapter, opts ...i18n.Option) (*i18n.Translator, error) {
	layers := i18n.LayeredAdapter{i18n.NewFSAdapter(i18n.NewYAMLParser(), locales, "locales")}
	layers = append(layers, overrides...)
	return i18n.NewTranslator(ctx, layers, opts...)
}
