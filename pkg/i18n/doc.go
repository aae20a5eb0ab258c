// Package i18n renders localized messages from YAML or JSON translation
// files using named placeholders (`%{key}`).
//
// A Translator loads its catalog once through a TranslationAdapter (in-memory
// map, single file, any fs.FS such as embed.FS or os.DirFS, or a layered
// combination) and is read-only afterwards, so it is safe for concurrent use.
//
// Requested locales are normalized ("de_DE.UTF-8" becomes "de-DE") and matched
// against the loaded languages with golang.org/x/text/language, so a request
// for "de-AT" is served from a "de" catalog. Unmatched locales use the default
// language.
//
// # Usage
//
//	translator, err := i18n.NewTranslator(ctx,
//	    i18n.NewFSAdapter(i18n.NewYAMLParser(), locales, "locales"),
//	    i18n.WithDefaultLanguage("en"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	msg := translator.Render("de", "validation.gte_sum", map[string]any{
//	    "field": "Total", "sum": 100, "value": 99,
//	})
//
// The locale can travel in a context.Context with SetLocale and is read back
// by Tc and GetLocale.
package i18n
