package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no locale is requested or none matches.
const DefaultLanguage = "en"

// NormalizeLocale turns POSIX and BCP 47 locale strings into a canonical
// BCP 47 tag: "de_DE.UTF-8" and "de-de" both become "de-DE". The POSIX
// "C" and "POSIX" locales normalize to DefaultLanguage.
func NormalizeLocale(locale string) (string, error) {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	switch locale {
	case "":
		return "", fmt.Errorf("%w: empty locale", ErrInvalidLanguage)
	case "C", "POSIX":
		return DefaultLanguage, nil
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidLanguage, locale, err)
	}
	return tag.String(), nil
}
