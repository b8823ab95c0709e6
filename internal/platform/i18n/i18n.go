// Package i18n formats user facing message text.
//
// Translation catalogs are not shipped; text passes through the printer
// unchanged apart from argument formatting.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// T formats a message for the response language.
func T(format string, args ...any) string {
	return printer.Sprintf(format, args...)
}

// ParseLanguage returns the canonical form of a BCP-47 language tag.
func ParseLanguage(tag string) (string, error) {
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}
