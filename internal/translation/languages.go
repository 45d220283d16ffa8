package translation

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// NormalizeCode parses raw as a BCP 47 tag and returns its canonical base
// language code ("es" for " ES-mx "). It returns "" when raw is not a language.
func NormalizeCode(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	return base.String()
}

// LanguageName returns the English display name for a code, or the code itself.
func LanguageName(code string) string {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}

// DefaultLanguages seeds the language table on first start. Only the default
// language is active initially.
var DefaultLanguages = []string{"en", "es", "fr", "zh", "vi", "ar", "ru", "ko", "pt", "hi"}
