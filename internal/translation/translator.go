package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pantry-backend/internal/models"
)

// ErrTranslationFailed wraps every error a Translator returns.
var ErrTranslationFailed = errors.New("translation failed")

// Context tells the provider what kind of text it is translating.
type Context string

const (
	ContextCategory    Context = "category"
	ContextFoodItem    Context = "foodItem"
	ContextCustomInput Context = "customInput"
)

// ContextFor returns the translation context used for an entity type.
func ContextFor(t models.EntityType) Context {
	if t == models.EntityTypeFoodItem {
		return ContextFoodItem
	}
	return ContextCategory
}

// Translator turns text into the target language. Retries, if any, are the
// implementation's own concern.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string, tc Context) (string, error)
	Name() string
}

func failed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTranslationFailed, fmt.Sprintf(format, args...))
}

// DisabledTranslator is used when no provider is configured. Every call fails,
// so entities are still saved but get no automatic translations.
type DisabledTranslator struct{}

func (DisabledTranslator) Name() string { return "disabled" }

func (DisabledTranslator) Translate(_ context.Context, _, targetLang string, _ Context) (string, error) {
	return "", failed("no translation provider configured for %q", targetLang)
}

// cleanOutput strips whitespace and wrapping quotes that chat models tend to add.
func cleanOutput(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
