// Package validation checks and normalizes category and food item names.
package validation

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"pantry-backend/internal/models"
)

const (
	MaxNameLength  = 36
	MinNameLength  = 3
	MinNameLetters = 3
)

// Kind classifies why a name was rejected.
type Kind string

const (
	KindTooLong       Kind = "too_long"
	KindTooShort      Kind = "too_short"
	KindTooFewLetters Kind = "too_few_letters"
	KindExtraSpaces   Kind = "extra_spaces"
	KindRepeatedWords Kind = "repeated_words"
	KindDuplicateName Kind = "duplicate_name"
)

// Error is returned for names that break one of the naming rules.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NameMatch is an existing category or food item whose name collides with a candidate.
type NameMatch struct {
	Type models.EntityType
	ID   uint
	Name string
}

// NameIndex finds existing names across categories and food items, compared case-insensitively.
type NameIndex interface {
	FindNameMatches(ctx context.Context, name string) ([]NameMatch, error)
}

// NameValidator applies the naming rules in order and stops at the first failure.
type NameValidator struct {
	index NameIndex
}

func NewNameValidator(index NameIndex) *NameValidator {
	return &NameValidator{index: index}
}

// Validate checks raw as a name for an entity of type kind. existingID excludes
// the entity being renamed from the uniqueness check; pass 0 on create.
// It returns the Title Case form on success. Storage failures during the
// uniqueness lookup are returned as plain errors, not *Error.
func (v *NameValidator) Validate(ctx context.Context, raw string, kind models.EntityType, existingID uint) (string, error) {
	name, err := CheckFormat(raw)
	if err != nil {
		return "", err
	}

	if v.index != nil {
		matches, err := v.index.FindNameMatches(ctx, name)
		if err != nil {
			return "", fmt.Errorf("failed to check name uniqueness: %w", err)
		}
		for _, m := range matches {
			if existingID != 0 && m.Type == kind && m.ID == existingID {
				continue
			}
			return "", DuplicateError(m, kind)
		}
	}

	return TitleCase(name), nil
}

// CheckFormat runs every rule that needs no storage access and returns the
// trimmed name.
func CheckFormat(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	length := utf8.RuneCountInString(name)

	if length > MaxNameLength {
		return "", &Error{Kind: KindTooLong, Message: fmt.Sprintf("Name must be %d characters or less", MaxNameLength)}
	}
	if length < MinNameLength {
		return "", &Error{Kind: KindTooShort, Message: fmt.Sprintf("Name must be at least %d characters long", MinNameLength)}
	}
	if countLetters(name) < MinNameLetters {
		return "", &Error{Kind: KindTooFewLetters, Message: fmt.Sprintf("Name must contain at least %d letters", MinNameLetters)}
	}
	if hasExtraSpaces(name) {
		return "", &Error{Kind: KindExtraSpaces, Message: "Name cannot contain multiple consecutive spaces"}
	}
	if word, ok := repeatedWord(name); ok {
		return "", &Error{Kind: KindRepeatedWords, Message: fmt.Sprintf("Name cannot repeat the word %q", word)}
	}
	return name, nil
}

// TitleCase upper-cases the first character of every word and lower-cases the
// rest. It maps rune by rune, so the result has as many characters as s and
// still fits MaxNameLength.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// DuplicateError reports that m already holds the name a kind entity wanted.
func DuplicateError(m NameMatch, kind models.EntityType) *Error {
	if m.Type == kind {
		return &Error{
			Kind:    KindDuplicateName,
			Message: fmt.Sprintf("A %s named %q already exists", kind.Label(), m.Name),
		}
	}
	return &Error{
		Kind:    KindDuplicateName,
		Message: fmt.Sprintf("%q already exists as a %s", m.Name, m.Type.Label()),
	}
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

func hasExtraSpaces(s string) bool {
	prevSpace := false
	for _, r := range s {
		space := unicode.IsSpace(r)
		if space && prevSpace {
			return true
		}
		prevSpace = space
	}
	return false
}

func repeatedWord(s string) (string, bool) {
	seen := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if _, ok := seen[w]; ok {
			return w, true
		}
		seen[w] = struct{}{}
	}
	return "", false
}
