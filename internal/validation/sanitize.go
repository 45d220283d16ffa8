package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Preview is advisory feedback for a name that is still being typed.
// It never rejects input; Validate stays the authoritative check.
type Preview struct {
	Value    string   `json:"value"`
	Preview  string   `json:"preview"`
	Warnings []string `json:"warnings"`
}

// SanitizeInput truncates to the maximum length, collapses doubled spaces and
// warns about repeated words. A single trailing space is kept so the caller
// can keep typing the next word.
func SanitizeInput(raw string) Preview {
	p := Preview{Warnings: []string{}}

	value := strings.TrimLeftFunc(raw, unicode.IsSpace)

	var b strings.Builder
	prevSpace := false
	collapsed := false
	for _, r := range value {
		if unicode.IsSpace(r) {
			if prevSpace {
				collapsed = true
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	value = b.String()
	if collapsed {
		p.Warnings = append(p.Warnings, "Extra spaces were removed")
	}

	if utf8.RuneCountInString(value) > MaxNameLength {
		value = string([]rune(value)[:MaxNameLength])
		p.Warnings = append(p.Warnings, fmt.Sprintf("Name was shortened to %d characters", MaxNameLength))
	}

	if word, ok := repeatedWord(value); ok {
		p.Warnings = append(p.Warnings, fmt.Sprintf("The word %q appears more than once", word))
	}

	p.Value = value
	p.Preview = TitleCase(value)
	return p
}
