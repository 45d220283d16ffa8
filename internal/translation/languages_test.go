package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fr", "fr"},
		{" ES ", "es"},
		{"pt-BR", "pt"},
		{"zh-Hant", "zh"},
		{"", ""},
		{"not a language", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCode(tt.in))
		})
	}
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "French", LanguageName("fr"))
	assert.Equal(t, "Spanish", LanguageName("es"))
	assert.Equal(t, "??", LanguageName("??"), "unknown codes fall back to the code")
}

func TestDefaultLanguagesAreCanonical(t *testing.T) {
	seen := map[string]bool{}
	for _, code := range DefaultLanguages {
		assert.Equal(t, code, NormalizeCode(code))
		assert.NotEmpty(t, LanguageName(code))
		assert.False(t, seen[code], "duplicate %s", code)
		seen[code] = true
	}
}

func TestContextFor(t *testing.T) {
	assert.Equal(t, ContextCategory, ContextFor("category"))
	assert.Equal(t, ContextFoodItem, ContextFor("food_item"))
}
