package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, status int, content string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&captured)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"bad request","type":"invalid_request_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestOpenAITranslator_Translate(t *testing.T) {
	srv, captured := chatServer(t, http.StatusOK, "\"Fruits frais\"\n")
	tr := NewOpenAITranslator(OpenAIOptions{APIKey: "test-key", BaseURL: srv.URL})

	got, err := tr.Translate(context.Background(), "Fresh Fruit", "fr", ContextCategory)
	require.NoError(t, err)
	assert.Equal(t, "Fruits frais", got)

	assert.Equal(t, DefaultOpenAIModel, (*captured)["model"])
	messages, ok := (*captured)["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	assert.Contains(t, system["content"], "French")
	assert.Contains(t, system["content"], "food category")
}

func TestOpenAITranslator_EmptyReply(t *testing.T) {
	srv, _ := chatServer(t, http.StatusOK, "   ")
	tr := NewOpenAITranslator(OpenAIOptions{APIKey: "test-key", BaseURL: srv.URL})

	_, err := tr.Translate(context.Background(), "Rice", "es", ContextFoodItem)
	assert.ErrorIs(t, err, ErrTranslationFailed)
}

func TestOpenAITranslator_ProviderError(t *testing.T) {
	srv, _ := chatServer(t, http.StatusBadRequest, "")
	tr := NewOpenAITranslator(OpenAIOptions{APIKey: "test-key", BaseURL: srv.URL})

	_, err := tr.Translate(context.Background(), "Rice", "es", ContextFoodItem)
	assert.ErrorIs(t, err, ErrTranslationFailed)
}

func TestOpenAITranslator_RejectsBlankInput(t *testing.T) {
	tr := NewOpenAITranslator(OpenAIOptions{APIKey: "test-key", Model: "custom"})
	assert.Equal(t, "custom", tr.ModelName())

	_, err := tr.Translate(context.Background(), "  ", "es", ContextFoodItem)
	assert.ErrorIs(t, err, ErrTranslationFailed)
	_, err = tr.Translate(context.Background(), "Rice", "", ContextFoodItem)
	assert.ErrorIs(t, err, ErrTranslationFailed)
}

func TestDisabledTranslator(t *testing.T) {
	_, err := DisabledTranslator{}.Translate(context.Background(), "Rice", "es", ContextFoodItem)
	assert.True(t, errors.Is(err, ErrTranslationFailed))
}

func TestCleanOutput(t *testing.T) {
	assert.Equal(t, "Arroz", cleanOutput(" \"Arroz\" "))
	assert.Equal(t, "Arroz", cleanOutput("'Arroz'"))
	assert.Equal(t, "\"Arroz", cleanOutput("\"Arroz"))
	assert.Equal(t, "", cleanOutput("  "))
}

func TestSystemPromptMentionsContext(t *testing.T) {
	assert.Contains(t, systemPrompt("es", ContextFoodItem), "food item")
	assert.Contains(t, systemPrompt("es", ContextCustomInput), "short piece of text")
	assert.Contains(t, systemPrompt("es", ContextCustomInput), "Spanish")
}
