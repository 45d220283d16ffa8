package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultOpenAIModel = "gpt-4o-mini"
	openAIMaxRetries   = 2
)

// OpenAITranslator translates through the chat completions API. Any
// OpenAI-compatible endpoint works when BaseURL is set.
type OpenAITranslator struct {
	client openai.Client
	model  string
}

type OpenAIOptions struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

func NewOpenAITranslator(opts OpenAIOptions) *OpenAITranslator {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(openAIMaxRetries),
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(base))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAITranslator{
		client: openai.NewClient(reqOpts...),
		model:  model,
	}
}

func (t *OpenAITranslator) Name() string {
	return "openai"
}

// ModelName returns the configured model identifier.
func (t *OpenAITranslator) ModelName() string {
	return t.model
}

func (t *OpenAITranslator) Translate(ctx context.Context, text, targetLang string, tc Context) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", failed("text is required")
	}
	if strings.TrimSpace(targetLang) == "" {
		return "", failed("target language is required")
	}

	resp, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(t.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt(targetLang, tc)),
			openai.UserMessage(text),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai chat: %v", ErrTranslationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", failed("openai returned no choices")
	}

	translated := cleanOutput(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", failed("openai returned an empty translation")
	}
	return translated, nil
}

func systemPrompt(targetLang string, tc Context) string {
	target := LanguageName(targetLang)
	var subject string
	switch tc {
	case ContextCategory:
		subject = "the name of a food category in a food pantry inventory"
	case ContextFoodItem:
		subject = "the name of a food item stocked by a food pantry"
	default:
		subject = "a short piece of text entered by food pantry staff"
	}
	return fmt.Sprintf(
		"You translate %s into %s. Reply with the translation only, without quotes, notes or explanation. "+
			"Keep it short and use the wording a shopper would recognise on a label.",
		subject, target,
	)
}
