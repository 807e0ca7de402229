package translate

import (
	"context"
	"fmt"
	"strings"
)

// Context carries the neighboring lines of the text being translated.
// Either field may be empty at the edges of the track.
type Context struct {
	Previous string
	Next     string
}

// Request is one translation call for one line of text.
type Request struct {
	Text           string
	TargetLanguage string
	Context        *Context
}

// Translator converts a single line of text into the target language.
// Each call is independent: a failure affects only the line it was
// made for.
type Translator interface {
	Translate(ctx context.Context, req Request) (string, error)
}

// translation service provider
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

type Options struct {
	Model  string
	Prompt string
}

// creates Translator based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Translator, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAITranslator(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicTranslator(ctx, apiKey, opts)
	case ProviderGemini:
		return NewGeminiTranslator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", provider)
	}
}

// BuildPrompt creates the translation prompt for LLM providers. With
// context, the neighbors are given for disambiguation only and the
// model is told to translate just the target line.
func BuildPrompt(opts Options, req Request) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Translate the following subtitle line into %s.\n", req.TargetLanguage))
	sb.WriteString("Return ONLY the translated text, with no quotes, explanation, or markdown.\n")
	sb.WriteString("Preserve line breaks in the same positions.\n")

	if opts.Prompt != "" {
		sb.WriteString(fmt.Sprintf("Additional instructions: %s\n", opts.Prompt))
	}

	if req.Context != nil {
		sb.WriteString("\nNeighboring lines are provided as context to resolve ambiguity. ")
		sb.WriteString("Do NOT translate them; translate only the target line.\n")
		sb.WriteString(fmt.Sprintf("Previous line: %s\n", req.Context.Previous))
		sb.WriteString(fmt.Sprintf("Next line: %s\n", req.Context.Next))
	}

	sb.WriteString("\nTarget line:\n")
	sb.WriteString(req.Text)

	return sb.String()
}

// strips code fences and surrounding whitespace from a model response
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
