package translate

import (
	"context"
	"strings"
	"testing"
)

func TestFactoryReturnsOpenAITranslator(t *testing.T) {
	ctx := context.Background()
	translator, err := Factory(ctx, ProviderOpenAI, "fake-key", Options{})
	if err != nil {
		t.Fatalf("Factory(ProviderOpenAI) returned error: %v", err)
	}
	if _, ok := translator.(*OpenAITranslator); !ok {
		t.Errorf("expected *OpenAITranslator, got %T", translator)
	}
}

func TestFactoryReturnsAnthropicTranslator(t *testing.T) {
	ctx := context.Background()
	translator, err := Factory(ctx, ProviderAnthropic, "fake-key", Options{})
	if err != nil {
		t.Fatalf("Factory(ProviderAnthropic) returned error: %v", err)
	}
	if _, ok := translator.(*AnthropicTranslator); !ok {
		t.Errorf("expected *AnthropicTranslator, got %T", translator)
	}
}

func TestFactoryReturnsGeminiTranslator(t *testing.T) {
	ctx := context.Background()
	translator, err := Factory(ctx, ProviderGemini, "fake-key", Options{})
	if err != nil {
		t.Fatalf("Factory(ProviderGemini) returned error: %v", err)
	}
	if _, ok := translator.(*GeminiTranslator); !ok {
		t.Errorf("expected *GeminiTranslator, got %T", translator)
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	ctx := context.Background()
	if _, err := Factory(ctx, Provider("unknown"), "fake-key", Options{}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFactoryRequiresAPIKey(t *testing.T) {
	ctx := context.Background()
	if _, err := Factory(ctx, ProviderOpenAI, "", Options{}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestBuildPromptContextFree(t *testing.T) {
	prompt := BuildPrompt(Options{}, Request{
		Text:           "Bonjour",
		TargetLanguage: "en",
	})

	if !strings.Contains(prompt, "into en") {
		t.Error("prompt should name the target language")
	}
	if !strings.Contains(prompt, "Bonjour") {
		t.Error("prompt should contain the target line")
	}
	if strings.Contains(prompt, "Previous line") {
		t.Error("context-free prompt should not mention neighbors")
	}
}

func TestBuildPromptContextAware(t *testing.T) {
	prompt := BuildPrompt(Options{}, Request{
		Text:           "middle",
		TargetLanguage: "ja",
		Context:        &Context{Previous: "before", Next: "after"},
	})

	if !strings.Contains(prompt, "Previous line: before") {
		t.Error("prompt should carry the previous line")
	}
	if !strings.Contains(prompt, "Next line: after") {
		t.Error("prompt should carry the next line")
	}
	if !strings.Contains(prompt, "translate only the target line") {
		t.Error("prompt should restrict translation to the target line")
	}
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"```\nhello\n```", "hello"},
		{"hello", "hello"},
	}
	for _, tt := range tests {
		if got := cleanResponse(tt.in); got != tt.want {
			t.Errorf("cleanResponse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
