package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Transcribe.Provider != "openai" {
		t.Errorf("transcribe provider = %q, want openai", cfg.Transcribe.Provider)
	}
	if cfg.Translate.Provider != "openai" {
		t.Errorf("translate provider = %q, want openai", cfg.Translate.Provider)
	}
	if cfg.Export.Strict {
		t.Error("strict export should default to off")
	}
	if cfg.Server.ListenAddr == "" {
		t.Error("listen address should have a default")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jimaku.yaml")
	data := []byte(`
gemini_api_key: file-key
translate:
  provider: gemini
  model: gemini-2.5-flash
export:
  strict: true
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("GEMINI_API_KEY", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.GeminiAPIKey != "file-key" {
		t.Errorf("gemini key = %q, want file-key", cfg.GeminiAPIKey)
	}
	if cfg.Translate.Provider != "gemini" {
		t.Errorf("translate provider = %q, want gemini", cfg.Translate.Provider)
	}
	if !cfg.Export.Strict {
		t.Error("strict export should be enabled by file")
	}
	// untouched fields keep defaults
	if cfg.Transcribe.Provider != "openai" {
		t.Errorf("transcribe provider = %q, want default openai", cfg.Transcribe.Provider)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jimaku.yaml")
	if err := os.WriteFile(path, []byte("openai_api_key: file-key\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("OPENAI_API_KEY", "env-key")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.OpenAIAPIKey != "env-key" {
		t.Errorf("openai key = %q, want env-key", cfg.OpenAIAPIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestAPIKeyFor(t *testing.T) {
	cfg := Default()
	cfg.OpenAIAPIKey = "a"
	cfg.AnthropicAPIKey = "b"
	cfg.GeminiAPIKey = "c"

	tests := []struct {
		provider string
		want     string
	}{
		{"openai", "a"},
		{"anthropic", "b"},
		{"gemini", "c"},
		{"unknown", ""},
	}
	for _, tt := range tests {
		if got := cfg.APIKeyFor(tt.provider); got != tt.want {
			t.Errorf("APIKeyFor(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestIsTargetLanguage(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"ja", true},
		{"en", true},
		{"ko", true},
		{"pt", false},
		{"", false},
		{"JA", false},
	}
	for _, tt := range tests {
		if got := IsTargetLanguage(tt.code); got != tt.want {
			t.Errorf("IsTargetLanguage(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
