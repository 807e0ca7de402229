package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries everything the pipeline needs from the environment:
// provider credentials, model selection, and policy knobs. It is
// constructed once at process start and passed down explicitly; there
// is no ambient global state.
type Config struct {
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	GeminiAPIKey    string `yaml:"gemini_api_key"`

	Transcribe struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
	} `yaml:"transcribe"`

	Translate struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
	} `yaml:"translate"`

	Export struct {
		// Strict refuses to export a track containing malformed cues
		// instead of passing them through with warnings.
		Strict bool `yaml:"strict"`
	} `yaml:"export"`

	Server struct {
		ListenAddr    string `yaml:"listen_addr"`
		MaxUploadSize int64  `yaml:"max_upload_size"`
	} `yaml:"server"`

	// TempDir is the root for session asset scopes. Empty means the
	// system temp directory.
	TempDir string `yaml:"temp_dir"`
}

func Default() *Config {
	c := &Config{}
	c.Transcribe.Provider = "openai"
	c.Translate.Provider = "openai"
	c.Server.ListenAddr = ":8765"
	c.Server.MaxUploadSize = 2 << 30 // 2 GiB
	return c
}

// Load builds the config from defaults, an optional YAML file, and
// environment variable overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAIAPIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.AnthropicAPIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("JIMAKU_LISTEN_ADDR"); v != "" {
		c.Server.ListenAddr = v
	}
	if v := os.Getenv("JIMAKU_TEMP_DIR"); v != "" {
		c.TempDir = v
	}
}

// APIKeyFor returns the credential for a provider name.
func (c *Config) APIKeyFor(provider string) string {
	switch provider {
	case "openai":
		return c.OpenAIAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	case "gemini":
		return c.GeminiAPIKey
	default:
		return ""
	}
}

// TargetLanguages is the set of translation targets offered to users.
var TargetLanguages = []string{"ja", "en", "zh", "fr", "es", "de", "ko"}

func IsTargetLanguage(code string) bool {
	for _, l := range TargetLanguages {
		if l == code {
			return true
		}
	}
	return false
}
