package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jimaku-dev/jimaku/internal/config"
	"github.com/jimaku-dev/jimaku/internal/project"
)

// loadConfig builds the process config from the --config flag, the
// environment, and per-command flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Lookup("transcribe-provider") != nil {
		if v, _ := cmd.Flags().GetString("transcribe-provider"); v != "" {
			cfg.Transcribe.Provider = v
		}
	}
	if cmd.Flags().Lookup("provider") != nil {
		if v, _ := cmd.Flags().GetString("provider"); v != "" {
			cfg.Translate.Provider = v
		}
	}
	if cmd.Flags().Lookup("model") != nil {
		if v, _ := cmd.Flags().GetString("model"); v != "" {
			cfg.Translate.Model = v
		}
	}
	if cmd.Flags().Lookup("strict") != nil {
		if v, _ := cmd.Flags().GetBool("strict"); v {
			cfg.Export.Strict = true
		}
	}

	return cfg, nil
}

func resolveTargetLanguage(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !config.IsTargetLanguage(code) {
		return "", fmt.Errorf(
			"unsupported target language %q: use one of %s",
			code,
			strings.Join(config.TargetLanguages, ", "),
		)
	}
	return code, nil
}

// defaultOutputPath derives the subtitle output location from the
// input file when --output is not given.
func defaultOutputPath(inputPath, outputPath string) string {
	if outputPath != "" {
		return outputPath
	}
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + ".srt"
}

func reportWarnings(warnings []project.Warning) {
	for _, warning := range warnings {
		logger.Warnw("Malformed cue in regenerated track",
			"index", warning.Index,
			"detail", warning.String(),
		)
	}
}
