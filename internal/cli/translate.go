package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jimaku-dev/jimaku/internal/assets"
	"github.com/jimaku-dev/jimaku/internal/export"
	"github.com/jimaku-dev/jimaku/internal/ingest"
	"github.com/jimaku-dev/jimaku/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [subtitle_file]",
	Short: "Translate an existing SRT file into another language",
	Long: `Translate an existing SRT subtitle file line by line.

Cue timing and numbering are preserved. Each cue is translated with
an independent API call, so a failure leaves only that cue blank for
manual correction. Cues are translated without neighbor context since
subtitle files are usually already well-segmented sentences.

Examples:
  jimaku translate subs.srt -t ja
  jimaku translate subs.srt -t es --provider gemini -o subs.es.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language code (ja, en, zh, fr, es, de, ko)")
	translateCmd.Flags().
		String("provider", "", "Translation provider (openai, anthropic, gemini)")
	translateCmd.Flags().
		String("model", "", "Translation model (provider-specific default if unset)")
	translateCmd.Flags().
		Bool("strict", false, "Refuse to export a track containing malformed cues")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	ctx := context.Background()

	if strings.ToLower(filepath.Ext(subtitlePath)) != ".srt" {
		return fmt.Errorf("unsupported subtitle format: expected an .srt file")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	targetFlag, _ := cmd.Flags().GetString("target-language")
	targetLang, err := resolveTargetLanguage(targetFlag)
	if err != nil {
		return err
	}

	outputFlag, _ := cmd.Flags().GetString("output")
	outputPath := outputFlag
	if outputPath == "" {
		base := strings.TrimSuffix(subtitlePath, filepath.Ext(subtitlePath))
		outputPath = fmt.Sprintf("%s.%s.srt", base, targetLang)
	}

	file, err := os.Open(subtitlePath)
	if err != nil {
		return fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer file.Close()

	adapter := ingest.NewSubtitleAdapter(file)
	p, err := adapter.Ingest(ctx)
	if err != nil {
		return err
	}

	translator, err := translate.Factory(
		ctx,
		translate.Provider(cfg.Translate.Provider),
		cfg.APIKeyFor(cfg.Translate.Provider),
		translate.Options{Model: cfg.Translate.Model},
	)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	logger.Infow("Translating subtitle file",
		"input", subtitlePath,
		"lines", p.Len(),
		"target_language", targetLang,
	)

	orchestrator := translate.NewOrchestrator(translator, logger)
	report, err := orchestrator.Run(ctx, p, targetLang, adapter.ContextAware())
	if err != nil {
		return fmt.Errorf("translation aborted: %w", err)
	}
	if len(report.Failures) > 0 {
		logger.Warnw("Some lines failed to translate and were left blank",
			"failed", len(report.Failures),
			"translated", report.Translated,
		)
	}

	scope, err := assets.NewScopeIn(cfg.TempDir, "jimaku")
	if err != nil {
		return err
	}
	defer scope.Close()

	exporter := &export.Exporter{Strict: cfg.Export.Strict}
	result, err := exporter.Export(p, scope, "track.srt")
	if err != nil {
		return err
	}
	reportWarnings(result.Warnings)

	if err := os.WriteFile(outputPath, result.Payload, 0644); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}

	logger.Infow("Translated subtitles written",
		"output", outputPath,
		"cues", p.Len(),
	)
	return nil
}
