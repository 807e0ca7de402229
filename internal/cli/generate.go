package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jimaku-dev/jimaku/internal/assets"
	"github.com/jimaku-dev/jimaku/internal/export"
	"github.com/jimaku-dev/jimaku/internal/ingest"
	"github.com/jimaku-dev/jimaku/internal/media"
	"github.com/jimaku-dev/jimaku/internal/transcribe"
	"github.com/jimaku-dev/jimaku/internal/translate"
)

var generateCmd = &cobra.Command{
	Use:   "generate [media_file]",
	Short: "Transcribe a media file and generate translated subtitles",
	Long: `Generate translated subtitles for an audio or video file.

For video files the audio track is extracted first. The audio is
transcribed with the configured provider, then every segment is
translated individually into the target language. Neighboring
segments are passed as context to improve short ambiguous lines; a
failed translation leaves that line blank instead of aborting.

Examples:
  jimaku generate video.mp4 -t ja
  jimaku generate podcast.mp3 -t en --provider anthropic
  jimaku generate video.mp4 -t fr --strict -o video.fr.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().
		StringP("target-language", "t", "", "Target language code (ja, en, zh, fr, es, de, ko)")
	generateCmd.Flags().
		String("transcribe-provider", "", "Transcription provider (openai, gemini)")
	generateCmd.Flags().
		String("provider", "", "Translation provider (openai, anthropic, gemini)")
	generateCmd.Flags().
		String("model", "", "Translation model (provider-specific default if unset)")
	generateCmd.Flags().
		Bool("strict", false, "Refuse to export a track containing malformed cues")

	_ = generateCmd.MarkFlagRequired("target-language")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !media.IsMediaFile(mediaPath) {
		return fmt.Errorf("unsupported file type: expected an audio or video file")
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
	outputPath := defaultOutputPath(mediaPath, outputFlag)

	scope, err := assets.NewScopeIn(cfg.TempDir, "jimaku")
	if err != nil {
		return err
	}
	defer scope.Close()

	transcriber, err := transcribe.Factory(
		ctx,
		transcribe.Provider(cfg.Transcribe.Provider),
		cfg.APIKeyFor(cfg.Transcribe.Provider),
		transcribe.Options{Model: cfg.Transcribe.Model},
	)
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	logger.Infow("Ingesting media",
		"input", mediaPath,
		"transcribe_provider", cfg.Transcribe.Provider,
	)

	adapter := ingest.NewMediaAdapter(mediaPath, scope, transcriber, logger)
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

	logger.Infow("Translating segments",
		"lines", p.Len(),
		"target_language", targetLang,
		"provider", cfg.Translate.Provider,
	)

	orchestrator := translate.NewOrchestrator(translator, logger)
	orchestrator.OnProgress = func(done, total int) {
		logger.Debugw("Translation progress", "done", done, "total", total)
	}

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

	exporter := &export.Exporter{Strict: cfg.Export.Strict}
	result, err := exporter.Export(p, scope, "track.srt")
	if err != nil {
		return err
	}
	reportWarnings(result.Warnings)

	if err := os.WriteFile(outputPath, result.Payload, 0644); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}

	logger.Infow("Subtitles written",
		"output", outputPath,
		"cues", p.Len(),
	)
	return nil
}
