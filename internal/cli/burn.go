package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jimaku-dev/jimaku/internal/media"
)

var burnCmd = &cobra.Command{
	Use:   "burn [video_file] [subtitle_file]",
	Short: "Burn a subtitle file into a video",
	Long: `Burn subtitles permanently into a video's pixel data.

The subtitle file is composited with ffmpeg's subtitles filter and a
new video is written; the source video is never modified. On failure
no partial output is left behind.

Examples:
  jimaku burn video.mp4 subs.srt
  jimaku burn video.mp4 subs.srt -o subtitled.mp4`,
	Args: cobra.ExactArgs(2),
	RunE: runBurn,
}

func init() {
	rootCmd.AddCommand(burnCmd)
}

func runBurn(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	subtitlePath := args[1]
	ctx := context.Background()

	if !media.IsVideoFile(videoPath) {
		return fmt.Errorf("unsupported file type: expected a video file")
	}
	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
		outputPath = base + ".subtitled" + filepath.Ext(videoPath)
	}

	logger.Infow("Burning subtitles",
		"video", videoPath,
		"subtitles", subtitlePath,
		"output", outputPath,
	)

	if err := media.BurnSubtitles(ctx, videoPath, subtitlePath, outputPath); err != nil {
		return err
	}

	logger.Infow("Subtitled video written", "output", outputPath)
	return nil
}
