package cli

import (
	"github.com/spf13/cobra"

	"github.com/jimaku-dev/jimaku/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "jimaku",
	Short: "AI-assisted subtitle translation and timing editor",
	Long: `Jimaku turns spoken-language video or audio into time-aligned
translated subtitles, and re-times existing subtitle files.

Media sources are transcribed with an AI provider and translated line
by line; existing SRT files are translated directly. Timing offsets
can be adjusted per line and the track regenerated, preserving cue
order and numbering. The serve command exposes the same pipeline as
an HTTP editing API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("config", "c", "", "Path to YAML config file")
}
