package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jimaku-dev/jimaku/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP subtitle editing API",
	Long: `Run the HTTP API behind the interactive editing surface.

Uploaded sources become independent editing sessions. Each session
exposes its lines for cell-by-cell edits of translation text and
timing offsets, regenerates its subtitle track on demand, and can
burn the track into the uploaded video. Session temp assets are
removed on session delete and at shutdown.

Example:
  jimaku serve --addr :8765`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.ListenAddr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, logger).ListenAndServe(ctx)
}
