package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fsbot/internal/server"
)

var serveAddr string

// serveCmd exposes the engine over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve chat sessions over HTTP",
	Long: `Starts an HTTP server. Each session has its own transcript and current
directory:

  POST   /sessions                    open a session
  POST   /sessions/:id/utterances     {"text": "..."} -> {"reply": "...", "intent": "..."}
  GET    /sessions/:id/transcript     full history
  DELETE /sessions/:id                close a session`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		srv := server.New(cfg)
		logger.Info("Starting server",
			zap.String("addr", srv.Addr()),
			zap.String("root", cfg.Workspace.Root),
			zap.Duration("session_ttl", cfg.GetSessionTTL()))

		if err := srv.Run(cmd.Context()); err != nil {
			return err
		}
		logger.Info("Server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: server.addr from config)")
}
