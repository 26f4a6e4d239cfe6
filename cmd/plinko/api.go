package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-plinko/internal/platform/web"
	"github.com/vovakirdan/tui-plinko/internal/storage"
)

var (
	flagAPIAddr    string
	flagAPIPlayer  string
	flagCORSOrigin []string
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP JSON API",
	Long: `Serve one shared board over HTTP. Drops are played one at a time.

Endpoints:
  GET  /healthz
  GET  /api/board          - text rendering and slot payouts
  GET  /api/stats          - plays, winnings, average
  POST /api/drops          - {"column": 5}
  POST /api/reset          - zero the score
  GET  /api/drops/recent   - stored drops (?limit=N)

Examples:
  plinko api
  plinko api --addr 127.0.0.1:9000 --seed 42
  curl -d '{"column": 5}' localhost:8080/api/drops`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
	apiCmd.Flags().StringVar(&flagAPIPlayer, "player", "api", "Player name stored with API sessions")
	apiCmd.Flags().StringSliceVar(&flagCORSOrigin, "cors-origin", nil, "Allowed CORS origins (default any)")
}

func runAPI(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger("plinko-api")
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "path", flagDBPath, "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	server := web.NewServer(web.Config{
		Addr:           flagAPIAddr,
		Player:         flagAPIPlayer,
		Seed:           flagSeed,
		AllowedOrigins: flagCORSOrigin,
	}, store, logger)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx)
}
