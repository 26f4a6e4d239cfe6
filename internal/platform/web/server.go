// Package web serves a single shared Plinko board over an HTTP JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/tui-plinko/internal/plinko"
	"github.com/vovakirdan/tui-plinko/internal/storage"
)

// GameID is the history key for drops played through the API.
const GameID = "plinko"

const shutdownTimeout = 10 * time.Second

// Config holds HTTP server configuration.
type Config struct {
	Addr           string
	Player         string   // name stored with API sessions
	Seed           int64    // 0 means time-based
	AllowedOrigins []string // CORS origins; empty allows any
}

// DefaultConfig returns the default HTTP server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:   ":8080",
		Player: "api",
	}
}

// Server owns one board shared by all clients. Drops are serialized by mu and
// run to completion inside the lock.
type Server struct {
	cfg    Config
	logger *log.Logger
	store  *storage.Store // nil disables history
	router chi.Router

	mu      sync.Mutex
	board   *plinko.Board
	session *storage.Session
}

// NewServer creates an API server. store may be nil.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if cfg.Player == "" {
		cfg.Player = DefaultConfig().Player
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		store:  store,
		board:  plinko.NewBoard(plinko.NewCoin(cfg.Seed)),
	}
	s.startSession()
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         60 * 15,
	}))

	r.Get("/healthz", s.health)
	r.Route("/api", func(rr chi.Router) {
		rr.Get("/board", s.getBoard)
		rr.Get("/stats", s.getStats)
		rr.Post("/drops", s.postDrop)
		rr.Get("/drops/recent", s.recentDrops)
		rr.Post("/reset", s.postReset)
	})
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP API", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Stopping HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// startSession opens a history session for the current board. Callers hold
// mu, or own s exclusively.
func (s *Server) startSession() {
	if s.store == nil {
		return
	}
	sess, err := s.store.StartSession(s.cfg.Player, GameID)
	if err != nil {
		s.logger.Warn("could not start session", "error", err)
		s.session = nil
		return
	}
	s.session = &sess
}
