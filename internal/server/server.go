// Package server exposes the engine to a browser client over a
// websocket. Each connection gets its own engine: the trainer is
// single-player and the engine trusts its caller, so the server is a
// transport shim, not an authority.
package server

import (
	"context"
	"errors"
	rand "math/rand/v2"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjacktrainer/internal/config"
	"github.com/lox/blackjacktrainer/internal/randutil"
	"golang.org/x/sync/errgroup"
)

// Server hosts the websocket play endpoint.
type Server struct {
	logger   *log.Logger
	settings *config.Settings
	seed     int64
	upgrader websocket.Upgrader
	conns    atomic.Int64
}

// NewServer creates a server. Each connection derives its RNG from seed
// so a seeded server is reproducible per connection order.
func NewServer(logger *log.Logger, settings *config.Settings, seed int64) *Server {
	return &Server{
		logger:   logger.WithPrefix("server"),
		settings: settings,
		seed:     seed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The trainer runs on localhost; the browser client is served
			// from anywhere during development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router returns the HTTP routes: a health check and the websocket
// endpoint.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/ws", s.handleWS)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	rng := s.connRNG(s.conns.Add(1))
	session := newSession(s.logger, conn, s.settings, rng)
	session.run()
}

// connRNG derives a per-connection RNG from the server seed.
func (s *Server) connRNG(conn int64) *rand.Rand {
	if s.seed != 0 {
		return randutil.New(s.seed + conn)
	}
	return randutil.New(time.Now().UnixNano() + conn)
}
