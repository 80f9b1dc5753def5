// Package server runs the status server: a JSON API over the window and the
// indicator feed, a websocket stream of lifecycle events and /metrics.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lcalzada-xor/iwbind/internal/adapters/web"
	"github.com/lcalzada-xor/iwbind/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr             string
	FrontEnd         ports.FrontEnd
	WSManager        *web.WSManager
	WindowHandler    *handlers.WindowHandler
	IndicatorHandler *handlers.IndicatorHandler

	logger *slog.Logger
	srv    *http.Server
}

// NewServer creates a new status server.
func NewServer(addr string, fe ports.FrontEnd, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		Addr:             addr,
		FrontEnd:         fe,
		WSManager:        web.NewWSManager(logger),
		WindowHandler:    handlers.NewWindowHandler(fe),
		IndicatorHandler: handlers.NewIndicatorHandler(fe),
		logger:           logger,
	}
}

// Run serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.WSManager.Start(ctx)

	s.srv = &http.Server{
		Handler:           otelhttp.NewHandler(SetupRoutes(ctx, s), "iwbind-server"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("Status server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Status server shutdown error", "error", err)
		}
	}()

	s.logger.Info("Status server listening", "addr", ln.Addr().String())
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
