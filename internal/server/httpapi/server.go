package httpapi

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/gofiber/fiber/v2"
)

type HTTPServer struct {
	address         string
	app             *fiber.App
	shutdownTimeout time.Duration
	logger          logging.Logger
}

func NewHTTPServer(address string, users userService, store Pinger, shutdownTimeout time.Duration, l logging.Logger) *HTTPServer {
	return &HTTPServer{
		address:         address,
		app:             NewApp(users, store, l),
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "http_server"),
	}
}

func (s *HTTPServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is canceled, then drains in-flight
// requests for at most the shutdown timeout.
func (s *HTTPServer) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(s.shutdownTimeout); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())
	return s.app.Listener(ln)
}
