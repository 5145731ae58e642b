// Package server assembles the user management service: storage, the
// credential hasher, validation and executors, and both transports. It
// handles signals and shuts everything down in order.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/usermanager/internal/cryptox"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/server/clock"
	"github.com/dmitrijs2005/usermanager/internal/server/config"
	"github.com/dmitrijs2005/usermanager/internal/server/httpapi"
	"github.com/dmitrijs2005/usermanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/usermanager/internal/server/services"

	gs "github.com/dmitrijs2005/usermanager/internal/server/grpc"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	storage     *repomanager.Storage
	userService *services.UserService
	grpcServer  runner
	httpServer  runner
}

// NewApp opens storage (running migrations) and wires the service graph.
// Logs go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {

	logger, err := logging.New(c.LogLevel, c.LogFormat, w)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	hasher, err := cryptox.NewArgon2Hasher(c.PasswordPepper, c.Argon2Params())
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	storage, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	logger.Info(ctx, "Storage ready", "kind", string(storage.Kind))

	us := services.NewUserService(storage.Users, clock.System{}, hasher, logger)

	return &App{
		config:      c,
		logger:      logger,
		storage:     storage,
		userService: us,
		grpcServer:  gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, storage),
		httpServer:  httpapi.NewHTTPServer(c.EndpointAddrHTTP, us, storage, c.ShutdownTimeout, logger),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// startServer runs s until ctx is done. A server that fails stops the
// whole app.
func (app *App) startServer(ctx context.Context, cancelFunc context.CancelFunc, name string, s runner) error {
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}

// Run serves both transports until ctx is canceled, a signal arrives, or a
// server fails, then closes storage. It returns the first server error.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	start := func(name string, s runner) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := app.startServer(ctx, cancelFunc, name, s); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	start("grpc", app.grpcServer)
	start("http", app.httpServer)

	wg.Wait()

	if err := app.storage.Close(); err != nil {
		app.logger.Error(ctx, "closing storage", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")

	return errors.Join(errs...)
}
