package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/dmitrijs2005/usermanager/internal/wire"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type userService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error)
	Authenticate(ctx context.Context, req models.AuthenticateRequest) (models.PublicUser, error)
	ChangeEmail(ctx context.Context, req models.ChangeEmailRequest) (models.ChangeEmailResponse, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.ChangePasswordResponse, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const defaultHealthInterval = 10 * time.Second

type GRPCServer struct {
	address        string
	users          userService
	store          Pinger
	health         *health.Server
	healthInterval time.Duration
	logger         logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us userService, store Pinger) *GRPCServer {
	return &GRPCServer{
		address:        a,
		logger:         l.With("module", "grpc_server"),
		users:          us,
		store:          store,
		health:         health.NewServer(),
		healthInterval: defaultHealthInterval,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is canceled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestIDInterceptor, s.loggingInterceptor))

	wire.RegisterUserServiceServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)

	go s.watchStore(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}

// watchStore keeps the health status of the user service in step with the
// store until ctx is done.
func (s *GRPCServer) watchStore(ctx context.Context) {
	s.checkStore(ctx)

	ticker := time.NewTicker(s.healthInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkStore(ctx)
		}
	}
}

func (s *GRPCServer) checkStore(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn(ctx, "store ping failed", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(wire.ServiceName, status)
}
