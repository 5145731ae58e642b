package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/dmitrijs2005/usermanager/internal/wire"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// userServiceClient is the part of wire.UserServiceClient the client uses.
type userServiceClient interface {
	RegisterUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	AuthenticateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateUserEmail(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateUserPassword(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type GRPCClient struct {
	endpointURL    string
	requestTimeout time.Duration
	conn           *grpc.ClientConn
	client         userServiceClient
	health         healthpb.HealthClient
}

func NewUserManagerClient(endpointURL string, requestTimeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, requestTimeout: requestTimeout}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// timeoutInterceptor bounds calls whose context carries no deadline.
func (s *GRPCClient) timeoutInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if _, ok := ctx.Deadline(); !ok && s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.timeoutInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = wire.NewUserServiceClient(conn)
	s.health = healthpb.NewHealthClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {

	out, err := s.client.RegisterUser(ctx, wire.EncodeRegisterRequest(req))
	if err != nil {
		return models.RegisterResponse{}, s.mapError(err)
	}

	resp, err := wire.DecodeRegisterResponse(out)
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("%w: %v", ErrServer, err)
	}
	return resp, nil
}

func (s *GRPCClient) AuthenticateUser(ctx context.Context, req models.AuthenticateRequest) (models.PublicUser, error) {

	out, err := s.client.AuthenticateUser(ctx, wire.EncodeAuthenticateRequest(req))
	if err != nil {
		return models.PublicUser{}, s.mapError(err)
	}

	user, err := wire.DecodePublicUser(out)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("%w: %v", ErrServer, err)
	}
	return user, nil
}

func (s *GRPCClient) UpdateUserEmail(ctx context.Context, req models.ChangeEmailRequest) (models.ChangeEmailResponse, error) {

	out, err := s.client.UpdateUserEmail(ctx, wire.EncodeChangeEmailRequest(req))
	if err != nil {
		return models.ChangeEmailResponse{}, s.mapError(err)
	}

	resp, err := wire.DecodeChangeEmailResponse(out)
	if err != nil {
		return models.ChangeEmailResponse{}, fmt.Errorf("%w: %v", ErrServer, err)
	}
	return resp, nil
}

func (s *GRPCClient) UpdateUserPassword(ctx context.Context, req models.ChangePasswordRequest) (models.ChangePasswordResponse, error) {

	out, err := s.client.UpdateUserPassword(ctx, wire.EncodeChangePasswordRequest(req))
	if err != nil {
		return models.ChangePasswordResponse{}, s.mapError(err)
	}

	resp, err := wire.DecodeChangePasswordResponse(out)
	if err != nil {
		return models.ChangePasswordResponse{}, fmt.Errorf("%w: %v", ErrServer, err)
	}
	return resp, nil
}

// Ping asks the server's health service whether the user service is
// serving.
func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: wire.ServiceName})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	if ae, ok := apperrors.FromGRPCStatus(st); ok {
		switch ae.Code {
		case apperrors.CodeInvalidCredentials:
			return ErrInvalidCredentials
		case apperrors.CodeUserNotFound:
			return ErrUserNotFound
		case apperrors.CodeValidationFailed:
			return &ValidationError{Violations: ae.Violations}
		default:
			return fmt.Errorf("%w: %s", ErrServer, ae.Message)
		}
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Canceled:
		return context.Canceled
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
