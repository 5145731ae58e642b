package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
	"github.com/dmitrijs2005/usermanager/internal/wire"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) RegisterUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := wire.DecodeRegisterRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := s.users.Register(ctx, req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return wire.EncodeRegisterResponse(resp), nil
}

func (s *GRPCServer) AuthenticateUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := wire.DecodeAuthenticateRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	user, err := s.users.Authenticate(ctx, req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return wire.EncodePublicUser(user), nil
}

func (s *GRPCServer) UpdateUserEmail(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := wire.DecodeChangeEmailRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := s.users.ChangeEmail(ctx, req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return wire.EncodeChangeEmailResponse(resp), nil
}

func (s *GRPCServer) UpdateUserPassword(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := wire.DecodeChangePasswordRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := s.users.ChangePassword(ctx, req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return wire.EncodeChangePasswordResponse(resp), nil
}

// toStatus converts a service error into a gRPC status. Causes of internal
// errors are logged and never sent to the caller.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	ae, ok := apperrors.As(err)
	if !ok {
		ae = apperrors.Internal(err)
	}
	if ae.Code == apperrors.CodeInternal {
		s.logger.Error(ctx, "request failed", "error", err)
	}
	return ae.ToGRPCStatus()
}
