package client

import (
	"context"

	"github.com/dmitrijs2005/usermanager/internal/models"
)

type Client interface {
	Close() error
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error)
	AuthenticateUser(ctx context.Context, req models.AuthenticateRequest) (models.PublicUser, error)
	UpdateUserEmail(ctx context.Context, req models.ChangeEmailRequest) (models.ChangeEmailResponse, error)
	UpdateUserPassword(ctx context.Context, req models.ChangePasswordRequest) (models.ChangePasswordResponse, error)
	Ping(ctx context.Context) error
}
