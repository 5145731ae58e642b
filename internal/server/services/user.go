// Package services contains server-side business logic. UserService runs
// request validation and then the matching command executor for each of the
// four user commands. Transports call into it and never touch executors
// directly.
package services

import (
	"context"

	"github.com/dmitrijs2005/usermanager/internal/cryptox"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/dmitrijs2005/usermanager/internal/server/clock"
	"github.com/dmitrijs2005/usermanager/internal/server/executors"
	"github.com/dmitrijs2005/usermanager/internal/server/mappers"
	"github.com/dmitrijs2005/usermanager/internal/server/repositories/users"
	"github.com/dmitrijs2005/usermanager/internal/server/validation"
)

type UserService struct {
	validator      *validation.Validator
	register       *executors.Register
	authenticate   *executors.Authenticate
	changeEmail    *executors.ChangeEmail
	changePassword *executors.ChangePassword
}

// NewUserService wires validation and the executors over a single store.
func NewUserService(store users.Repository, c clock.Clock, h cryptox.Hasher, logger logging.Logger) *UserService {
	unique := validation.NewUniqueness(store)
	mapper := mappers.NewUserMapper(c, h)
	return newUserService(store, unique, mapper, c, h, logger)
}

func newUserService(store users.Repository, unique *validation.Uniqueness, mapper *mappers.UserMapper,
	c clock.Clock, h cryptox.Hasher, logger logging.Logger) *UserService {
	return &UserService{
		validator:      validation.New(unique),
		register:       executors.NewRegister(store, mapper, logger),
		authenticate:   executors.NewAuthenticate(store, h, logger),
		changeEmail:    executors.NewChangeEmail(store, unique, h, c, logger),
		changePassword: executors.NewChangePassword(store, h, c, logger),
	}
}

// Register returns a validation or internal *apperrors.Error when the
// request is rejected before the executor runs.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	if err := s.validator.Register(ctx, req); err != nil {
		return models.RegisterResponse{}, err
	}
	return s.register.Execute(ctx, req)
}

func (s *UserService) Authenticate(ctx context.Context, req models.AuthenticateRequest) (models.PublicUser, error) {
	if err := s.validator.Authenticate(req); err != nil {
		return models.PublicUser{}, err
	}
	return s.authenticate.Execute(ctx, req)
}

func (s *UserService) ChangeEmail(ctx context.Context, req models.ChangeEmailRequest) (models.ChangeEmailResponse, error) {
	if err := s.validator.ChangeEmail(req); err != nil {
		return models.ChangeEmailResponse{}, err
	}
	return s.changeEmail.Execute(ctx, req)
}

func (s *UserService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.ChangePasswordResponse, error) {
	if err := s.validator.ChangePassword(req); err != nil {
		return models.ChangePasswordResponse{}, err
	}
	return s.changePassword.Execute(ctx, req)
}
