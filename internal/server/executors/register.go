package executors

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/usermanager/internal/common"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/dmitrijs2005/usermanager/internal/server/mappers"
)

type Register struct {
	store  UserCreator
	mapper *mappers.UserMapper
	logger logging.Logger
}

func NewRegister(store UserCreator, mapper *mappers.UserMapper, logger logging.Logger) *Register {
	return &Register{store: store, mapper: mapper, logger: logger.With("executor", "register")}
}

func (e *Register) Execute(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	user := e.mapper.ToUser(req)

	if err := ctx.Err(); err != nil {
		return models.RegisterResponse{}, err
	}

	ok, err := e.store.Create(ctx, user)
	switch {
	case err == nil && ok:
		e.logger.Info(ctx, "registered user", "user_id", user.ID)
		return models.RegisterResponse{ID: user.ID, Result: models.Registered}, nil
	case canceled(ctx, err):
		return models.RegisterResponse{}, err
	case errors.Is(err, common.ErrorAlreadyExists):
		e.logger.Warn(ctx, "registration lost uniqueness race at commit", "user_id", user.ID, "error", err)
	case err != nil:
		e.logger.Error(ctx, "could not register user", "user_id", user.ID, "error", err)
	default:
		e.logger.Error(ctx, "could not register user: create not applied", "user_id", user.ID)
	}
	return models.RegisterResponse{Result: models.RegisterInternalServiceError}, nil
}
