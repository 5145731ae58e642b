package executors

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
	"github.com/dmitrijs2005/usermanager/internal/common"
	"github.com/dmitrijs2005/usermanager/internal/cryptox"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/dmitrijs2005/usermanager/internal/server/clock"
)

type ChangePassword struct {
	store  UserUpdater
	hasher cryptox.Hasher
	clock  clock.Clock
	logger logging.Logger
}

func NewChangePassword(store UserUpdater, hasher cryptox.Hasher, c clock.Clock, logger logging.Logger) *ChangePassword {
	return &ChangePassword{store: store, hasher: hasher, clock: c, logger: logger.With("executor", "change_password")}
}

func (e *ChangePassword) Execute(ctx context.Context, req models.ChangePasswordRequest) (models.ChangePasswordResponse, error) {
	fail := models.ChangePasswordResponse{Result: models.ChangePasswordInternalServiceError}

	user, err := e.store.GetByID(ctx, req.UserID)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return models.ChangePasswordResponse{}, apperrors.UserNotFound(req.UserID)
	case canceled(ctx, err):
		return models.ChangePasswordResponse{}, err
	case err != nil:
		e.logger.Error(ctx, "user lookup failed", "user_id", req.UserID, "error", err)
		return fail, nil
	}

	if !e.hasher.Verify(req.OldPassword, user.PasswordHash) {
		return models.ChangePasswordResponse{Result: models.ChangePasswordInvalidPassword}, nil
	}

	now := e.clock.Now()
	user.PasswordHash = e.hasher.Hash(req.NewPassword)
	user.UpdatedAt = &now

	if err := ctx.Err(); err != nil {
		return models.ChangePasswordResponse{}, err
	}

	ok, err := e.store.Update(ctx, user)
	switch {
	case err == nil && ok:
		e.logger.Info(ctx, "password changed", "user_id", user.ID)
		return models.ChangePasswordResponse{Result: models.ChangePasswordSuccess}, nil
	case canceled(ctx, err):
		return models.ChangePasswordResponse{}, err
	case err != nil:
		e.logger.Error(ctx, "password update failed", "user_id", user.ID, "error", err)
	default:
		e.logger.Error(ctx, "password update not applied", "user_id", user.ID)
	}
	return fail, nil
}
