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

// ChangeEmail stops at the first of: email in use, unknown user, wrong
// password. Otherwise it stores the new email and stamps UpdatedAt.
type ChangeEmail struct {
	store  UserUpdater
	unique EmailUniqueness
	hasher cryptox.Hasher
	clock  clock.Clock
	logger logging.Logger
}

func NewChangeEmail(store UserUpdater, unique EmailUniqueness, hasher cryptox.Hasher, c clock.Clock, logger logging.Logger) *ChangeEmail {
	return &ChangeEmail{store: store, unique: unique, hasher: hasher, clock: c, logger: logger.With("executor", "change_email")}
}

func (e *ChangeEmail) Execute(ctx context.Context, req models.ChangeEmailRequest) (models.ChangeEmailResponse, error) {
	fail := models.ChangeEmailResponse{Result: models.ChangeEmailInternalServiceError}
	newEmail := models.NormalizeEmail(req.NewEmail)

	free, err := e.unique.EmailIsUnique(ctx, newEmail)
	if err != nil {
		if canceled(ctx, err) {
			return models.ChangeEmailResponse{}, err
		}
		e.logger.Error(ctx, "email uniqueness check failed", "user_id", req.UserID, "error", err)
		return fail, nil
	}
	if !free {
		return models.ChangeEmailResponse{Result: models.ChangeEmailInUse}, nil
	}

	user, err := e.store.GetByID(ctx, req.UserID)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return models.ChangeEmailResponse{}, apperrors.UserNotFound(req.UserID)
	case canceled(ctx, err):
		return models.ChangeEmailResponse{}, err
	case err != nil:
		e.logger.Error(ctx, "user lookup failed", "user_id", req.UserID, "error", err)
		return fail, nil
	}

	if !e.hasher.Verify(req.Password, user.PasswordHash) {
		return models.ChangeEmailResponse{Result: models.ChangeEmailInvalidPassword}, nil
	}

	now := e.clock.Now()
	user.Email = newEmail
	user.UpdatedAt = &now

	if err := ctx.Err(); err != nil {
		return models.ChangeEmailResponse{}, err
	}

	ok, err := e.store.Update(ctx, user)
	switch {
	case err == nil && ok:
		e.logger.Info(ctx, "email changed", "user_id", user.ID)
		return models.ChangeEmailResponse{Result: models.ChangeEmailSuccess}, nil
	case canceled(ctx, err):
		return models.ChangeEmailResponse{}, err
	case errors.Is(err, common.ErrorAlreadyExists):
		e.logger.Warn(ctx, "email change lost uniqueness race at commit", "user_id", user.ID, "error", err)
	case err != nil:
		e.logger.Error(ctx, "email update failed", "user_id", user.ID, "error", err)
	default:
		e.logger.Error(ctx, "email update not applied", "user_id", user.ID)
	}
	return fail, nil
}
