package executors

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
	"github.com/dmitrijs2005/usermanager/internal/common"
	"github.com/dmitrijs2005/usermanager/internal/cryptox"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/dmitrijs2005/usermanager/internal/server/mappers"
)

// Authenticate resolves a username-or-email and password to a user in a
// single store lookup keyed by both, so a wrong identity and a wrong
// password are indistinguishable.
type Authenticate struct {
	store  CredentialsFinder
	hasher cryptox.Hasher
	logger logging.Logger
}

func NewAuthenticate(store CredentialsFinder, hasher cryptox.Hasher, logger logging.Logger) *Authenticate {
	return &Authenticate{store: store, hasher: hasher, logger: logger.With("executor", "authenticate")}
}

func (e *Authenticate) Execute(ctx context.Context, req models.AuthenticateRequest) (models.PublicUser, error) {
	digest := e.hasher.Hash(req.Password)

	user, err := e.store.GetByCredentials(ctx, req.Username, digest)
	switch {
	case err == nil:
		return mappers.ToPublic(user), nil
	case errors.Is(err, common.ErrorNotFound):
		return models.PublicUser{}, apperrors.InvalidCredentials()
	case canceled(ctx, err):
		return models.PublicUser{}, err
	default:
		e.logger.Error(ctx, "credentials lookup failed", "error", err)
		return models.PublicUser{}, apperrors.Internal(err)
	}
}
