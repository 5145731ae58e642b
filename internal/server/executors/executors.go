// Package executors holds the four user commands. Each executor assumes
// its request already passed validation, classifies every store fault, and
// checks for cancellation before it issues a mutating call.
//
// Expected business outcomes come back as result values. UserNotFound and
// InvalidCredentials come back as *apperrors.Error. A canceled context is
// returned as the context error, meaning nothing was written.
package executors

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/google/uuid"
)

type UserCreator interface {
	Create(ctx context.Context, user *models.User) (bool, error)
}

type CredentialsFinder interface {
	GetByCredentials(ctx context.Context, usernameOrEmail, digest string) (*models.User, error)
}

type UserUpdater interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) (bool, error)
}

type EmailUniqueness interface {
	EmailIsUnique(ctx context.Context, email string) (bool, error)
}

// canceled reports whether err is ctx's own cancellation.
func canceled(ctx context.Context, err error) bool {
	ctxErr := ctx.Err()
	return ctxErr != nil && errors.Is(err, ctxErr)
}
