// Package users contains the User Store contract and its Postgres, SQLite
// and in-memory implementations.
//
// Absent records are reported as common.ErrorNotFound and unique-constraint
// violations as common.ErrorAlreadyExists. Every other failure is a storage
// fault wrapped as "db error: ...". Usernames and emails match
// case-insensitively everywhere: every store compares the foldKey of both
// sides, so Unicode letters fold the same way regardless of backend or
// database collation.
package users

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts a new user and reports whether a row was written.
	Create(ctx context.Context, user *models.User) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByCredentials returns the user whose username or email equals
	// usernameOrEmail and whose stored digest equals digest.
	GetByCredentials(ctx context.Context, usernameOrEmail, digest string) (*models.User, error)
	IsUsernameUnique(ctx context.Context, username string) (bool, error)
	IsEmailUnique(ctx context.Context, email string) (bool, error)
	// Update overwrites the mutable fields of the user with user.ID.
	Update(ctx context.Context, user *models.User) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// foldKey is the comparison key stored next to a username or email.
func foldKey(s string) string { return strings.ToLower(s) }
