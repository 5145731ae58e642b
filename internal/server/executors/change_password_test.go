package executors

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/dmitrijs2005/usermanager/internal/server/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangePassword_Success(t *testing.T) {
	u := storedUser()
	repo := seededRepo(t, u)
	ex := NewChangePassword(repo, fakeHasher{}, clock.NewFixed(testNow), logging.Nop{})

	resp, err := ex.Execute(context.Background(), models.ChangePasswordRequest{
		UserID: u.ID, OldPassword: "Secret123", NewPassword: "Fresh4567", NewPasswordConfirmation: "Fresh4567",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ChangePasswordSuccess, resp.Result)

	got, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:Fresh4567", got.PasswordHash)
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, testNow, *got.UpdatedAt)

	auth := NewAuthenticate(repo, fakeHasher{}, logging.Nop{})
	_, err = auth.Execute(context.Background(), models.AuthenticateRequest{Username: "alice", Password: "Secret123"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCredentials), "old password no longer works")
	_, err = auth.Execute(context.Background(), models.AuthenticateRequest{Username: "alice", Password: "Fresh4567"})
	assert.NoError(t, err)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	u := storedUser()
	repo := seededRepo(t, u)
	ex := NewChangePassword(repo, fakeHasher{}, clock.NewFixed(testNow), logging.Nop{})

	resp, err := ex.Execute(context.Background(), models.ChangePasswordRequest{UserID: u.ID, OldPassword: "nope", NewPassword: "Fresh4567"})
	require.NoError(t, err)
	assert.Equal(t, models.ChangePasswordInvalidPassword, resp.Result)

	got, _ := repo.GetByID(context.Background(), u.ID)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
	assert.Nil(t, got.UpdatedAt)
}

func TestChangePassword_UnknownUser(t *testing.T) {
	ex := NewChangePassword(seededRepo(t), fakeHasher{}, clock.NewFixed(testNow), logging.Nop{})
	_, err := ex.Execute(context.Background(), models.ChangePasswordRequest{UserID: uuid.New(), OldPassword: "Secret123", NewPassword: "Fresh4567"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUserNotFound))
}

func TestChangePassword_StoreFaults(t *testing.T) {
	boom := errors.New("db error: reset")
	found := func(context.Context, uuid.UUID) (*models.User, error) { return storedUser(), nil }

	for name, store := range map[string]*stubStore{
		"lookup":      {getByID: func(context.Context, uuid.UUID) (*models.User, error) { return nil, boom }},
		"update":      {getByID: found, update: func(context.Context, *models.User) (bool, error) { return false, boom }},
		"not applied": {getByID: found, update: func(context.Context, *models.User) (bool, error) { return false, nil }},
	} {
		t.Run(name, func(t *testing.T) {
			ex := NewChangePassword(store, fakeHasher{}, clock.NewFixed(testNow), logging.Nop{})
			resp, err := ex.Execute(context.Background(), models.ChangePasswordRequest{UserID: storedUser().ID, OldPassword: "Secret123", NewPassword: "Fresh4567"})
			require.NoError(t, err)
			assert.Equal(t, models.ChangePasswordInternalServiceError, resp.Result)
		})
	}
}

func TestChangePassword_CanceledBeforeUpdate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &stubStore{
		getByID: func(context.Context, uuid.UUID) (*models.User, error) { cancel(); return storedUser(), nil },
		update:  func(context.Context, *models.User) (bool, error) { return true, nil },
	}
	ex := NewChangePassword(store, fakeHasher{}, clock.NewFixed(testNow), logging.Nop{})

	_, err := ex.Execute(ctx, models.ChangePasswordRequest{UserID: storedUser().ID, OldPassword: "Secret123", NewPassword: "Fresh4567"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, store.updates)
}
