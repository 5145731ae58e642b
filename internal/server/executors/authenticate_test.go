package executors

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/dmitrijs2005/usermanager/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	repo := users.NewMemoryRepository()
	u := storedUser()
	ok, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	require.True(t, ok)

	ex := NewAuthenticate(repo, fakeHasher{}, logging.Nop{})

	for _, login := range []string{"alice", "ALICE", "alice@x.com", "Alice@X.com"} {
		t.Run("ok "+login, func(t *testing.T) {
			got, err := ex.Execute(context.Background(), models.AuthenticateRequest{Username: login, Password: "Secret123"})
			require.NoError(t, err)
			assert.Equal(t, u.ID, got.ID)
			assert.Equal(t, "alice", got.Username)
			assert.Equal(t, "alice@x.com", got.Email)
		})
	}

	for _, tc := range []models.AuthenticateRequest{
		{Username: "alice", Password: "wrong"},
		{Username: "bob", Password: "Secret123"},
	} {
		t.Run("rejected "+tc.Username+"/"+tc.Password, func(t *testing.T) {
			_, err := ex.Execute(context.Background(), tc)
			require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCredentials))
			ae, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.MsgInvalidCredentials, ae.Message)
		})
	}
}

func TestAuthenticate_StoreFault(t *testing.T) {
	boom := errors.New("db error: timeout")
	store := &stubStore{getByCreds: func(context.Context, string, string) (*models.User, error) { return nil, boom }}
	ex := NewAuthenticate(store, fakeHasher{}, logging.Nop{})

	_, err := ex.Execute(context.Background(), models.AuthenticateRequest{Username: "alice", Password: "x"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInternal))
	assert.ErrorIs(t, err, boom)
}

func TestAuthenticate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ex := NewAuthenticate(users.NewMemoryRepository(), fakeHasher{}, logging.Nop{})

	_, err := ex.Execute(ctx, models.AuthenticateRequest{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
