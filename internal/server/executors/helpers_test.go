package executors

import (
	"context"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/google/uuid"
)

type fakeHasher struct{}

func (fakeHasher) Hash(p string) string         { return "hashed:" + p }
func (fakeHasher) Verify(p, digest string) bool { return "hashed:"+p == digest }

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// stubStore lets a test fail any single store call.
type stubStore struct {
	create      func(ctx context.Context, u *models.User) (bool, error)
	getByID     func(ctx context.Context, id uuid.UUID) (*models.User, error)
	getByCreds  func(ctx context.Context, login, digest string) (*models.User, error)
	update      func(ctx context.Context, u *models.User) (bool, error)
	emailUnique func(ctx context.Context, email string) (bool, error)

	updates int
}

func (s *stubStore) Create(ctx context.Context, u *models.User) (bool, error) {
	return s.create(ctx, u)
}

func (s *stubStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getByID(ctx, id)
}

func (s *stubStore) GetByCredentials(ctx context.Context, login, digest string) (*models.User, error) {
	return s.getByCreds(ctx, login, digest)
}

func (s *stubStore) Update(ctx context.Context, u *models.User) (bool, error) {
	s.updates++
	return s.update(ctx, u)
}

func (s *stubStore) EmailIsUnique(ctx context.Context, email string) (bool, error) {
	return s.emailUnique(ctx, email)
}

func storedUser() *models.User {
	return &models.User{
		ID:           uuid.MustParse("6f1f0c1e-8a8e-4c71-9d4b-0c5a8a3d2b11"),
		Username:     "alice",
		PasswordHash: "hashed:Secret123",
		Email:        "alice@x.com",
		CreatedAt:    testNow.Add(-24 * time.Hour),
	}
}
