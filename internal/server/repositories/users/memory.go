package users

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/usermanager/internal/common"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. Records are copied on the
// way in and out so callers never share state with the store.
type MemoryRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]models.User
	byUsername map[string]uuid.UUID
	byEmail    map[string]uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:       make(map[uuid.UUID]models.User),
		byUsername: make(map[string]uuid.UUID),
		byEmail:    make(map[string]uuid.UUID),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; ok {
		return false, fmt.Errorf("%w: id", common.ErrorAlreadyExists)
	}
	if _, ok := r.byUsername[foldKey(user.Username)]; ok {
		return false, fmt.Errorf("%w: username", common.ErrorAlreadyExists)
	}
	if _, ok := r.byEmail[foldKey(user.Email)]; ok {
		return false, fmt.Errorf("%w: email", common.ErrorAlreadyExists)
	}

	r.put(copyUser(user))
	return true, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyUser(&u), nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[foldKey(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := r.byID[id]
	return copyUser(&u), nil
}

func (r *MemoryRepository) GetByCredentials(ctx context.Context, usernameOrEmail, digest string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := foldKey(usernameOrEmail)
	for _, idx := range []map[string]uuid.UUID{r.byUsername, r.byEmail} {
		id, ok := idx[key]
		if !ok {
			continue
		}
		if u := r.byID[id]; u.PasswordHash == digest {
			return copyUser(&u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) IsUsernameUnique(ctx context.Context, username string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, taken := r.byUsername[foldKey(username)]
	return !taken, nil
}

func (r *MemoryRepository) IsEmailUnique(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, taken := r.byEmail[foldKey(email)]
	return !taken, nil
}

func (r *MemoryRepository) Update(ctx context.Context, user *models.User) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[user.ID]
	if !ok {
		return false, nil
	}
	if id, taken := r.byUsername[foldKey(user.Username)]; taken && id != user.ID {
		return false, fmt.Errorf("%w: username", common.ErrorAlreadyExists)
	}
	if id, taken := r.byEmail[foldKey(user.Email)]; taken && id != user.ID {
		return false, fmt.Errorf("%w: email", common.ErrorAlreadyExists)
	}

	delete(r.byUsername, foldKey(old.Username))
	delete(r.byEmail, foldKey(old.Email))

	next := copyUser(user)
	next.CreatedAt = old.CreatedAt
	r.put(next)
	return true, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	delete(r.byID, id)
	delete(r.byUsername, foldKey(u.Username))
	delete(r.byEmail, foldKey(u.Email))
	return true, nil
}

// put indexes u; callers hold the write lock.
func (r *MemoryRepository) put(u *models.User) {
	r.byID[u.ID] = *u
	r.byUsername[foldKey(u.Username)] = u.ID
	r.byEmail[foldKey(u.Email)] = u.ID
}

func copyUser(u *models.User) *models.User {
	c := *u
	if u.UpdatedAt != nil {
		t := *u.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}
