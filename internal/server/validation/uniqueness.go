package validation

import "context"

// UniquenessStore is the slice of the user store uniqueness checks need.
type UniquenessStore interface {
	IsUsernameUnique(ctx context.Context, username string) (bool, error)
	IsEmailUnique(ctx context.Context, email string) (bool, error)
}

// Uniqueness answers whether a username or email is currently unused.
// Its answers are advisory: the store's constraints decide at commit.
type Uniqueness struct {
	store UniquenessStore
}

func NewUniqueness(store UniquenessStore) *Uniqueness {
	return &Uniqueness{store: store}
}

func (u *Uniqueness) UsernameIsUnique(ctx context.Context, username string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return u.store.IsUsernameUnique(ctx, username)
}

func (u *Uniqueness) EmailIsUnique(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return u.store.IsEmailUnique(ctx, email)
}
