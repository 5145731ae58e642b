// Package mappers converts between requests, stored records and their
// outward projections.
package mappers

import (
	"github.com/dmitrijs2005/usermanager/internal/cryptox"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/dmitrijs2005/usermanager/internal/server/clock"
	"github.com/google/uuid"
)

// UserMapper builds new User records from registration requests.
type UserMapper struct {
	clock  clock.Clock
	hasher cryptox.Hasher
	newID  func() uuid.UUID
}

func NewUserMapper(c clock.Clock, h cryptox.Hasher) *UserMapper {
	return &UserMapper{clock: c, hasher: h, newID: uuid.New}
}

// WithIDGenerator replaces the identifier source; used by tests.
func (m *UserMapper) WithIDGenerator(f func() uuid.UUID) *UserMapper {
	m.newID = f
	return m
}

// ToUser stamps a fresh identifier and creation time, hashes the password
// and leaves UpdatedAt unset.
func (m *UserMapper) ToUser(req models.RegisterRequest) *models.User {
	return &models.User{
		ID:           m.newID(),
		Username:     req.Username,
		PasswordHash: m.hasher.Hash(req.Password),
		Email:        models.NormalizeEmail(req.Email),
		CreatedAt:    m.clock.Now(),
		UpdatedAt:    nil,
	}
}

// ToPublic projects u without its digest.
func ToPublic(u *models.User) models.PublicUser {
	p := models.PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
	if u.UpdatedAt != nil {
		t := *u.UpdatedAt
		p.UpdatedAt = &t
	}
	return p
}
