// Package models holds the user records, command requests and results
// shared by the server, the wire codecs and the client.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the authoritative account record. PasswordHash is a digest
// produced by a cryptox.Hasher and is never sent outward.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Email        string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// PublicUser is the outward projection of User without the digest.
type PublicUser struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NormalizeEmail is the stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
