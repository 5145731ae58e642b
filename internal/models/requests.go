package models

import "github.com/google/uuid"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// AuthenticateRequest carries a username or an email in Username.
type AuthenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangeEmailRequest struct {
	UserID               uuid.UUID `json:"user_id"`
	Password             string    `json:"password"`
	NewEmail             string    `json:"new_email"`
	NewEmailConfirmation string    `json:"new_email_confirmation"`
}

type ChangePasswordRequest struct {
	UserID                  uuid.UUID `json:"user_id"`
	OldPassword             string    `json:"old_password"`
	NewPassword             string    `json:"new_password"`
	NewPasswordConfirmation string    `json:"new_password_confirmation"`
}
