// Package validation enforces request field rules before any command runs,
// including the advisory username and email uniqueness checks.
package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	UsernameMinLength = 4
	UsernameMaxLength = 150
	PasswordMinLength = 5
)

// Field names as they appear in violations.
const (
	FieldUsername                = "username"
	FieldPassword                = "password"
	FieldEmail                   = "email"
	FieldUserID                  = "user_id"
	FieldOldPassword             = "old_password"
	FieldNewPassword             = "new_password"
	FieldNewPasswordConfirmation = "new_password_confirmation"
	FieldNewEmail                = "new_email"
	FieldNewEmailConfirmation    = "new_email_confirmation"
)

const (
	msgUsernameRequired    = "Please enter your desired username."
	msgUsernameLength      = "Username must be 4 to 150 characters long."
	msgUsernameInUse       = "Username is in use. Please choose a different username."
	msgPasswordRequired    = "Please enter your desired password."
	msgPasswordLength      = "Password must be at least 5 characters long."
	msgEmailRequired       = "Please enter your e-mail address."
	msgEmailInvalid        = "Please enter a valid e-mail address"
	msgEmailInUse          = "E-mail address is in use. Please choose a different e-mail address."
	msgLoginUsername       = "Please enter your username."
	msgLoginPassword       = "Please enter your password."
	msgUserID              = "Please provide a valid user ID."
	msgCurrentPassword     = "Please enter your current password."
	msgNewEmailRequired    = "Please enter your desired e-mail address."
	msgNewEmailInvalid     = "Please enter a valid e-mail address."
	msgNewEmailConfirm     = "Please confirm your new e-mail address."
	msgNewEmailMismatch    = "E-mail address confirmation does not match the provided e-mail address."
	msgNewPasswordRequired = "Please enter your new password."
	msgNewPasswordConfirm  = "Please confirm your new password."
	msgNewPasswordMismatch = "Password confirmation does not match the provided password."
)

// Validator checks inbound requests. It returns an *apperrors.Error with
// CodeValidationFailed listing every rejected field, or CodeInternal when
// a uniqueness lookup itself fails.
type Validator struct {
	unique *Uniqueness
}

func New(unique *Uniqueness) *Validator {
	return &Validator{unique: unique}
}

func (v *Validator) Register(ctx context.Context, req models.RegisterRequest) error {
	r := newReport()
	r.check(
		field{FieldUsername, req.Username, []rule{
			notEmpty(msgUsernameRequired),
			lengthBetween(UsernameMinLength, UsernameMaxLength, msgUsernameLength),
		}},
		field{FieldPassword, req.Password, []rule{
			notEmpty(msgPasswordRequired),
			minLength(PasswordMinLength, msgPasswordLength),
		}},
		field{FieldEmail, req.Email, []rule{
			notEmpty(msgEmailRequired),
			emailAddress(msgEmailInvalid),
		}},
	)

	var usernameFree, emailFree = true, true
	g, gctx := errgroup.WithContext(ctx)
	if r.passed(FieldUsername) {
		g.Go(func() (err error) {
			usernameFree, err = v.unique.UsernameIsUnique(gctx, req.Username)
			return err
		})
	}
	if r.passed(FieldEmail) {
		g.Go(func() (err error) {
			emailFree, err = v.unique.EmailIsUnique(gctx, req.Email)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return lookupError(ctx, err)
	}

	if !usernameFree {
		r.add(FieldUsername, msgUsernameInUse)
	}
	if !emailFree {
		r.add(FieldEmail, msgEmailInUse)
	}
	return r.err()
}

func (v *Validator) Authenticate(req models.AuthenticateRequest) error {
	r := newReport()
	r.check(
		field{FieldUsername, req.Username, []rule{notEmpty(msgLoginUsername)}},
		field{FieldPassword, req.Password, []rule{notEmpty(msgLoginPassword)}},
	)
	return r.err()
}

func (v *Validator) ChangeEmail(req models.ChangeEmailRequest) error {
	r := newReport()
	checkUserID(r, req.UserID)
	r.check(
		field{FieldPassword, req.Password, []rule{notEmpty(msgCurrentPassword)}},
		field{FieldNewEmail, req.NewEmail, []rule{
			notEmpty(msgNewEmailRequired),
			emailAddress(msgNewEmailInvalid),
		}},
		field{FieldNewEmailConfirmation, req.NewEmailConfirmation, []rule{
			notEmpty(msgNewEmailConfirm),
			equals(req.NewEmail, msgNewEmailMismatch),
		}},
	)
	return r.err()
}

func (v *Validator) ChangePassword(req models.ChangePasswordRequest) error {
	r := newReport()
	checkUserID(r, req.UserID)
	r.check(
		field{FieldOldPassword, req.OldPassword, []rule{notEmpty(msgCurrentPassword)}},
		field{FieldNewPassword, req.NewPassword, []rule{
			notEmpty(msgNewPasswordRequired),
			minLength(PasswordMinLength, msgPasswordLength),
		}},
		field{FieldNewPasswordConfirmation, req.NewPasswordConfirmation, []rule{
			notEmpty(msgNewPasswordConfirm),
			equals(req.NewPassword, msgNewPasswordMismatch),
		}},
	)
	return r.err()
}

func checkUserID(r *report, id uuid.UUID) {
	if id == uuid.Nil {
		r.add(FieldUserID, msgUserID)
	}
}

// lookupError keeps cancellation visible to the caller and classifies every
// other store fault as internal.
func lookupError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return ctxErr
	}
	return apperrors.Internal(fmt.Errorf("uniqueness check: %w", err))
}
