package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/common"
	"github.com/dmitrijs2005/usermanager/internal/models"
)

// ChangeEmail asks for the new address twice plus the current password.
// On success the session profile picks up the normalized address. The
// password prompt buffer is zeroed on return, the request string is not.
func (a *App) ChangeEmail(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	email, err := getSimpleText(a.reader, "Enter new e-mail", a.out)
	if err != nil {
		return err
	}

	confirmation, err := getSimpleText(a.reader, "Repeat new e-mail", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.client.UpdateUserEmail(ctx, models.ChangeEmailRequest{
		UserID:               a.session.ID,
		Password:             string(password),
		NewEmail:             email,
		NewEmailConfirmation: confirmation,
	})
	if err != nil {
		return err
	}

	switch resp.Result {
	case models.ChangeEmailSuccess:
		now := time.Now()
		a.session.Email = models.NormalizeEmail(email)
		a.session.UpdatedAt = &now
		printlnFn("E-mail changed")
	case models.ChangeEmailInvalidPassword:
		printlnFn("Wrong password, e-mail unchanged")
	case models.ChangeEmailInUse:
		printlnFn("E-mail address is in use, e-mail unchanged")
	default:
		printlnFn("E-mail change failed:", resp.Result)
	}
	return nil
}

// ChangePassword asks for the current password and the new one twice.
// The prompt buffers are zeroed on return. The request strings are copies
// made before the wipe and live until collected.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	oldPassword, err := getPassword(a.out, "Enter current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := getPassword(a.out, "Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	confirmation, err := getPassword(a.out, "Repeat new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	resp, err := a.client.UpdateUserPassword(ctx, models.ChangePasswordRequest{
		UserID:                  a.session.ID,
		OldPassword:             string(oldPassword),
		NewPassword:             string(newPassword),
		NewPasswordConfirmation: string(confirmation),
	})
	if err != nil {
		return err
	}

	switch resp.Result {
	case models.ChangePasswordSuccess:
		now := time.Now()
		a.session.UpdatedAt = &now
		printlnFn("Password changed")
	case models.ChangePasswordInvalidPassword:
		printlnFn("Wrong password, password unchanged")
	default:
		printlnFn("Password change failed:", resp.Result)
	}
	return nil
}
