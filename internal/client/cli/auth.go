package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/usermanager/internal/common"
	"github.com/dmitrijs2005/usermanager/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("please log in first")

// Register prompts for a username, e-mail and password and creates the
// account. Only the prompt buffer is zeroed on return. The request holds
// its own string copy of the password, which the wipe does not reach.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter e-mail", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.client.RegisterUser(ctx, models.RegisterRequest{
		Username: userName,
		Password: string(password),
		Email:    email,
	})
	if err != nil {
		return err
	}

	if resp.Result != models.Registered {
		printlnFn("Registration failed:", resp.Result)
		return nil
	}

	printlnFn("Registered, user id", resp.ID.String())
	return nil
}

// Login authenticates with a username or e-mail and keeps the returned
// profile as the session.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username or e-mail", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.client.AuthenticateUser(ctx, models.AuthenticateRequest{
		Username: userName,
		Password: string(password),
	})
	if err != nil {
		return err
	}

	a.session = &user
	printlnFn("Welcome,", user.Username)
	return nil
}

// WhoAmI prints the profile of the logged-in user.
func (a *App) WhoAmI(_ context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	u := a.session
	printlnFn(fmt.Sprintf("id:       %s", u.ID))
	printlnFn(fmt.Sprintf("username: %s", u.Username))
	printlnFn(fmt.Sprintf("e-mail:   %s", u.Email))
	printlnFn(fmt.Sprintf("created:  %s", u.CreatedAt.Local().Format("2006-01-02 15:04:05")))
	if u.UpdatedAt != nil {
		printlnFn(fmt.Sprintf("updated:  %s", u.UpdatedAt.Local().Format("2006-01-02 15:04:05")))
	}
	return nil
}

// Logout forgets the session.
func (a *App) Logout(_ context.Context) error {
	a.session = nil
	return nil
}
