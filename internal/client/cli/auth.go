package cli

import (
	"context"

	"github.com/dmitrijs2005/reportdrop/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, password and confirmation and creates the
// account. A successful registration also logs the user in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	id, err := a.session.Register(ctx, email, string(password), string(confirm))
	if err != nil {
		a.printf("Registration failed: %s\n", common.UserMessage(err))
		return err
	}

	a.printf("Account created. Welcome, %s!\n", id.DisplayName)
	return nil
}

// Login prompts for credentials. Failures are reported with one uniform
// message.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		a.printf("Login failed: %s\n", common.UserMessage(err))
		return err
	}

	a.printf("Logged in as %s\n", id.Email)
	return nil
}

// Logout ends the session. Calling it while anonymous is harmless.
func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.selection = nil
	a.orchestrator.Reset()
	if err != nil {
		a.logger.Warn(ctx, "session store not cleared", "error", err)
		return err
	}
	a.printf("Logged out\n")
	return nil
}

func (a *App) WhoAmI(context.Context) error {
	id := a.session.CurrentIdentity()
	if id == nil {
		a.printf("Not logged in\n")
		return nil
	}
	a.printf("%s <%s>, signed in %s\n", id.DisplayName, id.Email, id.SessionStartedAt.Local().Format("2006-01-02 15:04"))
	return nil
}
