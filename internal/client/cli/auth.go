package cli

import (
	"context"
	"fmt"

	"github.com/imramugh/ai-task-manager/internal/client/models"
	"github.com/imramugh/ai-task-manager/internal/client/navigation"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Register prompts for email, username and password and creates an account.
// No session is opened; the user logs in afterwards.
func (a *App) Register(ctx context.Context) error {
	a.setView(navigation.ViewRegister)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	u, err := a.auth.Register(ctx, models.RegisterRequest{Email: email, Username: username, Password: string(password)})
	if err != nil {
		return err
	}

	a.printf("Account %s created. You can log in now.\n", u.Username)
	a.setView(navigation.ViewLogin)
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	a.setView(navigation.ViewLogin)

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	u, err := a.auth.Login(ctx, username, string(password))
	if err != nil {
		return err
	}

	a.setView(navigation.ViewDashboard)
	if u != nil {
		a.setUser(u)
		a.printf("Welcome, %s!\n", u.Username)
	} else {
		a.printf("Logged in.\n")
	}
	return nil
}

// Logout drops the session everywhere. Safe to call when logged out.
func (a *App) Logout(ctx context.Context) error {
	return a.auth.Logout(ctx)
}

// WhoAmI prints the profile the server reports for the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	return a.protect(ctx, navigation.ViewDashboard, func(ctx context.Context) error {
		u, err := a.auth.Me(ctx)
		if err != nil {
			return err
		}
		a.setUser(u)
		a.printf("%s <%s> (id %d, member since %s)\n",
			u.Username, u.Email, u.ID, u.CreatedAt.Format("2006-01-02"))
		return nil
	})
}

// ResetPassword walks through the forgotten-password flow: request a token
// by email, then optionally redeem one.
func (a *App) ResetPassword(ctx context.Context) error {
	a.setView(navigation.ViewResetPassword)

	email, err := getSimpleText(a.reader, "Enter account email", a.out)
	if err != nil {
		return err
	}
	msg, err := a.auth.RequestPasswordReset(ctx, email)
	if err != nil {
		return err
	}
	a.printf("%s\n", msg)

	token, err := getSimpleText(a.reader, "Paste the reset token from the email (empty to stop)", a.out)
	if err != nil || token == "" {
		return err
	}
	return a.redeemResetToken(ctx, token)
}

func (a *App) redeemResetToken(ctx context.Context, token string) error {
	owner, err := a.auth.VerifyResetToken(ctx, token)
	if err != nil {
		return err
	}
	a.printf("Resetting password for %s\n", owner)

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	msg, err := a.auth.ConfirmPasswordReset(ctx, token, string(password))
	if err != nil {
		return err
	}
	a.printf("%s\n", msg)
	a.setView(navigation.ViewLogin)
	return nil
}

// reportError prints the user-facing form of err.
func (a *App) reportError(err error) {
	fmt.Fprintln(a.out, "Error:", userMessage(err))
}
