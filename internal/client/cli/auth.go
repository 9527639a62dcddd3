package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/bookreview/internal/common"
)

// getSimpleText and getPIN are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPIN = GetPIN

// Register prompts for a full name and creates an account. The returned
// PIN is shown exactly once; the server will not repeat it, so the user
// must write it down before logging in. No session state changes.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	pin, err := a.session.Register(ctx, fullName)
	if err != nil {
		return err
	}

	printlnFn("Registration successful!")
	printfFn("Your PIN is: %s\n", pin)
	printlnFn("Save it now - it will not be shown again. Use it to log in.")
	return nil
}

// Login prompts for credentials and authenticates against the user
// endpoint. The PIN is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	return a.login(ctx, false)
}

// AdminLogin is Login against the admin endpoint. The request shape is
// the same; only the path differs.
func (a *App) AdminLogin(ctx context.Context) error {
	return a.login(ctx, true)
}

func (a *App) login(ctx context.Context, asAdmin bool) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	pin, err := getPIN(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pin)

	if err := a.session.Login(ctx, fullName, pin, asAdmin); err != nil {
		printfFn("Login failed: %s\n", err.Error())
		return err
	}

	u := a.session.CurrentUser()
	printfFn("Welcome, %s!\n", u.FullName)
	return nil
}

// Logout clears the session. Safe to call when already logged out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}
