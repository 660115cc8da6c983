package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/werkmate/werkmate-cli/internal/client/idp"
	"github.com/werkmate/werkmate-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login runs the browser sign-in flow and, on success, resolves the active
// workspace.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Printf("Already signed in as %s\n", a.bridge.Email())
		return nil
	}

	if err := a.provider.SignIn(ctx, idp.SignInOptions{}); err != nil {
		fmt.Println("Sign-in failed:", err)
		return err
	}
	return a.resolve(ctx)
}

// PasswordLogin is the headless fallback: email and password are read from
// the terminal and exchanged directly for a token.
func (a *App) PasswordLogin(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Printf("Already signed in as %s\n", a.bridge.Email())
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.provider.PasswordSignIn(ctx, email, password); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			fmt.Println("Invalid email or password.")
		} else {
			fmt.Println("Sign-in failed:", err)
		}
		return err
	}
	return a.resolve(ctx)
}

// resolve runs the account bootstrap for the freshly signed-in identity.
func (a *App) resolve(ctx context.Context) error {
	if err := a.resolver.Resolve(ctx); err != nil {
		if errors.Is(err, common.ErrNotAuthenticated) {
			fmt.Println("Sign in first ('login').")
			return err
		}
		fmt.Println("Could not set up your workspace; you have been signed out:", err)
		return err
	}
	fmt.Printf("Signed in as %s, workspace %s\n", a.bridge.Email(), a.tenants.AccountID())
	return nil
}

// Logout revokes the session at the provider and clears local session state.
// The remembered workspace is kept so the next sign-in lands in the same
// workspace, unless "forget" is given, which also wipes the local workspace
// selection.
func (a *App) Logout(ctx context.Context, args []string) error {
	forget := len(args) > 0 && args[0] == "forget"

	if err := a.provider.SignOut(ctx, idp.SignOutOptions{}); err != nil {
		fmt.Println("Sign-out failed:", err)
		return err
	}

	if forget {
		if err := a.tenants.Reset(ctx); err != nil {
			fmt.Println("Could not forget the workspace:", err)
			return err
		}
		fmt.Println("Signed out; workspace forgotten.")
		return nil
	}
	fmt.Println("Signed out.")
	return nil
}

// Whoami prints the signed-in identity.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("Signed in as %s\n", a.bridge.Email())
	return nil
}

// Account prints the bootstrap state and the active workspace id.
func (a *App) Account(ctx context.Context) error {
	fmt.Printf("Bootstrap: %s\n", a.resolver.State())
	if id := a.tenants.AccountID(); id != "" {
		if name := a.tenants.AccountName(); name != "" {
			fmt.Printf("Active workspace: %s (%s)\n", name, id)
		} else {
			fmt.Printf("Active workspace: %s\n", id)
		}
	} else {
		fmt.Println("No active workspace.")
	}
	return nil
}
