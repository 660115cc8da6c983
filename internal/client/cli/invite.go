package cli

import (
	"context"
	"fmt"

	"github.com/werkmate/werkmate-cli/internal/client/api"
	"github.com/werkmate/werkmate-cli/internal/client/idp"
	"github.com/werkmate/werkmate-cli/internal/client/services"
)

// inviteFlow is the invite service surface the commands drive.
type inviteFlow interface {
	Resolve(ctx context.Context, token string) (*services.Resolution, error)
	ResendEmail(ctx context.Context, token string) error
	Accept(ctx context.Context, inv *api.Invite) (*api.AcceptResult, error)
	EmailMismatch(inv *api.Invite) bool
}

// InviteShow resolves an invite token and prints what it grants.
func (a *App) InviteShow(ctx context.Context, token string) error {
	res, err := a.invites.Resolve(ctx, token)
	if err != nil {
		fmt.Println("Could not check invite:", err)
		return err
	}
	a.showResolution(res)
	return nil
}

// showResolution renders an already-fetched resolution, so each command
// resolves a token exactly once.
func (a *App) showResolution(res *services.Resolution) {
	switch res.Outcome {
	case services.InviteMissingToken:
		fmt.Println("This invite link is missing its token. Ask for a fresh invite.")
	case services.InviteNotFound:
		fmt.Println("This invite does not exist. It may have been revoked or already used.")
	case services.InviteExpired:
		fmt.Printf("This invite for %s expired on %s. Ask for a new one ('invite-resend' will not revive it).\n",
			res.Invite.Email, res.Invite.ExpiresAt.Format("2006-01-02"))
	case services.InviteReady:
		inv := res.Invite
		fmt.Printf("Invite for %s to join %q as %s, valid until %s\n",
			inv.Email, inv.Account.Name, inv.Role, inv.ExpiresAt.Format("2006-01-02 15:04"))
		if a.isLoggedIn() && a.invites.EmailMismatch(inv) {
			fmt.Printf("Note: you are signed in as %s, but the invite targets %s.\n",
				a.bridge.Email(), inv.Email)
		}
	}
}

// InviteResend re-triggers the invite email.
func (a *App) InviteResend(ctx context.Context, token string) error {
	if err := a.invites.ResendEmail(ctx, token); err != nil {
		fmt.Println("Could not re-send the invite email:", err)
		return err
	}
	fmt.Println("Invite email sent.")
	return nil
}

// InviteAccept resolves the token and, when valid, joins the inviting
// workspace as the signed-in identity.
func (a *App) InviteAccept(ctx context.Context, token string) error {
	res, err := a.invites.Resolve(ctx, token)
	if err != nil {
		fmt.Println("Could not check invite:", err)
		return err
	}
	if res.Outcome != services.InviteReady {
		a.showResolution(res)
		return nil
	}
	inv := res.Invite

	if !a.isLoggedIn() {
		// Sign-in started from an invite pre-fills the invite email at the
		// provider's login form.
		fmt.Printf("Sign in as %s to accept this invite.\n", inv.Email)
		if err := a.provider.SignIn(ctx, idp.SignInOptions{LoginHint: inv.Email, ActionHint: "login"}); err != nil {
			fmt.Println("Sign-in failed:", err)
			return err
		}
		if err := a.resolve(ctx); err != nil {
			return err
		}
	}
	if a.invites.EmailMismatch(inv) {
		fmt.Printf("Note: you are signed in as %s, but the invite targets %s. Accepting anyway.\n",
			a.bridge.Email(), inv.Email)
	}

	result, err := a.invites.Accept(ctx, inv)
	if err != nil {
		fmt.Println("Could not accept invite:", err)
		return err
	}

	fmt.Printf("Joined %q as %s. It is now your active workspace.\n", inv.Account.Name, result.Role)
	return nil
}
