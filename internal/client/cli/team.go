package cli

import (
	"context"
	"fmt"

	"github.com/werkmate/werkmate-cli/internal/client/api"
	"github.com/werkmate/werkmate-cli/internal/client/services"
)

// Team prints the active workspace's member list.
func (a *App) Team(ctx context.Context) error {
	if !a.requireWorkspace() {
		return nil
	}

	members, err := a.team.Members(ctx)
	if err != nil {
		fmt.Println("Could not load team:", err)
		return err
	}

	if len(members) == 0 {
		fmt.Println("No members.")
		return nil
	}
	for _, m := range members {
		fmt.Printf("%-6s %s\n", m.Role, services.MemberDisplayName(m))
	}
	return nil
}

// Invite creates an invite for args[0] with the role in args[1] (staff when
// omitted) and prints the token and shareable links.
func (a *App) Invite(ctx context.Context, args []string) error {
	if !a.requireWorkspace() {
		return nil
	}

	email := args[0]
	role := api.RoleStaff
	if len(args) > 1 {
		r, err := api.ParseRole(args[1])
		if err != nil {
			fmt.Println(err)
			return nil
		}
		role = r
	}

	inv, err := a.team.Invite(ctx, email, role)
	if err != nil {
		fmt.Println("Could not create invite:", err)
		return err
	}

	fmt.Printf("Invited %s as %s, valid until %s\n",
		inv.Email, inv.Role, inv.ExpiresAt.Format("2006-01-02 15:04"))
	fmt.Println("Token:", inv.Token)
	if inv.AcceptURL != "" {
		fmt.Println("Accept link:", inv.AcceptURL)
	}
	if inv.RegisterURL != "" {
		fmt.Println("Register link:", inv.RegisterURL)
	}
	return nil
}
