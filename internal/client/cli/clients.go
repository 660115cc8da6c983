package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/werkmate/werkmate-cli/internal/client/api"
)

// requireWorkspace gates tenant-scoped commands on a finished bootstrap.
func (a *App) requireWorkspace() bool {
	if !a.isReady() {
		fmt.Println("No active workspace. Sign in first ('login').")
		return false
	}
	return true
}

// ListClients prints the active workspace's clients.
func (a *App) ListClients(ctx context.Context) error {
	if !a.requireWorkspace() {
		return nil
	}

	list, err := a.clients.List(ctx)
	if err != nil {
		fmt.Println("Could not load clients:", err)
		return err
	}

	printClients(list)
	return nil
}

// AddClient prompts for a name and an optional email, creates the client and
// prints the refreshed list.
func (a *App) AddClient(ctx context.Context) error {
	if !a.requireWorkspace() {
		return nil
	}

	name, err := getSimpleText(a.reader, "Client name", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Println("A client needs a name.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Client email (optional)", os.Stdout)
	if err != nil {
		return err
	}

	list, err := a.clients.Add(ctx, name, email)
	if err != nil {
		fmt.Println("Could not add client:", err)
		return err
	}

	printClients(list)
	return nil
}

func printClients(list []api.ClientRecord) {
	if len(list) == 0 {
		fmt.Println("No clients yet.")
		return
	}
	for _, c := range list {
		line := fmt.Sprintf("%s  %s", c.ID, c.Name)
		if c.Email != "" {
			line += "  <" + c.Email + ">"
		}
		fmt.Println(line)
	}
}
