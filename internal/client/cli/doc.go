// Package cli provides the interactive WerkMate terminal client.
//
// It wires configuration, the local state store, the identity-provider
// integration, the typed API client and the account bootstrap into an
// interactive REPL. Typical flow: sign in (browser or password), let the
// bootstrap resolve the active workspace, then work with clients, team
// members and invites.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
