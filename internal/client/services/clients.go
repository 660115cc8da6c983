// Package services contains the application services behind the CLI views:
// client records, team membership and the invite flow. Each service wraps
// the slice of the API it needs behind a narrow interface so tests can
// substitute fakes.
package services

import (
	"context"
	"strings"

	"github.com/werkmate/werkmate-cli/internal/client/api"
)

// ClientsAPI is the API surface of the clients view.
type ClientsAPI interface {
	ListClients(ctx context.Context) ([]api.ClientRecord, error)
	CreateClient(ctx context.Context, req api.CreateClientRequest) (*api.ClientRecord, error)
}

// ClientsService backs the clients view: list on entry, create then re-list.
type ClientsService struct {
	api ClientsAPI
}

func NewClientsService(a ClientsAPI) *ClientsService {
	return &ClientsService{api: a}
}

// List fetches the active account's clients.
func (s *ClientsService) List(ctx context.Context) ([]api.ClientRecord, error) {
	return s.api.ListClients(ctx)
}

// Add creates a client from the non-empty trimmed subset of name and email,
// then re-fetches and returns the full list. There is no optimistic update;
// state is server-authoritative.
func (s *ClientsService) Add(ctx context.Context, name, email string) ([]api.ClientRecord, error) {
	req := api.CreateClientRequest{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
	if _, err := s.api.CreateClient(ctx, req); err != nil {
		return nil, err
	}
	return s.api.ListClients(ctx)
}
