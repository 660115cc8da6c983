package services

import (
	"context"
	"strings"

	"github.com/werkmate/werkmate-cli/internal/client/api"
	"github.com/werkmate/werkmate-cli/internal/common"
)

// TeamAPI is the API surface of the team view.
type TeamAPI interface {
	ListMembers(ctx context.Context, accountID string) ([]api.Member, error)
	CreateInvite(ctx context.Context, accountID string, req api.CreateInviteRequest) (*api.Invite, error)
}

// AccountSource yields the active account id.
type AccountSource interface {
	AccountID() string
}

// TeamService backs the team view: member list plus invite creation for the
// active account.
type TeamService struct {
	api      TeamAPI
	accounts AccountSource
}

func NewTeamService(a TeamAPI, accounts AccountSource) *TeamService {
	return &TeamService{api: a, accounts: accounts}
}

// Members lists the active account's members.
func (s *TeamService) Members(ctx context.Context) ([]api.Member, error) {
	acc := s.accounts.AccountID()
	if acc == "" {
		return nil, common.ErrAccountNotResolved
	}
	return s.api.ListMembers(ctx, acc)
}

// Invite creates an invite for the trimmed email with the given role in the
// active account. The returned record carries the accept and register URLs
// for operator copy-paste.
func (s *TeamService) Invite(ctx context.Context, email string, role api.Role) (*api.Invite, error) {
	acc := s.accounts.AccountID()
	if acc == "" {
		return nil, common.ErrAccountNotResolved
	}
	return s.api.CreateInvite(ctx, acc, api.CreateInviteRequest{
		Email: strings.TrimSpace(email),
		Role:  role,
	})
}

// MemberDisplayName picks the friendliest label for a member row: name,
// then email, then user id.
func MemberDisplayName(m api.Member) string {
	if m.Name != "" {
		return m.Name
	}
	if m.Email != "" {
		return m.Email
	}
	return m.UserID
}
