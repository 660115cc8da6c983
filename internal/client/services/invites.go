package services

import (
	"context"
	"errors"
	"strings"

	"github.com/werkmate/werkmate-cli/internal/client/api"
	"github.com/werkmate/werkmate-cli/internal/client/session"
	"github.com/werkmate/werkmate-cli/internal/common"
)

// InviteOutcome classifies an invite token resolution.
type InviteOutcome string

const (
	InviteMissingToken InviteOutcome = "missing-token"
	InviteNotFound     InviteOutcome = "not-found"
	InviteExpired      InviteOutcome = "expired"
	InviteReady        InviteOutcome = "ready"
)

// Resolution is the terminal result of resolving an invite token.
type Resolution struct {
	Outcome InviteOutcome
	Invite  *api.Invite
}

// InviteAPI is the API surface of the invite flow.
type InviteAPI interface {
	GetInvite(ctx context.Context, token string) (*api.Invite, error)
	SendInviteEmail(ctx context.Context, token string) error
	AcceptInvite(ctx context.Context, token string) (*api.AcceptResult, error)
	EnsureUser(ctx context.Context) (*api.User, error)
}

// InviteSession is the read side of the session the invite flow needs.
type InviteSession interface {
	Status() session.Status
	Token() string
	Email() string
}

// InviteTenants receives the accepted invite's account.
type InviteTenants interface {
	SetAccount(ctx context.Context, id, name string) error
}

// InviteService resolves, resends and accepts invites.
type InviteService struct {
	api     InviteAPI
	sess    InviteSession
	tenants InviteTenants
}

func NewInviteService(a InviteAPI, sess InviteSession, tenants InviteTenants) *InviteService {
	return &InviteService{api: a, sess: sess, tenants: tenants}
}

// Resolve turns an invite token into a terminal outcome. An empty token is
// resolved locally with zero network calls. A not-found and an expired
// invite are informational outcomes, not errors; any other API failure is
// returned as an error.
func (s *InviteService) Resolve(ctx context.Context, token string) (*Resolution, error) {
	if strings.TrimSpace(token) == "" {
		return &Resolution{Outcome: InviteMissingToken}, nil
	}

	inv, err := s.api.GetInvite(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &Resolution{Outcome: InviteNotFound}, nil
		}
		return nil, err
	}

	if inv.IsExpired {
		return &Resolution{Outcome: InviteExpired, Invite: inv}, nil
	}
	return &Resolution{Outcome: InviteReady, Invite: inv}, nil
}

// ResendEmail re-triggers the invite email. Safe to call repeatedly; the
// invite record itself is unchanged.
func (s *InviteService) ResendEmail(ctx context.Context, token string) error {
	return s.api.SendInviteEmail(ctx, token)
}

// Accept consumes a resolved invite for the authenticated identity: ensure
// the local user record exists, accept the membership, then persist the
// invite's account id as the active tenant.
func (s *InviteService) Accept(ctx context.Context, inv *api.Invite) (*api.AcceptResult, error) {
	if s.sess.Status() != session.StatusAuthenticated || s.sess.Token() == "" {
		return nil, common.ErrNotAuthenticated
	}

	if _, err := s.api.EnsureUser(ctx); err != nil {
		return nil, err
	}

	res, err := s.api.AcceptInvite(ctx, inv.Token)
	if err != nil {
		return nil, err
	}

	if err := s.tenants.SetAccount(ctx, inv.Account.ID, inv.Account.Name); err != nil {
		return nil, err
	}
	return res, nil
}

// EmailMismatch reports whether the authenticated identity's email differs
// from the invite's target email. Informational only; acceptance is not
// blocked.
func (s *InviteService) EmailMismatch(inv *api.Invite) bool {
	logged := s.sess.Email()
	return logged != "" && !strings.EqualFold(logged, inv.Email)
}
