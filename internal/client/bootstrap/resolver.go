// Package bootstrap resolves the active account after authentication and
// gates tenant-scoped flows until that is done.
//
// The resolver is an explicit state machine:
//
//	idle -> waiting-for-auth -> resolving -> ready
//	                                      -> failed (forced sign-out)
//
// Failure is closed: any error while resolving signs the session out rather
// than leaving a token without a tenant context. A run that is superseded
// (context cancelled, session signed out mid-flight) mutates nothing.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/werkmate/werkmate-cli/internal/client/api"
	"github.com/werkmate/werkmate-cli/internal/client/session"
	"github.com/werkmate/werkmate-cli/internal/common"
	"github.com/werkmate/werkmate-cli/internal/logging"
)

// State is the resolver's lifecycle state.
type State string

const (
	StateIdle           State = "idle"
	StateWaitingForAuth State = "waiting-for-auth"
	StateResolving      State = "resolving"
	StateReady          State = "ready"
	StateFailed         State = "failed"
)

// API is the slice of the WerkMate API the resolver needs.
type API interface {
	Me(ctx context.Context) (*api.Me, error)
	CreateAccount(ctx context.Context, name string) (*api.Account, error)
}

// Session is the read side of the session bridge.
type Session interface {
	Status() session.Status
	Token() string
	Subscribe() <-chan session.Status
}

// TenantContext receives the resolved account.
type TenantContext interface {
	SetAccount(ctx context.Context, id, name string) error
}

// SignOutFunc tears the session down when resolution fails.
type SignOutFunc func(ctx context.Context) error

type Resolver struct {
	api     API
	sess    Session
	tenants TenantContext
	signOut SignOutFunc

	defaultWorkspaceName string
	log                  logging.Logger

	mu    sync.Mutex
	state State
}

func NewResolver(a API, sess Session, tenants TenantContext, signOut SignOutFunc, defaultWorkspaceName string, log logging.Logger) *Resolver {
	return &Resolver{
		api:                  a,
		sess:                 sess,
		tenants:              tenants,
		signOut:              signOut,
		defaultWorkspaceName: defaultWorkspaceName,
		state:                StateIdle,
		log:                  log,
	}
}

// State returns the current resolver state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Ready reports whether tenant-scoped flows may proceed.
func (r *Resolver) Ready() bool {
	return r.State() == StateReady
}

func (r *Resolver) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// Resolve runs the bootstrap sequence. Entry requires an authenticated
// session with a non-empty token; otherwise the resolver parks in
// waiting-for-auth and returns common.ErrNotAuthenticated without any
// network traffic.
//
// A sign-out while resolving pre-empts the run: the in-flight call is
// cancelled and no state is persisted. Any other error forces a sign-out
// and leaves the resolver failed.
func (r *Resolver) Resolve(ctx context.Context) error {
	if r.sess.Status() != session.StatusAuthenticated || r.sess.Token() == "" {
		r.setState(StateWaitingForAuth)
		return common.ErrNotAuthenticated
	}
	r.setState(StateResolving)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go r.watchSignOut(ctx, cancel)

	me, err := r.api.Me(ctx)
	if err != nil {
		return r.finish(ctx, err)
	}

	accountID, accountName := "", ""
	if len(me.Memberships) > 0 {
		// Server order, first entry. There is no documented ordering for
		// multi-membership identities and no switcher yet; do not re-sort.
		accountID = me.Memberships[0].AccountID
		accountName = me.Memberships[0].AccountName
	} else {
		acc, err := r.api.CreateAccount(ctx, r.defaultWorkspaceName)
		if err != nil {
			return r.finish(ctx, err)
		}
		accountID = acc.ID
		accountName = acc.Name
	}

	if err := ctx.Err(); err != nil {
		return r.preempt(err)
	}

	if err := r.tenants.SetAccount(ctx, accountID, accountName); err != nil {
		return r.finish(ctx, err)
	}

	r.setState(StateReady)
	r.log.Info(ctx, "bootstrap ready", "account_id", accountID)
	return nil
}

// watchSignOut cancels the run when the session transitions to
// unauthenticated before resolution completes.
func (r *Resolver) watchSignOut(ctx context.Context, cancel context.CancelFunc) {
	ch := r.sess.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case st := <-ch:
			if st == session.StatusUnauthenticated {
				cancel()
				return
			}
		}
	}
}

// finish classifies a resolution error: cancellation is pre-emption, every
// other error is a fail-closed sign-out.
func (r *Resolver) finish(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return r.preempt(err)
	}

	r.setState(StateFailed)
	r.log.Error(ctx, "bootstrap failed, signing out", "err", err)
	if soErr := r.signOut(context.WithoutCancel(ctx)); soErr != nil {
		r.log.Warn(ctx, "sign-out after bootstrap failure", "err", soErr)
	}
	return fmt.Errorf("bootstrap: %w", err)
}

func (r *Resolver) preempt(err error) error {
	r.setState(StateIdle)
	return err
}
