// Package tenant provides the single tenant-context provider every
// tenant-scoped flow consumes. Views never read the durable store
// themselves; the active account has exactly one in-memory home.
package tenant

import (
	"context"
	"sync"

	"github.com/werkmate/werkmate-cli/internal/client/state"
	"github.com/werkmate/werkmate-cli/internal/common"
)

// Context holds the active account, mirrored into the durable state store
// under the "accountId" and "accountName" keys. Writers are the bootstrap
// and the invite-accept flow only.
type Context struct {
	mu          sync.RWMutex
	store       state.Store
	accountID   string
	accountName string
}

func NewContext(store state.Store) *Context {
	return &Context{store: store}
}

// Load pulls the persisted account into memory. Missing keys are not an
// error; the account may legitimately be unset before the first bootstrap.
func (c *Context) Load(ctx context.Context) error {
	id, err := c.store.Get(ctx, common.AccountIDStateKey)
	if err != nil {
		return err
	}
	name, err := c.store.Get(ctx, common.AccountNameStateKey)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.accountID = id
	c.accountName = name
	c.mu.Unlock()
	return nil
}

// AccountID returns the active account id, or "" before bootstrap.
// Implements the API client's account source.
func (c *Context) AccountID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accountID
}

// AccountName returns the active account's display name, or "".
func (c *Context) AccountName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accountName
}

// SetAccount persists the account id and name in one transaction and
// publishes them to readers. The in-memory values are only updated once the
// write has succeeded.
func (c *Context) SetAccount(ctx context.Context, id, name string) error {
	err := c.store.SetMany(ctx, map[string]string{
		common.AccountIDStateKey:   id,
		common.AccountNameStateKey: name,
	})
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.accountID = id
	c.accountName = name
	c.mu.Unlock()
	return nil
}

// Reset forgets the active account, in memory and in the store. The state
// store holds nothing but the workspace selection, so it is wiped whole.
func (c *Context) Reset(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	c.accountID = ""
	c.accountName = ""
	c.mu.Unlock()
	return nil
}
