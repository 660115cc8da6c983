package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werkmate/werkmate-cli/internal/client/idp"
	"github.com/werkmate/werkmate-cli/internal/client/session"
	"github.com/werkmate/werkmate-cli/internal/client/tenant"
	"github.com/werkmate/werkmate-cli/internal/logging"
)

type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Get(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *memStore) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memStore) SetMany(ctx context.Context, kv map[string]string) error {
	for k, v := range kv {
		m.values[k] = v
	}
	return nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.values = map[string]string{}
	return nil
}

func testApp(t *testing.T) (*App, *memStore) {
	t.Helper()
	store := newMemStore()
	bridge := session.NewBridge()
	return &App{
		bridge:   bridge,
		provider: idp.NewProvider("http://127.0.0.1:1", "werkmate-cli", "127.0.0.1:0", bridge, logging.Setup("error")),
		tenants:  tenant.NewContext(store),
	}, store
}

func TestLogout_KeepsRememberedWorkspace(t *testing.T) {
	a, store := testApp(t)
	require.NoError(t, a.tenants.SetAccount(context.Background(), "acc_1", "Acme"))

	require.NoError(t, a.Logout(context.Background(), nil))

	assert.Equal(t, "acc_1", a.tenants.AccountID())
	assert.Equal(t, "acc_1", store.values["accountId"])
}

func TestLogout_Forget_DropsWorkspace(t *testing.T) {
	a, store := testApp(t)
	require.NoError(t, a.tenants.SetAccount(context.Background(), "acc_1", "Acme"))

	require.NoError(t, a.Logout(context.Background(), []string{"forget"}))

	assert.Empty(t, a.tenants.AccountID())
	assert.Empty(t, store.values)
}
