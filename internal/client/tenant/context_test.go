package tenant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	values map[string]string
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeStore) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func (f *fakeStore) SetMany(ctx context.Context, kv map[string]string) error {
	if f.setErr != nil {
		return f.setErr
	}
	for k, v := range kv {
		f.values[k] = v
	}
	return nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.values = map[string]string{}
	return nil
}

func TestContext_SetPersistsAndPublishes(t *testing.T) {
	store := newFakeStore()
	c := NewContext(store)

	require.NoError(t, c.SetAccount(context.Background(), "acc_1", "Acme"))

	assert.Equal(t, "acc_1", c.AccountID())
	assert.Equal(t, "Acme", c.AccountName())
	assert.Equal(t, "acc_1", store.values["accountId"])
	assert.Equal(t, "Acme", store.values["accountName"])
}

func TestContext_SetFailureLeavesMemoryUntouched(t *testing.T) {
	store := newFakeStore()
	c := NewContext(store)
	require.NoError(t, c.SetAccount(context.Background(), "acc_1", "Acme"))

	store.setErr = errors.New("disk full")
	require.Error(t, c.SetAccount(context.Background(), "acc_2", "Other"))

	assert.Equal(t, "acc_1", c.AccountID(), "failed write must not change the published id")
	assert.Equal(t, "Acme", c.AccountName())
}

func TestContext_LoadReadsPersistedValues(t *testing.T) {
	store := newFakeStore()
	store.values["accountId"] = "acc_9"
	store.values["accountName"] = "Nine"
	c := NewContext(store)

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, "acc_9", c.AccountID())
	assert.Equal(t, "Nine", c.AccountName())
}

func TestContext_ResetClearsStoreAndMemory(t *testing.T) {
	store := newFakeStore()
	c := NewContext(store)
	require.NoError(t, c.SetAccount(context.Background(), "acc_1", "Acme"))

	require.NoError(t, c.Reset(context.Background()))

	assert.Empty(t, c.AccountID())
	assert.Empty(t, c.AccountName())
	assert.Empty(t, store.values)
}
