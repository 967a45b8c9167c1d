package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/cliente-api/internal/model/customer"
	"github.com/zhouzirui/cliente-api/internal/model/customer/customertest"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "customers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreContract(t *testing.T) {
	customertest.Run(t, func(t *testing.T, items []customer.Customer) customer.Store {
		store := openTemp(t)
		_, err := store.SeedIfEmpty(context.Background(), items)
		require.NoError(t, err)
		return store
	})
}

func TestSeedIfEmptyOnlyOnce(t *testing.T) {
	ctx := context.Background()
	store := openTemp(t)

	seeded, err := store.SeedIfEmpty(ctx, customer.Seed())
	require.NoError(t, err)
	require.True(t, seeded)

	require.NoError(t, store.Delete(ctx, "2"))

	seeded, err = store.SeedIfEmpty(ctx, customer.Seed())
	require.NoError(t, err)
	require.False(t, seeded)

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "customers.db")

	first, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Insert(ctx, customer.Customer{ID: "3", Name: "Pedro", NationalID: "45678912399"}))
	require.NoError(t, first.Close())

	second, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	require.Equal(t, path, second.Path())

	got, err := second.Filter(ctx, customer.ByID("3"))
	require.NoError(t, err)
	require.Equal(t, []customer.Customer{{ID: "3", Name: "Pedro", NationalID: "45678912399"}}, got)
}
