// Package customertest holds the behaviour every customer.Store backend must
// share. Backends call Run from their own tests.
package customertest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/cliente-api/internal/model/customer"
)

// Factory builds a store preloaded with items. Cleanup is registered on t.
type Factory func(t *testing.T, items []customer.Customer) customer.Store

// Run executes the store contract against the backend produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("ListReturnsSeed", func(t *testing.T) {
		store := newStore(t, customer.Seed())

		items, err := store.List(context.Background())
		require.NoError(t, err)
		require.Equal(t, customer.Seed(), items)
	})

	t.Run("ListEmpty", func(t *testing.T) {
		store := newStore(t, nil)

		items, err := store.List(context.Background())
		require.NoError(t, err)
		require.Empty(t, items)
	})

	t.Run("InsertThenFetch", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t, customer.Seed())

		pedro := customer.Customer{ID: "3", Name: "Pedro", NationalID: "45678912399"}
		require.NoError(t, store.Insert(ctx, pedro))

		got, err := store.Filter(ctx, customer.ByID("3"))
		require.NoError(t, err)
		require.Equal(t, []customer.Customer{pedro}, got)
	})

	t.Run("InsertDuplicateLeavesStoreUnchanged", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t, customer.Seed())

		err := store.Insert(ctx, customer.Customer{ID: "1", Name: "Impostor", NationalID: "0"})
		require.ErrorIs(t, err, customer.ErrCustomerExists)

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Equal(t, customer.Seed(), items)
	})

	t.Run("UpdateOverwritesNameAndNationalID", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t, customer.Seed())

		require.NoError(t, store.Update(ctx, customer.Customer{ID: "2", Name: "Maria Clara", NationalID: "11111111111"}))

		got, err := store.Filter(ctx, customer.ByID("2"))
		require.NoError(t, err)
		require.Equal(t, []customer.Customer{{ID: "2", Name: "Maria Clara", NationalID: "11111111111"}}, got)
	})

	t.Run("UpdateUnknownID", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t, customer.Seed())

		err := store.Update(ctx, customer.Customer{ID: "99", Name: "Ghost"})
		require.ErrorIs(t, err, customer.ErrCustomerNotFound)

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Equal(t, customer.Seed(), items)
	})

	t.Run("DeleteRemovesCustomer", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t, customer.Seed())

		require.NoError(t, store.Delete(ctx, "1"))

		got, err := store.Filter(ctx, customer.ByID("1"))
		require.NoError(t, err)
		require.Empty(t, got)

		require.ErrorIs(t, store.Delete(ctx, "1"), customer.ErrCustomerNotFound)
	})

	t.Run("FilterPriority", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t, customer.Seed())

		got, err := store.Filter(ctx, customer.Criteria{ID: "1", Name: "Maria", NationalID: "98765432121"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "João", got[0].Name)

		got, err = store.Filter(ctx, customer.Criteria{Name: "MARIA", NationalID: "12345678912"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "2", got[0].ID)

		got, err = store.Filter(ctx, customer.Criteria{NationalID: "12345678912"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "1", got[0].ID)

		got, err = store.Filter(ctx, customer.Criteria{})
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("ReturnedValuesAreCopies", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t, customer.Seed())

		items, err := store.List(ctx)
		require.NoError(t, err)
		items[0].Name = "changed"

		got, err := store.Filter(ctx, customer.ByID(items[0].ID))
		require.NoError(t, err)
		require.Equal(t, "João", got[0].Name)
	})

	t.Run("ConcurrentInsertsOfSameID", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t, nil)

		const workers = 8
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			inserted int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := store.Insert(ctx, customer.Customer{ID: "7", Name: "Race"}); err == nil {
					mu.Lock()
					inserted++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 1, inserted)
		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
	})
}
