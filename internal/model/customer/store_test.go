package customer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/cliente-api/internal/model/customer"
	"github.com/zhouzirui/cliente-api/internal/model/customer/customertest"
)

func TestMemoryStore(t *testing.T) {
	customertest.Run(t, func(_ *testing.T, items []customer.Customer) customer.Store {
		return customer.NewMemoryStore(items)
	})
}

func TestNewMemoryStoreFirstDuplicateWins(t *testing.T) {
	store := customer.NewMemoryStore([]customer.Customer{
		{ID: "1", Name: "first"},
		{ID: "1", Name: "second"},
	})

	items, err := store.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []customer.Customer{{ID: "1", Name: "first"}}, items)
}

func TestNewMemoryStoreDoesNotAliasInput(t *testing.T) {
	seed := customer.Seed()
	store := customer.NewMemoryStore(seed)
	seed[0].Name = "changed"

	got, err := store.Filter(context.Background(), customer.ByID("1"))
	require.NoError(t, err)
	require.Equal(t, "João", got[0].Name)
}
