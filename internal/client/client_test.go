package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/cliente-api/internal/handler"
	customerHandler "github.com/zhouzirui/cliente-api/internal/handler/customer"
	"github.com/zhouzirui/cliente-api/internal/model/customer"
)

func newServer(t *testing.T, items []customer.Customer) *Client {
	t.Helper()
	store := customer.NewMemoryStore(items)
	srv := httptest.NewServer(handler.NewRouter(store, zerolog.Nop(), handler.Options{BasePath: "/rest"}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/rest/", WithHTTPClient(srv.Client()))
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, customer.Seed())

	items, err := c.List(ctx, customer.Criteria{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	pedro := customer.Customer{ID: "3", Name: "Pedro", NationalID: "45678912399"}
	msg, err := c.Insert(ctx, pedro)
	require.NoError(t, err)
	require.Equal(t, customerHandler.MsgInserted, msg)

	got, err := c.Get(ctx, "3")
	require.NoError(t, err)
	require.Equal(t, pedro, got)

	pedro.Name = "Antônio"
	msg, err = c.Update(ctx, pedro)
	require.NoError(t, err)
	require.Equal(t, customerHandler.MsgUpdated, msg)

	filtered, err := c.List(ctx, customer.Criteria{Name: "antônio"})
	require.NoError(t, err)
	require.Equal(t, []customer.Customer{pedro}, filtered)

	msg, err = c.Delete(ctx, "3")
	require.NoError(t, err)
	require.Equal(t, customerHandler.MsgDeleted, msg)

	_, err = c.Get(ctx, "3")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClientNotModified(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, nil)

	_, err := c.Update(ctx, customer.Customer{ID: "9", Name: "Ghost"})
	require.ErrorIs(t, err, ErrNotModified)

	_, err = c.Delete(ctx, "9")
	require.ErrorIs(t, err, ErrNotModified)

	items, err := c.List(ctx, customer.Criteria{})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestClientStatusError(t *testing.T) {
	c := newServer(t, nil)

	_, err := c.Insert(context.Background(), customer.Customer{Name: "no id"})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, 400, statusErr.Status)
	require.Contains(t, statusErr.Error(), "clienteId is required")
}
