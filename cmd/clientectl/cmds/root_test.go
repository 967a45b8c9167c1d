package cmds

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/cliente-api/internal/handler"
	"github.com/zhouzirui/cliente-api/internal/model/customer"
)

func run(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", server}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLICreateListDelete(t *testing.T) {
	srv := httptest.NewServer(handler.NewRouter(customer.NewMemoryStore(customer.Seed()), zerolog.Nop(), handler.Options{}))
	t.Cleanup(srv.Close)

	out, err := run(t, srv.URL, "create", "--id", "3", "--name", "Pedro", "--cpf", "45678912399")
	require.NoError(t, err)
	require.Equal(t, "Customer inserted!\n", out)

	out, err = run(t, srv.URL, "list")
	require.NoError(t, err)
	require.Contains(t, out, "Pedro")
	require.Equal(t, 4, strings.Count(out, "\n"))

	out, err = run(t, srv.URL, "--format", "json", "get", "3")
	require.NoError(t, err)
	require.Contains(t, out, `"nome": "Pedro"`)

	_, err = run(t, srv.URL, "delete", "3")
	require.NoError(t, err)

	_, err = run(t, srv.URL, "delete", "3")
	require.ErrorContains(t, err, "does not exist")
}

func TestCLIRejectsUnknownFormat(t *testing.T) {
	_, err := run(t, "http://127.0.0.1:1", "--format", "yaml", "list")
	require.ErrorContains(t, err, "invalid format")
}
