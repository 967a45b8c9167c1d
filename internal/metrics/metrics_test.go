package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/cliente-api/internal/model/customer"
)

func TestMiddlewareCountsByRoutePattern(t *testing.T) {
	m := New(customer.NewMemoryStore(customer.Seed()), zerolog.Nop())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/cliente/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cliente/"+id, nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/cliente/{id}", "404"))
	if got != 2 {
		t.Fatalf("expected 2 requests recorded, got %v", got)
	}
}

func TestHandlerReportsStoredCustomers(t *testing.T) {
	store := customer.NewMemoryStore(customer.Seed())
	m := New(store, zerolog.Nop())

	resp := httptest.NewRecorder()
	m.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "customers_stored 2") {
		t.Fatalf("expected customers_stored 2 in exposition, got:\n%s", resp.Body.String())
	}
}

func TestMiddlewareCountsRecoveredPanics(t *testing.T) {
	m := New(customer.NewMemoryStore(nil), zerolog.Nop())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Use(middleware.Recoverer)
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/boom", "500"))
	if got != 1 {
		t.Fatalf("expected recovered panic to be counted, got %v", got)
	}
}
