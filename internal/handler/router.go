package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/cliente-api/internal/handler/customer"
	"github.com/zhouzirui/cliente-api/internal/metrics"
	middlewarePkg "github.com/zhouzirui/cliente-api/internal/middleware"
	customerModel "github.com/zhouzirui/cliente-api/internal/model/customer"
	"github.com/zhouzirui/cliente-api/pkg/utils"
)

// Options tune the router. The zero value serves the API at the root with
// CORS open to every origin and no /metrics endpoint.
type Options struct {
	// BasePath additionally mounts the customer routes under a prefix,
	// e.g. "/rest".
	BasePath    string
	CORSOrigins []string
	Metrics     *metrics.Metrics
}

// NewRouter wires HTTP routes to the customer store.
func NewRouter(store customerModel.Store, log zerolog.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middlewarePkg.Logger(log))
	r.Use(middlewarePkg.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.AccessLog())
	// metrics sit outside Recoverer so recovered panics are counted as 500s
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.CORSOrigins))

	customerHandler := customer.New(store)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	customerHandler.RegisterRoutes(r)
	if opts.BasePath != "" && opts.BasePath != "/" {
		r.Route(opts.BasePath, func(api chi.Router) {
			customerHandler.RegisterRoutes(api)
		})
	}

	return r
}
