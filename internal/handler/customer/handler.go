package customer

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/hlog"

	"github.com/zhouzirui/cliente-api/internal/model/customer"
	"github.com/zhouzirui/cliente-api/pkg/utils"
)

// Confirmation messages returned as text/plain.
const (
	MsgInserted = "Customer inserted!"
	MsgUpdated  = "Customer updated!"
	MsgDeleted  = "Customer deleted!"
)

const maxBodyBytes = 1 << 20

// Handler serves the /cliente resource.
type Handler struct {
	store    customer.Store
	validate *validator.Validate
}

// New creates the customer handler.
func New(store customer.Store) *Handler {
	return &Handler{
		store:    store,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the customer routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/cliente", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleInsert)
		r.Put("/", h.handleUpdate)
		r.Get("/{id}", h.handleGet)
		r.Delete("/{id}", h.handleDelete)
	})
}

// handleList returns every customer, or only those matching the
// clienteId / nome / cpf query parameters when any is present.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	criteria := customer.Criteria{
		ID:         query.Get("clienteId"),
		Name:       query.Get("nome"),
		NationalID: query.Get("cpf"),
	}

	var (
		items []customer.Customer
		err   error
	)
	if criteria.Empty() {
		items, err = h.store.List(r.Context())
	} else {
		items, err = h.store.Filter(r.Context(), criteria)
	}
	if err != nil {
		h.storeFailure(w, r, err)
		return
	}

	if len(items) == 0 {
		utils.RespondStatus(w, http.StatusNoContent)
		return
	}
	utils.RespondJSON(w, r, http.StatusOK, items)
}

// handleGet returns the first customer whose id matches, ignoring case.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	items, err := h.store.Filter(r.Context(), customer.ByID(id))
	if err != nil {
		h.storeFailure(w, r, err)
		return
	}
	if len(items) == 0 {
		utils.RespondStatus(w, http.StatusNotFound)
		return
	}
	utils.RespondJSON(w, r, http.StatusOK, items[0])
}

// handleInsert adds a customer. A duplicate id leaves the store untouched
// and still answers with the confirmation message.
func (h *Handler) handleInsert(w http.ResponseWriter, r *http.Request) {
	c, ok := h.decodeCustomer(w, r)
	if !ok {
		return
	}

	log := hlog.FromRequest(r)
	err := h.store.Insert(r.Context(), c)
	switch {
	case errors.Is(err, customer.ErrCustomerExists):
		log.Info().Str("customer_id", c.ID).Msg("duplicate insert ignored")
	case err != nil:
		h.storeFailure(w, r, err)
		return
	default:
		log.Debug().Str("customer_id", c.ID).Msg("customer inserted")
	}

	utils.RespondText(w, r, http.StatusOK, MsgInserted)
}

// handleUpdate overwrites name and cpf. Unknown ids answer 304.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	c, ok := h.decodeCustomer(w, r)
	if !ok {
		return
	}

	err := h.store.Update(r.Context(), c)
	switch {
	case errors.Is(err, customer.ErrCustomerNotFound):
		utils.RespondStatus(w, http.StatusNotModified)
	case err != nil:
		h.storeFailure(w, r, err)
	default:
		hlog.FromRequest(r).Debug().Str("customer_id", c.ID).Msg("customer updated")
		utils.RespondText(w, r, http.StatusOK, MsgUpdated)
	}
}

// handleDelete removes a customer. Unknown ids answer 304.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.store.Delete(r.Context(), id)
	switch {
	case errors.Is(err, customer.ErrCustomerNotFound):
		utils.RespondStatus(w, http.StatusNotModified)
	case err != nil:
		h.storeFailure(w, r, err)
	default:
		hlog.FromRequest(r).Debug().Str("customer_id", id).Msg("customer deleted")
		utils.RespondText(w, r, http.StatusOK, MsgDeleted)
	}
}

func (h *Handler) decodeCustomer(w http.ResponseWriter, r *http.Request) (customer.Customer, bool) {
	var c customer.Customer

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&c); err != nil || dec.More() {
		utils.RespondError(w, r, http.StatusBadRequest, "invalid request body")
		return c, false
	}
	if err := h.validate.Struct(c); err != nil || strings.TrimSpace(c.ID) == "" {
		utils.RespondError(w, r, http.StatusBadRequest, "clienteId is required")
		return c, false
	}
	return c, true
}

func (h *Handler) storeFailure(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Error().Err(err).Msg("customer store failure")
	utils.RespondError(w, r, http.StatusInternalServerError, "internal error")
}
