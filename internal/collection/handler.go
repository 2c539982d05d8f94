// AngelaMos | 2026
// handler.go

package collection

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	require func(middleware.Capability) func(http.Handler) http.Handler,
) {
	r.Route("/collections", func(r chi.Router) {
		r.With(require(middleware.CapCollectionCreate)).Post("/", h.Create)
		r.With(require(middleware.CapCollectionList)).Get("/", h.List)
		r.With(require(middleware.CapCollectionPay)).Put("/{id}/pay", h.MarkPaid)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.JSONError(w, core.ValidationError("Invalid collection data", err.Error()))
		return
	}

	resp, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Farmer not found")
		case errors.Is(err, ErrInvalidWeight):
			core.BadRequest(w, "Invalid weight value")
		case errors.Is(err, ErrInvalidPaymentRate):
			core.BadRequest(w, "Invalid payment rate value")
		default:
			core.JSONError(w, core.ValidationError("Invalid collection data", err.Error()))
		}
		return
	}

	core.Created(w, resp)
}

func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Collection record not found")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}
