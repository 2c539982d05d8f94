// AngelaMos | 2026
// handler.go

package activity

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
	r.Route("/activities", func(r chi.Router) {
		r.With(require(middleware.CapActivityCreate)).Post("/", h.Create)
		r.Get("/{farmerId}", h.ListByFarmer)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.JSONError(w, core.ValidationError("Failed to log activity", err.Error()))
		return
	}

	resp, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Farmer not found")
		case errors.Is(err, ErrInvalidCost):
			core.BadRequest(w, "Invalid cost value")
		default:
			core.JSONError(w, core.ValidationError("Failed to log activity", err.Error()))
		}
		return
	}

	core.Created(w, resp)
}

func (h *Handler) ListByFarmer(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListByFarmer(r.Context(), chi.URLParam(r, "farmerId"))
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "Invalid farmer ID")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}
