// AngelaMos | 2026
// handler.go

package farmer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	require func(middleware.Capability) func(http.Handler) http.Handler,
) {
	r.Route("/farmers", func(r chi.Router) {
		r.With(require(middleware.CapFarmerCreate)).Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.With(require(middleware.CapFarmerUpdate)).Put("/{id}", h.Update)
		r.With(require(middleware.CapFarmerDelete)).Delete("/{id}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFarmerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	req.normalize()
	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationError(
			"Invalid farmer data",
			core.FormatValidationError(err),
		))
		return
	}

	resp, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("Contract ID already registered"))
			return
		}
		core.JSONError(w, core.ValidationError("Invalid farmer data", err.Error()))
		return
	}

	core.Created(w, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Profile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Farmer not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateFarmerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationError(
			"Invalid farmer data",
			core.FormatValidationError(err),
		))
		return
	}

	resp, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
		req,
	)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Farmer not found")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "Not authorized to update this farmer")
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, core.DuplicateError("Contract ID already registered"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Farmer not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}
