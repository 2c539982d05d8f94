// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/middleware"
)

// Handler serves account management for administrators.
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
	r.Route("/users", func(r chi.Router) {
		r.With(require(middleware.CapUserList)).Get("/", h.List)
		r.With(require(middleware.CapUserList)).Get("/{id}", h.Get)
		r.With(require(middleware.CapUserManage)).Put("/{id}/role", h.UpdateRole)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "pageSize", 20),
		Search:   r.URL.Query().Get("search"),
		Role:     r.URL.Query().Get("role"),
	}
	params.Normalize()

	users, total, err := h.service.Accounts(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, ToAccountResponseList(users), params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Account(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "User not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAccountResponse(u))
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationError(
			"Invalid role",
			core.FormatValidationError(err),
		))
		return
	}

	u, err := h.service.ChangeRole(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
		req.Role,
	)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "User not found")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "Cannot change your own role")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToAccountResponse(u))
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
