// AngelaMos | 2026
// handler.go

package insights

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agritrace/agritrace-api/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, limiter func(http.Handler) http.Handler) {
	r.Route("/ai", func(r chi.Router) {
		r.Use(limiter)

		r.Get("/insights", h.Insights)
		r.Get("/farmer-summary/{farmerId}", h.FarmerSummary)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/activity-distribution", h.chart(h.service.ActivityDistribution))
			r.Get("/collections-timeseries", h.chart(h.service.CollectionsTimeseries))
			r.Get("/yield-by-region", h.chart(h.service.YieldByRegion))
			r.Get("/quality-distribution", h.chart(h.service.QualityDistribution))
			r.Get("/yield-forecast", h.YieldForecast)
		})
	})
}

func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Insights(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, resp)
}

func (h *Handler) FarmerSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.FarmerSummary(r.Context(), chi.URLParam(r, "farmerId"))
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

func (h *Handler) YieldForecast(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.YieldForecast(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, resp)
}

func (h *Handler) chart(load func(ctx context.Context) (Chart, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chart, err := load(r.Context())
		if err != nil {
			core.InternalServerError(w, err)
			return
		}
		core.OK(w, chart)
	}
}
