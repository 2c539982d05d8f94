// AngelaMos | 2026
// router.go

package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/agritrace/agritrace-api/internal/activity"
	"github.com/agritrace/agritrace-api/internal/admin"
	"github.com/agritrace/agritrace-api/internal/auth"
	"github.com/agritrace/agritrace-api/internal/collection"
	"github.com/agritrace/agritrace-api/internal/config"
	"github.com/agritrace/agritrace-api/internal/farmer"
	"github.com/agritrace/agritrace-api/internal/health"
	"github.com/agritrace/agritrace-api/internal/insights"
	"github.com/agritrace/agritrace-api/internal/middleware"
	"github.com/agritrace/agritrace-api/internal/user"
)

// Handlers groups the feature handlers. Nil handlers are not mounted.
type Handlers struct {
	Auth        *auth.Handler
	Farmers     *farmer.Handler
	Activities  *activity.Handler
	Collections *collection.Handler
	Insights    *insights.Handler
	Admin       *admin.Handler
	Users       *user.Handler
	Health      *health.Handler
	Realtime    http.HandlerFunc
	JWKS        http.HandlerFunc
}

type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Redis    *redis.Client
	Verifier middleware.TokenVerifier
	Policy   *middleware.Policy
}

// Mount installs the middleware stack and every route on r.
func Mount(r chi.Router, d Deps, h Handlers) {
	cfg := d.Config
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	policy := d.Policy
	if policy == nil {
		policy = NewPolicy()
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(
		middleware.NewRateLimiter(d.Redis, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.CORS))

	if h.Health != nil {
		h.Health.RegisterRoutes(r)
	}
	if h.JWKS != nil {
		r.Get("/.well-known/jwks.json", h.JWKS)
	}
	if h.Realtime != nil {
		r.Get("/ws", h.Realtime)
	}

	authenticator := middleware.Authenticator(d.Verifier)

	loginLimiter := middleware.NewRateLimiter(d.Redis, middleware.RateLimitConfig{
		Limit:    middleware.PerMinute(cfg.RateLimit.LoginRequests, cfg.RateLimit.LoginBurst),
		Prefix:   "login",
		FailOpen: true,
	}).Handler

	aiLimiter := middleware.NewRateLimiter(d.Redis, middleware.RateLimitConfig{
		Limit:    middleware.PerMinute(cfg.AI.RequestsPerMinute, cfg.AI.Burst),
		Prefix:   "ai",
		KeyFunc:  middleware.KeyByUser,
		FailOpen: true,
	}).Handler

	r.Route("/api", func(r chi.Router) {
		if h.Auth != nil {
			h.Auth.RegisterRoutes(
				r,
				authenticator,
				policy.Require(middleware.CapUserRegister),
				loginLimiter,
			)
		}

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			if h.Farmers != nil {
				h.Farmers.RegisterRoutes(r, policy.Require)
			}
			if h.Activities != nil {
				h.Activities.RegisterRoutes(r, policy.Require)
			}
			if h.Collections != nil {
				h.Collections.RegisterRoutes(r, policy.Require)
			}
			if h.Insights != nil {
				h.Insights.RegisterRoutes(r, aiLimiter)
			}
			if h.Users != nil {
				h.Users.RegisterRoutes(r, policy.Require)
			}
			if h.Admin != nil {
				h.Admin.RegisterRoutes(r, policy.Require(middleware.CapSystemStats))
			}
		})
	})
}
