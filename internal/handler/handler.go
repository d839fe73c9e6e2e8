package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/mtlprog/portfolio/docs" // Import generated docs
	"github.com/mtlprog/portfolio/internal/handler/dto"
	"github.com/mtlprog/portfolio/internal/middleware"
	"github.com/mtlprog/portfolio/internal/router"
	"github.com/mtlprog/portfolio/internal/service"
	"github.com/rcrowley/go-metrics"
	httpSwagger "github.com/swaggo/http-swagger"
)

// HealthChecker is implemented by asset stores that can report their health.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps are the collaborators of Handler. Store may be nil when no asset store
// is bound; Router then answers every asset request with a 500.
type Deps struct {
	Router        *router.Router
	Store         router.Store
	StoreName     string
	Contributions *service.ContributionService
	Themes        *service.ThemeService
	Registry      metrics.Registry
	AdminToken    string
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	router         *router.Router
	store          router.Store
	storeName      string
	contributions  *service.ContributionService
	themes         *service.ThemeService
	registry       metrics.Registry
	authMiddleware *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(deps Deps) *Handler {
	registry := deps.Registry
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	themes := deps.Themes
	if themes == nil {
		themes = service.NewThemeService("")
	}

	return &Handler{
		router:         deps.Router,
		store:          deps.Store,
		storeName:      deps.StoreName,
		contributions:  deps.Contributions,
		themes:         themes,
		registry:       registry,
		authMiddleware: middleware.NewAuthMiddleware(deps.AdminToken),
	}
}

// RegisterRoutes registers all HTTP routes. The asset router takes every path
// no other route claims.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Site API
	mux.HandleFunc("GET /api/v1/contributions", h.handleGetContributions)
	mux.HandleFunc("GET /api/v1/theme", h.handleGetTheme)
	mux.HandleFunc("PUT /api/v1/theme", h.handleSetTheme)
	mux.HandleFunc("POST /api/v1/theme/toggle", h.handleToggleTheme)

	// Admin
	mux.Handle("GET /debug/metrics", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleMetrics)))

	// Static assets with SPA fallback
	if h.router != nil {
		mux.Handle("/", h.router)
	}
}

// Routes returns the full handler chain: request id, access log, recover, routes.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return middleware.RequestID(middleware.AccessLog(middleware.Recover(mux)))
}

// handleHealthz returns 200 OK if the asset store is bound and healthy.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "ASSETS_NOT_CONFIGURED", router.NotConfiguredMessage)
		return
	}

	if checker, ok := h.store.(HealthChecker); ok {
		if err := checker.Health(ctx); err != nil {
			slog.Error("asset store health check failed", "store", h.storeName, "error", err)
			respondError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", fmt.Sprintf("%s store unavailable", h.storeName))
			return
		}
	}

	respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Store: h.storeName})
}

// handleMetrics dumps the metrics registry as JSON.
func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	metrics.WriteJSONOnce(h.registry, w)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps err and writes it as a standard error response.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}
