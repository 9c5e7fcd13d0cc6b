package routes

import (
	"net/http"

	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/api/handlers"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/api/middleware"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	workflowHandler *handlers.WorkflowHandler

	metrics        *observability.Metrics
	authToken      string
	allowedOrigins []string
}

// NewRouter creates a new router
func NewRouter(
	workflowHandler *handlers.WorkflowHandler,
	metrics *observability.Metrics,
	authToken string,
	allowedOrigins []string,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		workflowHandler: workflowHandler,
		metrics:         metrics,
		authToken:       authToken,
		allowedOrigins:  allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Workflow endpoint, behind the bearer token
	auth := middleware.AuthMiddleware(r.authToken)
	r.mux.Handle("POST /api/v1/workflows/process", auth(http.HandlerFunc(r.workflowHandler.ProcessWorkflow)))

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	return handler
}
