package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"portfolio/internal/catalog"
	"portfolio/internal/contextutil"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	catalog            catalog.Service
	healthCheckTimeout time.Duration
	now                func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(c catalog.Service) *HealthHandler {
	return &HealthHandler{
		catalog:            c,
		healthCheckTimeout: 5 * time.Second,
		now:                time.Now,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// Number of posts found in the content directory
	Posts int `json:"posts"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP reports whether the content directory can be read.
// Returns 200 OK if healthy, 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	count, ok := h.checkContent(checkCtx, logger)
	if ok {
		checks["content"] = "ok"
	} else {
		checks["content"] = "error"
		issues = append(issues, "content_unreadable")
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, r, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Posts:     count,
		Issues:    issues,
	})
}

// checkContent lists the content directory and returns the number of posts.
func (h *HealthHandler) checkContent(ctx context.Context, logger *slog.Logger) (int, bool) {
	slugs, err := h.catalog.Slugs(ctx)
	if err != nil {
		logger.WarnContext(ctx, "content health check failed", "error", err)
		return 0, false
	}
	return len(slugs), true
}
