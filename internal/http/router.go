package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"portfolio/internal/catalog"
	"portfolio/internal/handlers"
	"portfolio/internal/pages"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Catalog    catalog.Service
	Pages      *pages.Renderer
	Generation string // Content generation used for ETags
	StaticDir  string // Served under /static when set
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	pageHandler := handlers.NewPageHandler(deps.Catalog, deps.Pages, deps.Generation)
	apiHandler := handlers.NewPostsAPIHandler(deps.Catalog)
	healthHandler := handlers.NewHealthHandler(deps.Catalog)

	r.Get("/", pageHandler.Home)
	r.Get("/posts/{slug}", pageHandler.Post)

	r.Route("/api", func(r chi.Router) {
		r.Use(CORS)
		r.Get("/posts", apiHandler.List)
		r.Get("/posts/{slug}", apiHandler.Get)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	if deps.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(deps.StaticDir))))
	}

	r.NotFound(pageHandler.NotFound)

	return r
}
