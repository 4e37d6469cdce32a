package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio/internal/catalog"
	"portfolio/internal/contextutil"
)

// PostsAPIHandler serves the catalog as JSON.
type PostsAPIHandler struct {
	catalog catalog.Service
}

// NewPostsAPIHandler creates a new PostsAPIHandler.
func NewPostsAPIHandler(c catalog.Service) *PostsAPIHandler {
	return &PostsAPIHandler{catalog: c}
}

// ErrorResponse is the JSON body of a failed API request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// List handles GET /api/posts.
func (h *PostsAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	posts, err := h.catalog.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list posts", "error", err)
		writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{Error: "failed to list posts"})
		return
	}
	writeJSON(w, r, http.StatusOK, posts)
}

// Get handles GET /api/posts/{slug}.
func (h *PostsAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	slug := chi.URLParam(r, "slug")
	post, err := h.catalog.GetByIdentifier(ctx, slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeJSON(w, r, http.StatusNotFound, ErrorResponse{Error: "post not found"})
			return
		}
		logger.ErrorContext(ctx, "failed to get post", "slug", slug, "error", err)
		writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{Error: "failed to load post"})
		return
	}
	writeJSON(w, r, http.StatusOK, post)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctx := r.Context()
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
