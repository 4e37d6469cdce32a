package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio/internal/catalog"
	"portfolio/internal/contextutil"
	"portfolio/internal/pages"
)

// PageHandler serves the HTML listing and detail pages.
type PageHandler struct {
	catalog    catalog.Service
	pages      *pages.Renderer
	generation string
}

// NewPageHandler creates a PageHandler. generation identifies the deployed
// content and is used for ETags; an empty generation disables them.
func NewPageHandler(c catalog.Service, p *pages.Renderer, generation string) *PageHandler {
	return &PageHandler{catalog: c, pages: p, generation: generation}
}

// Home renders the listing of all posts.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if h.notModified(w, r, "home") {
		return
	}

	posts, err := h.catalog.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list posts", "error", err)
		http.Error(w, "failed to list posts", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.pages.Home(&buf, posts); err != nil {
		logger.ErrorContext(ctx, "failed to execute home template", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// Post renders a single post, or the not-found page if it does not exist.
func (h *PageHandler) Post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	slug := chi.URLParam(r, "slug")
	if h.notModified(w, r, "post-"+slug) {
		return
	}

	post, err := h.catalog.GetByIdentifier(ctx, slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			logger.DebugContext(ctx, "post not found", "slug", slug)
			h.NotFound(w, r)
			return
		}
		logger.ErrorContext(ctx, "failed to get post", "slug", slug, "error", err)
		http.Error(w, "failed to load post", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.pages.Post(&buf, post); err != nil {
		logger.ErrorContext(ctx, "failed to execute post template", "slug", slug, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// NotFound renders the not-found page with a 404 status.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var buf bytes.Buffer
	if err := h.pages.NotFound(&buf); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to execute not-found template", "error", err)
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Del("ETag")
	writeHTML(w, http.StatusNotFound, buf.Bytes())
}

// notModified sets the ETag for key and reports whether the client already
// has this generation of the page.
func (h *PageHandler) notModified(w http.ResponseWriter, r *http.Request, key string) bool {
	if h.generation == "" {
		return false
	}
	etag := `"` + h.generation + "-" + key + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
