package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"

	"portfolio/internal/catalog"
	"portfolio/internal/catalog/mocks"
)

func TestPostsAPIHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	posts := []catalog.Post{
		{Slug: "banting", Title: "Banting", Date: "2025-06-01", Tags: []string{"go"}, Featured: true},
		{Slug: "dialogym", Title: "Dialogym", Date: "2024-01-01", Tags: []string{}},
	}
	mockCatalog := mocks.NewMockService(ctrl)
	mockCatalog.EXPECT().ListAll(gomock.Any()).Return(posts, nil)

	handler := NewPostsAPIHandler(mockCatalog)
	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("List() status = %v, want %v", w.Code, http.StatusOK)
	}

	var got []catalog.Post
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if diff := cmp.Diff(posts, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestPostsAPIHandler_Get(t *testing.T) {
	tests := []struct {
		name       string
		post       catalog.Post
		err        error
		wantStatus int
	}{
		{
			name:       "found",
			post:       catalog.Post{Slug: "hi", Title: "Hi", RenderedBody: "<h1>Hi</h1>", Tags: []string{}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "not found",
			err:        catalog.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "internal error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockCatalog := mocks.NewMockService(ctrl)
			mockCatalog.EXPECT().GetByIdentifier(gomock.Any(), "hi").Return(tt.post, tt.err)

			handler := NewPostsAPIHandler(mockCatalog)
			req := withSlug(httptest.NewRequest(http.MethodGet, "/api/posts/hi", nil), "hi")
			w := httptest.NewRecorder()

			handler.Get(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Get() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				var resp ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || resp.Error == "" {
					t.Errorf("Get() error body = %q, want JSON error", w.Body.String())
				}
				return
			}

			var got catalog.Post
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if got.RenderedBody != tt.post.RenderedBody {
				t.Errorf("Get() renderedBody = %q, want %q", got.RenderedBody, tt.post.RenderedBody)
			}
		})
	}
}

func TestPostsAPIHandler_Get_SlugNotTrimmed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := mocks.NewMockService(ctrl)
	mockCatalog.EXPECT().GetByIdentifier(gomock.Any(), "hello-world ").Return(catalog.Post{}, catalog.ErrNotFound)

	handler := NewPostsAPIHandler(mockCatalog)
	req := withSlug(httptest.NewRequest(http.MethodGet, "/api/posts/hello-world%20", nil), "hello-world ")
	w := httptest.NewRecorder()

	handler.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Get() status = %v, want %v", w.Code, http.StatusNotFound)
	}
}
