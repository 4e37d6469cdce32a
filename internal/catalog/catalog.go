package catalog

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_service.go -package=mocks portfolio/internal/catalog Service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"portfolio/internal/content"
)

// ErrNotFound is returned when a post does not exist.
var ErrNotFound = content.ErrNotFound

// runesPerMinute is the reading speed used for ReadingMinutes.
const runesPerMinute = 500

// Post is a content record shaped for display.
// Body, RenderedBody and ReadingMinutes are only set by GetByIdentifier.
type Post struct {
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Date           string   `json:"date"`
	Tags           []string `json:"tags"`
	Thumbnail      string   `json:"thumbnail,omitempty"`
	GitHub         string   `json:"github,omitempty"`
	Demo           string   `json:"demo,omitempty"`
	Featured       bool     `json:"featured,omitempty"`
	Body           string   `json:"body,omitempty"`
	RenderedBody   string   `json:"renderedBody,omitempty"`
	ReadingMinutes int      `json:"readingMinutes,omitempty"`
}

// Service defines the read operations the page layer needs.
type Service interface {
	// ListAll returns every post without body, newest first.
	ListAll(ctx context.Context) ([]Post, error)
	// GetByIdentifier returns a single post with its rendered body.
	// Returns an error wrapping ErrNotFound if slug does not exist.
	GetByIdentifier(ctx context.Context, slug string) (Post, error)
	// Slugs returns the identifier of every post.
	Slugs(ctx context.Context) ([]string, error)
}

// BodyRenderer converts a markdown body to HTML.
type BodyRenderer interface {
	Render(body []byte) (string, error)
}

// Catalog aggregates store entries into posts.
// Nothing is cached: every call reads the store again.
type Catalog struct {
	store    content.Store
	renderer BodyRenderer
}

// New creates a Catalog reading from store and rendering with renderer.
func New(store content.Store, renderer BodyRenderer) *Catalog {
	return &Catalog{store: store, renderer: renderer}
}

// ListAll returns every post without body, sorted by date descending.
// Dates are compared as strings, which is only correct for zero-padded
// ISO dates such as 2025-06-01.
func (c *Catalog) ListAll(ctx context.Context) ([]Post, error) {
	entries, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	posts := make([]Post, 0, len(entries))
	for _, e := range entries {
		posts = append(posts, fromEntry(e))
	}

	slices.SortStableFunc(posts, func(a, b Post) int {
		return strings.Compare(b.Date, a.Date)
	})

	return posts, nil
}

// GetByIdentifier reads a single post and renders its body.
func (c *Catalog) GetByIdentifier(ctx context.Context, slug string) (Post, error) {
	entry, err := c.store.Get(ctx, slug)
	if err != nil {
		return Post{}, fmt.Errorf("failed to get post: %w", err)
	}

	html, err := c.renderer.Render(entry.Body)
	if err != nil {
		return Post{}, fmt.Errorf("failed to render post %s: %w", slug, err)
	}

	post := fromEntry(entry)
	post.Body = string(entry.Body)
	post.RenderedBody = html
	post.ReadingMinutes = readingMinutes(html)
	return post, nil
}

// Slugs returns the identifier of every post in store order.
func (c *Catalog) Slugs(ctx context.Context) ([]string, error) {
	entries, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		slugs = append(slugs, e.Slug)
	}
	return slugs, nil
}

func fromEntry(e content.Entry) Post {
	tags := e.Meta.Tags
	if tags == nil {
		tags = []string{}
	}
	return Post{
		Slug:        e.Slug,
		Title:       e.Meta.Title,
		Description: e.Meta.Description,
		Date:        e.Meta.Date,
		Tags:        tags,
		Thumbnail:   e.Meta.Thumbnail,
		GitHub:      e.Meta.GitHub,
		Demo:        e.Meta.Demo,
		Featured:    e.Meta.Featured,
	}
}

// readingMinutes estimates reading time from the rendered HTML, rounding up.
func readingMinutes(html string) int {
	n := utf8.RuneCountInString(html)
	return (n + runesPerMinute - 1) / runesPerMinute
}
