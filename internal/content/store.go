package content

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks portfolio/internal/content Store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
)

// Extension is the file extension recognized as content.
const Extension = ".md"

var (
	// ErrNotFound is returned when no entry exists for a requested slug.
	ErrNotFound = errors.New("content not found")
)

// Store defines read access to markdown content entries.
type Store interface {
	// List returns every entry in the store, ordered by filename.
	List(ctx context.Context) ([]Entry, error)
	// Get returns the entry for slug.
	// Returns an error wrapping ErrNotFound if it does not exist.
	Get(ctx context.Context, slug string) (Entry, error)
}

// DirStore reads entries from a flat directory of markdown files.
// It implements the Store interface.
type DirStore struct {
	root string
}

// NewDirStore creates a DirStore rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{root: filepath.Clean(dir)}
}

// Root returns the directory the store reads from.
func (s *DirStore) Root() string {
	return s.root
}

// List returns every markdown entry directly under the store root.
// Subdirectories and files with other extensions are ignored.
func (s *DirStore) List(ctx context.Context) ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read content dir %s: %w", s.root, err)
	}

	var names []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), Extension) {
			continue
		}
		names = append(names, de.Name())
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		entry, err := s.readFile(strings.TrimSuffix(name, Extension), filepath.Join(s.root, name))
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Get reads the entry backed by <root>/<slug>.md.
func (s *DirStore) Get(ctx context.Context, slug string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	if !validSlug(slug) {
		return Entry{}, fmt.Errorf("slug %q: %w", slug, ErrNotFound)
	}

	entry, err := s.readFile(slug, filepath.Join(s.root, slug+Extension))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, fmt.Errorf("slug %q: %w", slug, ErrNotFound)
		}
		return Entry{}, err
	}
	return entry, nil
}

func (s *DirStore) readFile(slug, path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	meta, body, err := Parse(data)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return Entry{Slug: slug, Meta: meta, Body: body}, nil
}

// Parse splits a content file into its front matter and markdown body.
// A file without a front matter block is all body with empty metadata.
func Parse(data []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("front matter: %w", err)
	}
	return meta.normalize(), body, nil
}

// validSlug reports whether slug names a single file directly under the root.
func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`)
}
