package site

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"portfolio/internal/catalog"
	"portfolio/internal/pages"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
)

// Result summarizes an export.
type Result struct {
	Pages  int // HTML pages written, including index and 404
	Assets int // Static files copied
}

// Exporter writes the whole site as static HTML.
type Exporter struct {
	catalog   catalog.Service
	pages     *pages.Renderer
	outputDir string
	staticDir string
	logger    *slog.Logger
}

// NewExporter creates an Exporter writing into outputDir. Files under
// staticDir, if set, are copied to outputDir/static.
func NewExporter(c catalog.Service, p *pages.Renderer, outputDir, staticDir string) *Exporter {
	return &Exporter{
		catalog:   c,
		pages:     p,
		outputDir: outputDir,
		staticDir: staticDir,
		logger:    slog.Default(),
	}
}

// Export renders the listing, every post and the not-found page.
// Existing files are replaced atomically; stale files are left in place.
func (e *Exporter) Export(ctx context.Context) (Result, error) {
	var res Result

	posts, err := e.catalog.ListAll(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to list posts: %w", err)
	}

	var buf bytes.Buffer
	if err := e.pages.Home(&buf, posts); err != nil {
		return res, fmt.Errorf("failed to render index: %w", err)
	}
	if err := e.write("index.html", buf.Bytes()); err != nil {
		return res, err
	}
	res.Pages++

	for _, p := range posts {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		post, err := e.catalog.GetByIdentifier(ctx, p.Slug)
		if err != nil {
			return res, fmt.Errorf("failed to load post %s: %w", p.Slug, err)
		}

		buf.Reset()
		if err := e.pages.Post(&buf, post); err != nil {
			return res, fmt.Errorf("failed to render post %s: %w", p.Slug, err)
		}
		if err := e.write(filepath.Join("posts", p.Slug, "index.html"), buf.Bytes()); err != nil {
			return res, err
		}
		res.Pages++
	}

	buf.Reset()
	if err := e.pages.NotFound(&buf); err != nil {
		return res, fmt.Errorf("failed to render 404 page: %w", err)
	}
	if err := e.write("404.html", buf.Bytes()); err != nil {
		return res, err
	}
	res.Pages++

	if e.staticDir != "" {
		n, err := e.copyStatic()
		if err != nil {
			return res, err
		}
		res.Assets = n
	}

	e.logger.InfoContext(ctx, "site exported", "output", e.outputDir, "pages", res.Pages, "assets", res.Assets)
	return res, nil
}

func (e *Exporter) write(rel string, data []byte) error {
	path := filepath.Join(e.outputDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), dirPerms); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	// atomic.WriteFile keeps the temp file's restrictive mode for new files.
	if err := os.Chmod(path, filePerms); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", rel, err)
	}
	return nil
}

// copyStatic mirrors staticDir into outputDir/static.
func (e *Exporter) copyStatic() (int, error) {
	count := 0
	err := filepath.WalkDir(e.staticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(e.staticDir, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := e.write(filepath.Join("static", rel), data); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("failed to copy static assets: %w", err)
	}
	return count, nil
}
