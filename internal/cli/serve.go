package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"portfolio/internal/catalog"
	"portfolio/internal/content"
	"portfolio/internal/http"
	"portfolio/internal/markdown"
	"portfolio/internal/pages"
)

const shutdownTimeout = 10 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (overrides API_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if servePort != "" {
		cfg.APIPort = servePort
	}

	p, err := pages.New(siteInfo(cfg))
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	store := content.NewDirStore(cfg.ContentDir)
	svc := catalog.New(store, markdown.NewRenderer())

	// Content is read-only while the process runs, so one generation per
	// process is enough to scope ETags.
	generation := uuid.NewString()

	router := http.NewRouter(&http.Deps{
		Catalog:    svc,
		Pages:      p,
		Generation: generation,
		StaticDir:  cfg.StaticDir,
	})

	srv := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", srv.Addr, "content", cfg.ContentDir, "generation", generation)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
