package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"portfolio/internal/catalog"
	"portfolio/internal/content"
	"portfolio/internal/markdown"
	"portfolio/internal/pages"
	"portfolio/internal/site"
)

var (
	buildOut   string
	buildWatch bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static HTML",
	Long: `Build writes index.html, one page per post under posts/<slug>/ and
404.html into the output directory, and copies the static directory
alongside. With --watch it keeps rebuilding whenever content changes.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildOut, "out", "", "output directory (overrides OUTPUT_DIR)")
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "rebuild when content or static files change")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if buildOut != "" {
		cfg.OutputDir = buildOut
	}

	p, err := pages.New(siteInfo(cfg))
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	svc := catalog.New(content.NewDirStore(cfg.ContentDir), markdown.NewRenderer())
	exporter := site.NewExporter(svc, p, cfg.OutputDir, cfg.StaticDir)

	res, err := exporter.Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to export site: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Static site generated: %s (%d pages, %d assets)\n", cfg.OutputDir, res.Pages, res.Assets)

	if !buildWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Watching for changes", "content", cfg.ContentDir, "static", cfg.StaticDir)
	return exporter.Watch(ctx, []string{cfg.ContentDir, cfg.StaticDir}, site.DefaultDebounce, nil)
}
