package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"portfolio/internal/config"
	"portfolio/internal/pages"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Serve or export the portfolio site",
	Long: `Portfolio renders the markdown posts in the content directory as a
listing page and one page per post. It can serve them over HTTP or export
them as static HTML.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		configureLogging(cfg)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func configureLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
}

// siteInfo builds the page chrome from configuration. The toggle assets are
// only referenced when a static directory can serve them.
func siteInfo(cfg *config.Config) pages.Site {
	return pages.Site{
		Title:        cfg.SiteTitle,
		Description:  cfg.SiteDescription,
		Author:       cfg.SiteAuthor,
		Lang:         "en",
		Year:         time.Now().Year(),
		ToggleAssets: cfg.StaticDir != "",
	}
}
