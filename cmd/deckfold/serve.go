package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	httpserver "github.com/deckfold/deckfold/internal/adapters/primary/http"
	"github.com/deckfold/deckfold/internal/adapters/secondary/browser"
	"github.com/deckfold/deckfold/internal/adapters/secondary/config"
	"github.com/deckfold/deckfold/internal/adapters/secondary/parser"
	"github.com/deckfold/deckfold/internal/adapters/secondary/renderer"
	"github.com/deckfold/deckfold/internal/adapters/secondary/repository"
	"github.com/deckfold/deckfold/internal/adapters/secondary/watcher"
	"github.com/deckfold/deckfold/internal/domain/entities"
	"github.com/deckfold/deckfold/internal/domain/services"
)

var (
	servePort      int
	serveHost      string
	serveNoBrowser bool
	serveFormat    string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Serve a markdown presentation with live reload",
	Long: `Start a local HTTP server that segments the markdown file into
slides and redisplays it on every save.

Example:
  deckfold serve talk.md
  deckfold serve talk.md --port 8080 --no-browser
  deckfold serve notes.md --format horizontal_rule`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoBrowser, "no-browser", false, "Don't open browser automatically")
	serveCmd.Flags().StringVarP(&serveFormat, "format", "f", "", "Slide format: full_content, header, or horizontal_rule (default: from config, else horizontal_rule)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	presentationPath := args[0]

	cfg, err := loadConfig(cmd, presentationPath)
	if err != nil {
		return err
	}

	engine := parser.NewEngineFromConfig(cfg.Parser)
	repo := repository.NewFileRepository(engine,
		repository.WithFormat(entities.PresentationFormat(cfg.Parser.DefaultFormat)))
	slides := renderer.NewSlideRenderer()
	presenter := services.NewPresentationService(engine, repo, slides)

	if _, err := presenter.LoadPresentation(ctx, presentationPath); err != nil {
		return fmt.Errorf("loading %s: %w", presentationPath, err)
	}

	server := httpserver.NewServer(presenter, &cfg.Server, &cfg.Logging)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	defer func() {
		_ = server.Stop(context.Background())
	}()

	poller := watcher.NewPollingWatcher(cfg.Watcher.GetInterval(), cfg.Watcher.GetDebounce(), slog.Default())
	reload := services.NewLiveReloadService(poller, server, presenter, slog.Default())
	if err := reload.Start(ctx, presentationPath); err != nil {
		return fmt.Errorf("starting live reload: %w", err)
	}
	defer func() {
		_ = reload.Stop()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at %s\n", filepath.Base(presentationPath), server.Addr())

	if cfg.Browser.AutoOpen {
		if err := browser.NewLauncher().Open(server.Addr()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open browser: %v\n", err)
		}
	}

	<-ctx.Done()
	return nil
}

// loadConfig merges defaults, global and local config files, and CLI flags
func loadConfig(cmd *cobra.Command, presentationPath string) (*entities.Config, error) {
	ctx := cmd.Context()
	loader := config.NewTOMLLoader()

	global, err := loader.LoadGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	local, err := loader.LoadLocal(ctx, filepath.Dir(presentationPath))
	if err != nil {
		return nil, fmt.Errorf("loading local config: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	merger := config.NewMerger()
	cfg := merger.Merge(global, local)
	cfg = merger.ApplyFlags(cfg, map[string]interface{}{
		"port":       servePort,
		"host":       serveHost,
		"format":     serveFormat,
		"no-browser": serveNoBrowser,
		"verbose":    verbose,
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
