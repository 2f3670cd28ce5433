package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"timetracker/internal/api"
	"timetracker/internal/config"
	"timetracker/internal/logging"
	"timetracker/internal/repository/sqlite"
	"timetracker/internal/web"
)

const shutdownTimeout = 10 * time.Second

// newServeCommand creates the serve subcommand
func newServeCommand(root *RootCommand) *cobra.Command {
	var (
		host        string
		port        int
		dev         bool
		templateDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the time tracker web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			// Flags override everything else
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("dev") {
				cfg.Server.Dev = dev
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return runServer(cmd.Context(), cfg, templateDir)
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "address to listen on")
	cmd.Flags().IntVar(&port, "port", 8000, "port to listen on")
	cmd.Flags().BoolVar(&dev, "dev", false, "reload templates from disk on change")
	cmd.Flags().StringVar(&templateDir, "template-dir", "internal/web", "template root used with --dev")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, templateDir string) error {
	logger := logging.New(cfg.Log.Level)

	if err := os.MkdirAll(cfg.Database.Dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	repo, err := sqlite.NewWithConfig(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	apiInstance := api.NewWithConfig(repo, cfg)

	var renderer *web.Renderer
	if cfg.Server.Dev {
		renderer, err = web.NewDevRenderer(templateDir, logger)
	} else {
		renderer, err = web.NewRenderer(logger)
	}
	if err != nil {
		return err
	}

	server := web.NewServer(apiInstance, renderer, logger)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           server.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcherDone := make(chan struct{})
	if cfg.Server.Dev {
		go func() {
			defer close(watcherDone)
			if err := renderer.Watch(ctx.Done()); err != nil {
				logger.Error("template watcher stopped", "error", err)
			}
		}()
	} else {
		close(watcherDone)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", httpServer.Addr, "db", cfg.GetDatabasePath(), "dev", cfg.Server.Dev)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-watcherDone
	return nil
}
