package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contacts"
	"github.com/Zachkp/portfolio/internal/observability"
	"github.com/Zachkp/portfolio/internal/resume"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/timeline"
	"github.com/Zachkp/portfolio/internal/typing"
	"github.com/Zachkp/portfolio/internal/visits"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// resumeSource prefers a remote resume when RESUME_URL is set.
func resumeSource(cfg config.Config) resume.Source {
	if cfg.ResumeURL != "" {
		return resume.HTTPSource{URL: cfg.ResumeURL}
	}
	return resume.FileSource{Path: cfg.ResumePath}
}

func openVisits(ctx context.Context, cfg config.Config, log *slog.Logger) (*visits.Store, error) {
	if cfg.VisitsDB == "" {
		log.Info("visitor tracking disabled")
		return nil, nil
	}

	salt, err := visits.NewSalt()
	if err != nil {
		return nil, err
	}
	store, err := visits.Open(ctx, cfg.VisitsDB, salt)
	if err != nil {
		return nil, err
	}

	store.Go(func(ctx context.Context) {
		n, err := store.Cleanup(ctx, time.Now().Add(-visits.Retention))
		if err != nil {
			log.ErrorContext(ctx, "error cleaning up old visitor data", "error", err)
			return
		}
		if n > 0 {
			log.InfoContext(ctx, "privacy cleanup removed old visitor records", "rows", n)
		}
	})

	log.Info("visitor tracking enabled with hashed IP addresses", "db", cfg.VisitsDB)
	return store, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := observability.NewLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openVisits(ctx, cfg, log)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	loop, err := typing.NewLoop(cfg.Phrases, typing.DefaultTimings(), typing.RealClock{})
	if err != nil {
		return err
	}
	src := resumeSource(cfg)
	loader := timeline.NewLoader(src, log)
	people := contacts.NewLoader(src, log)

	router := server.NewRouter(server.Options{
		Env:          cfg.Env,
		TemplatesDir: cfg.TemplatesDir,
		StaticDir:    cfg.StaticDir,
		ResumePath:   cfg.ResumePath,
		AdminToken:   cfg.AdminToken,
	}, log, loader, people, loop, store)

	// No WriteTimeout: /typing is a long-lived event stream.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		return err
	}
	log.Info("shutdown complete")
	return nil
}
