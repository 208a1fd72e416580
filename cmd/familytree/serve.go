package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dukerupert/familytree/internal/database"
	"github.com/dukerupert/familytree/internal/familykey"
	"github.com/dukerupert/familytree/internal/gallery"
	"github.com/dukerupert/familytree/internal/identity"
	"github.com/dukerupert/familytree/internal/logging"
	"github.com/dukerupert/familytree/internal/server"
)

const (
	shutdownTimeout        = 5 * time.Second
	rateLimitCleanupPeriod = 5 * time.Minute
	sessionCleanupPeriod   = time.Hour
)

func newServeCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&f.port, "port", "", "listen port (FAMILYTREE_PORT)")
	return cmd
}

func serve(ctx context.Context, f *flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	registry, err := loadRegistry(cfg, f)
	if err != nil {
		return err
	}
	for _, issue := range registry.Issues() {
		logger.Warn("registry issue", "issue", issue.Error())
	}

	keys, err := familykey.New(cfg.FamilyKey, cfg.FamilyKeyHash)
	if err != nil {
		return fmt.Errorf("family key: %w", err)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	idc := identity.NewClient(cfg.FirebaseAPIKey)
	if !idc.Configured() {
		logger.Warn("FIREBASE_API_KEY not set, sign-up and sign-in are disabled")
	}
	photos := gallery.NewPhotoStore(cfg.S3)
	if !photos.Enabled() {
		logger.Warn("object storage not configured, photo uploads are disabled")
	}

	srv := server.New(server.Deps{
		DB:            db,
		Registry:      registry,
		FamilyKey:     keys,
		Identity:      idc,
		Photos:        photos,
		SecureCookies: cfg.SecureCookies,
		Logger:        logger,
	})

	httpServer := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     srv.Router(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", "addr", httpServer.Addr, "members", registry.Len())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		srv.RateLimiter().RunCleanup(gctx, rateLimitCleanupPeriod)
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(sessionCleanupPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := srv.SessionStore().DeleteExpired()
				if err != nil {
					logger.Error("delete expired sessions", "error", err)
					continue
				}
				if n > 0 {
					logger.Info("deleted expired sessions", "count", n)
				}
			case <-gctx.Done():
				return nil
			}
		}
	})

	return g.Wait()
}
