package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/wispgen/internal/archive"
	"github.com/mmynk/wispgen/internal/config"
	"github.com/mmynk/wispgen/internal/document"
	"github.com/mmynk/wispgen/internal/metrics"
	"github.com/mmynk/wispgen/internal/middleware"
	"github.com/mmynk/wispgen/internal/service"
	"github.com/mmynk/wispgen/internal/session"
	"github.com/mmynk/wispgen/internal/storage/sqlite"
	"github.com/mmynk/wispgen/internal/web"
	"github.com/mmynk/wispgen/internal/wizard"
	"github.com/mmynk/wispgen/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}
	logging.Configure(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	variant, err := document.ParseVariant(cfg.Document.Variant)
	if err != nil {
		return err
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if n, err := store.PruneDrafts(ctx, time.Now().Add(-cfg.Session.DraftTTL)); err != nil {
		slog.Warn("Failed to prune drafts", "error", err)
	} else if n > 0 {
		slog.Info("Pruned abandoned drafts", "count", n)
	}

	m := metrics.New()

	sessions, err := session.NewManager(cfg.Session.Secret, cfg.Session.DraftTTL,
		session.WithSecureCookie(cfg.Session.SecureCookie))
	if err != nil {
		return err
	}

	opts := service.Options{Variant: variant, Observer: m}
	if cfg.Archive.Enabled {
		a, err := archive.New(archive.Config{
			Endpoint:  cfg.Archive.Endpoint,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Bucket:    cfg.Archive.Bucket,
			UseSSL:    cfg.Archive.UseSSL,
		})
		if err != nil {
			return err
		}
		if err := a.EnsureBucket(ctx); err != nil {
			return err
		}
		opts.Archiver = a
		slog.Info("Archiving rendered documents", "endpoint", cfg.Archive.Endpoint, "bucket", cfg.Archive.Bucket)
	}
	wisps := service.NewWisps(store, opts)

	controller := wizard.NewController(store, wizard.Options{
		StrictOrder: cfg.Wizard.StrictOrder,
		Observer:    m,
	})
	site, err := web.NewServer(controller, wisps, sessions)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	rpcPath, rpcHandler := service.NewWispService(wisps).Handler(
		connect.WithInterceptors(middleware.LoggingInterceptor()),
	)
	mux.Handle(rpcPath, rpcHandler)
	mux.Handle("GET /metrics", m.Handler())
	site.Register(mux)

	handler := middleware.Chain(mux,
		middleware.RequestID,
		middleware.Recovery,
		middleware.RequestLogger,
		m.Middleware,
	)

	// h2c serves HTTP/2 without TLS for Connect clients.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
