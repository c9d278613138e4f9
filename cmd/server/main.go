package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/givers/contactform/internal/config"
	"github.com/givers/contactform/internal/handler"
	"github.com/givers/contactform/internal/logging"
	"github.com/givers/contactform/internal/repository"
	"github.com/givers/contactform/internal/service"
	"github.com/givers/contactform/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	store, err := repository.Open(context.Background(), repository.Options{
		Backend:     cfg.StoreBackend,
		CSVPath:     cfg.StorePath,
		SQLitePath:  cfg.SQLitePath,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		logging.Fatal("failed to open submission store", "backend", cfg.StoreBackend, "error", err)
	}
	defer store.Close()

	submissionService := service.NewSubmissionService(store, cfg.SubmitDelay)

	h := handler.New(store, cfg.FrontendURL)
	contactHandler := handler.NewContactHandler(submissionService, cfg.MessageMaxLength)
	legalHandler := handler.NewLegalHandler(handler.LegalConfig{DocsDir: cfg.LegalDocsDir})

	stop := make(chan struct{})
	defer close(stop)
	limiter := handler.NewRateLimiter(cfg.RateLimitPerMinute, stop)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /{$}", contactHandler.Page)
	mux.Handle("POST /{$}", limiter.PageMiddleware(http.HandlerFunc(contactHandler.SubmitForm)))
	mux.Handle("POST /api/contact", limiter.Middleware(http.HandlerFunc(contactHandler.SubmitJSON)))
	mux.HandleFunc("GET /api/submissions", contactHandler.List)
	mux.HandleFunc("GET /legal/{doc}", legalHandler.Legal)

	// Admin export is only exposed when a secret is configured
	if cfg.AdminSecret != "" {
		requireAdmin := auth.RequireToken(auth.SecretBytes(cfg.AdminSecret))
		mux.Handle("GET /api/admin/submissions.csv", requireAdmin(http.HandlerFunc(contactHandler.ExportCSV)))
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + cfg.SubmitDelay,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "store", cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
