// Package blognewsletter собирает приложение: хранилище, миграции,
// шаблоны, сервисы и HTTP-сервер с маршрутами.
package blognewsletter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/blog-newsletter/internal/config"
	"github.com/magabrotheeeer/blog-newsletter/internal/content"
	"github.com/magabrotheeeer/blog-newsletter/internal/email"
	"github.com/magabrotheeeer/blog-newsletter/internal/metrics"
	"github.com/magabrotheeeer/blog-newsletter/internal/migrations"
	"github.com/magabrotheeeer/blog-newsletter/internal/render"
	authservice "github.com/magabrotheeeer/blog-newsletter/internal/services/auth"
	subservice "github.com/magabrotheeeer/blog-newsletter/internal/services/subscription"
	"github.com/magabrotheeeer/blog-newsletter/internal/sessions"
	"github.com/magabrotheeeer/blog-newsletter/internal/storage"
)

// App инкапсулирует HTTP-сервер и соединение с базой данных.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

// New инициализирует все зависимости приложения и собирает маршруты.
// Администратор создается здесь же, если его еще нет.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString())
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	registry, err := render.NewRegistry(cfg.TemplateDir)
	if err != nil {
		return nil, err
	}

	appMetrics := metrics.New(prometheus.DefaultRegisterer)
	loader := content.New(cfg.PostsDir)
	emailClient := email.New(cfg.EmailAPIBaseURL, cfg.EmailSender, cfg.EmailAuthToken, cfg.EmailTimeout)
	sessionStore := sessions.New(cfg.SessionSecret, cfg.SessionSecure)

	subscriptionService := subservice.New(db, emailClient, registry, appMetrics, logger, cfg.BaseURL)
	authService := authservice.New(db, logger)

	if err = authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, cfg, logger, registry, loader, sessionStore, subscriptionService, authService)

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
