package blognewsletter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/blog-newsletter/internal/config"
	"github.com/magabrotheeeer/blog-newsletter/internal/content"
	"github.com/magabrotheeeer/blog-newsletter/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/blog-newsletter/internal/http/handlers/home"
	"github.com/magabrotheeeer/blog-newsletter/internal/http/handlers/login"
	"github.com/magabrotheeeer/blog-newsletter/internal/http/handlers/logout"
	"github.com/magabrotheeeer/blog-newsletter/internal/http/handlers/post"
	"github.com/magabrotheeeer/blog-newsletter/internal/http/handlers/subscribe"
	"github.com/magabrotheeeer/blog-newsletter/internal/http/handlers/subscriberlist"
	"github.com/magabrotheeeer/blog-newsletter/internal/http/handlers/unsubscribe"
	"github.com/magabrotheeeer/blog-newsletter/internal/http/handlers/verify"
	"github.com/magabrotheeeer/blog-newsletter/internal/http/handlers/wellknown"
	"github.com/magabrotheeeer/blog-newsletter/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-newsletter/internal/render"
	authservice "github.com/magabrotheeeer/blog-newsletter/internal/services/auth"
	subservice "github.com/magabrotheeeer/blog-newsletter/internal/services/subscription"
	"github.com/magabrotheeeer/blog-newsletter/internal/sessions"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, cfg *config.Config, logger *slog.Logger, registry *render.Registry,
	loader *content.Loader, sessionStore *sessions.Store,
	subscriptionService *subservice.Service, authService *authservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	loginHandler := login.New(logger, authService, sessionStore, registry)
	wellknownHandler := wellknown.New(logger, loader, cfg.BaseURL)

	// Публичные страницы блога
	r.Get("/", home.New(logger, loader, registry).ServeHTTP)
	r.Get("/posts/{name}", post.New(logger, loader, registry).ServeHTTP)
	r.Get("/robots.txt", wellknownHandler.Robots)
	r.Get("/sitemap.xml", wellknownHandler.Sitemap)

	// Подписка на рассылку
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimit(logger, rate.NewLimiter(1, 3)))
		r.Post("/subscribe", subscribe.New(logger, subscriptionService, registry, cfg.AllowedOrigin).ServeHTTP)
	})
	r.Get("/subscribe/verify", verify.New(logger, subscriptionService, registry).ServeHTTP)
	r.Get("/subscribe/delete", unsubscribe.New(logger, subscriptionService, registry).ServeHTTP)

	// Вход и выход администратора
	r.Get("/login", loginHandler.ShowForm)
	r.Post("/login", loginHandler.Submit)
	r.Post("/logout", logout.New(logger, sessionStore).ServeHTTP)

	// Группа с проверкой cookie-сессии администратора
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.AdminOnly(sessionStore, logger))
		r.Get("/dashboard", dashboard.New(logger, subscriptionService, registry).ServeHTTP)
		r.Get("/api/v1/subscribers", subscriberlist.New(logger, subscriptionService).ServeHTTP)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	r.Handle("/metrics", promhttp.Handler())
}
