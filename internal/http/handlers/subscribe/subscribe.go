// Package subscribe реализует HTTP-обработчик формы подписки на рассылку.
//
// Перед обработкой формы проверяются заголовки Origin и Referer против
// единственного разрешенного origin. Все отказы — и проверок заголовков,
// и валидации email — возвращаются как inline-фрагмент со статусом 200,
// без отдельного 4xx: фрагмент встраивается в страницу формы.
package subscribe

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/blog-newsletter/internal/lib/sl"
	"github.com/magabrotheeeer/blog-newsletter/internal/render"
	"github.com/magabrotheeeer/blog-newsletter/internal/services/subscription"
)

const genericErrMsg = "Something went wrong, sorry. Please try again"

// Service описывает интерфейс бизнес-логики подписки.
type Service interface {
	Subscribe(ctx context.Context, email, referer string) (string, error)
}

// Handler управляет HTTP-запросами на подписку.
type Handler struct {
	log           *slog.Logger
	service       Service
	registry      *render.Registry
	allowedOrigin string
}

// New создает новый Handler с переданными логгером, сервисом и шаблонами.
func New(log *slog.Logger, service Service, registry *render.Registry, allowedOrigin string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		registry:      registry,
		allowedOrigin: allowedOrigin,
	}
}

// ServeHTTP обрабатывает отправку формы подписки.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscribe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if origin := r.Header.Get("Origin"); origin != h.allowedOrigin {
		log.Warn("origin check failed", slog.String("origin", origin))
		h.writeFragment(w, render.SubscribeErrorPage(genericErrMsg))
		return
	}
	if referer := r.Header.Get("Referer"); !strings.Contains(referer, h.allowedOrigin) {
		log.Warn("referer check failed", slog.String("referer", referer))
		h.writeFragment(w, render.SubscribeErrorPage(genericErrMsg))
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.writeFragment(w, render.SubscribeErrorPage(genericErrMsg))
		return
	}
	email := r.PostFormValue("email")
	referer := r.PostFormValue("referer")

	if _, err := h.service.Subscribe(r.Context(), email, referer); err != nil {
		switch {
		case errors.Is(err, subscription.ErrInvalidEmail):
			log.Info("invalid email submitted")
			h.writeFragment(w, render.SubscribeErrorPage("Please provide a valid email address"))
		case errors.Is(err, subscription.ErrAlreadySubscribed):
			log.Info("email already registered")
			h.writeFragment(w, render.SubscribeErrorPage("Email already registered"))
		default:
			log.Error("failed to subscribe", sl.Err(err))
			h.writeFragment(w, render.SubscribeErrorPage(genericErrMsg))
		}
		return
	}

	log.Info("subscription accepted")
	h.writeFragment(w, render.SubscribeResponsePage())
}

func (h *Handler) writeFragment(w http.ResponseWriter, page render.Page) {
	h.registry.WritePage(w, http.StatusOK, page)
}
