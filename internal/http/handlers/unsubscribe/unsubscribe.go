// Package unsubscribe реализует HTTP-обработчик отписки по токену из письма.
//
// Отсутствующий токен трактуется как "уже удален" и показывает ту же
// нейтральную страницу отписки, а не ошибку: повторный переход по ссылке
// не должен пугать пользователя.
package unsubscribe

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/blog-newsletter/internal/lib/sl"
	"github.com/magabrotheeeer/blog-newsletter/internal/render"
	"github.com/magabrotheeeer/blog-newsletter/internal/services/subscription"
)

// Service описывает интерфейс бизнес-логики отписки.
type Service interface {
	Unsubscribe(ctx context.Context, subscriptionToken string) error
}

// Handler управляет HTTP-запросами отписки.
type Handler struct {
	log      *slog.Logger
	service  Service
	registry *render.Registry
}

// New создает новый Handler с переданными логгером, сервисом и шаблонами.
func New(log *slog.Logger, service Service, registry *render.Registry) *Handler {
	return &Handler{log: log, service: service, registry: registry}
}

// ServeHTTP удаляет подписчика по токену из query-параметра.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.unsubscribe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subscriptionToken := r.URL.Query().Get("token")
	if err := h.service.Unsubscribe(r.Context(), subscriptionToken); err != nil {
		if errors.Is(err, subscription.ErrTokenNotFound) {
			log.Info("unsubscribe token not found, treating as already deleted")
			h.registry.WritePage(w, http.StatusOK, render.DeleteSubscriptionPage())
			return
		}
		log.Error("failed to delete subscriber", sl.Err(err))
		h.registry.WriteInternalError(w)
		return
	}

	log.Info("subscriber removed")
	h.registry.WritePage(w, http.StatusOK, render.DeleteSubscriptionPage())
}
