// Package verify реализует HTTP-обработчик подтверждения подписки по токену
// из письма. Операция идемпотентна: повторный переход по ссылке показывает
// страницу "уже подтверждено" без изменения состояния.
package verify

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

// Service описывает интерфейс бизнес-логики подтверждения подписки.
type Service interface {
	Verify(ctx context.Context, subscriptionToken string) (bool, error)
}

// Handler управляет HTTP-запросами подтверждения подписки.
type Handler struct {
	log      *slog.Logger
	service  Service
	registry *render.Registry
}

// New создает новый Handler с переданными логгером, сервисом и шаблонами.
func New(log *slog.Logger, service Service, registry *render.Registry) *Handler {
	return &Handler{log: log, service: service, registry: registry}
}

// ServeHTTP подтверждает подписку по токену из query-параметра.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.verify"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subscriptionToken := r.URL.Query().Get("token")
	alreadyVerified, err := h.service.Verify(r.Context(), subscriptionToken)
	if err != nil {
		if errors.Is(err, subscription.ErrTokenNotFound) {
			log.Info("verification token not found")
			h.registry.WriteNotFound(w)
			return
		}
		log.Error("failed to verify subscription", sl.Err(err))
		h.registry.WriteInternalError(w)
		return
	}

	log.Info("subscription verification handled", slog.Bool("already_verified", alreadyVerified))
	h.registry.WritePage(w, http.StatusOK, render.ConfirmSubscriptionPage(alreadyVerified))
}
