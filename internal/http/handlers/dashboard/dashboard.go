// Package dashboard реализует HTTP-обработчик панели управления:
// общее число подписчиков и последние записи. Доступ закрыт middleware
// проверки сессии администратора.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/blog-newsletter/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-newsletter/internal/lib/sl"
	"github.com/magabrotheeeer/blog-newsletter/internal/models"
	"github.com/magabrotheeeer/blog-newsletter/internal/render"
)

// Количество последних подписчиков на странице панели.
const recentSubscribersLimit = 50

// Service описывает интерфейс чтения подписчиков для панели.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.Subscriber, error)
	Count(ctx context.Context) (int, error)
}

// Handler управляет HTTP-запросами панели управления.
type Handler struct {
	log      *slog.Logger
	service  Service
	registry *render.Registry
}

// New создает новый Handler с переданными логгером, сервисом и шаблонами.
func New(log *slog.Logger, service Service, registry *render.Registry) *Handler {
	return &Handler{log: log, service: service, registry: registry}
}

// ServeHTTP отдает страницу панели управления.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	adminEmail, _ := r.Context().Value(middlewarectx.AdminEmail).(string)

	total, err := h.service.Count(r.Context())
	if err != nil {
		log.Error("failed to count subscribers", sl.Err(err))
		h.registry.WriteInternalError(w)
		return
	}
	subscribers, err := h.service.List(r.Context(), recentSubscribersLimit, 0)
	if err != nil {
		log.Error("failed to list subscribers", sl.Err(err))
		h.registry.WriteInternalError(w)
		return
	}

	h.registry.WritePage(w, http.StatusOK, render.DashboardPage(adminEmail, total, subscribers))
}
