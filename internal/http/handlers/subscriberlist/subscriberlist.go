// Package subscriberlist реализует JSON-обработчик списка подписчиков для
// административного API. Доступ закрыт middleware проверки сессии.
package subscriberlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-newsletter/internal/http/response"
	"github.com/magabrotheeeer/blog-newsletter/internal/lib/sl"
	"github.com/magabrotheeeer/blog-newsletter/internal/models"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Service описывает интерфейс чтения подписчиков.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.Subscriber, error)
	Count(ctx context.Context) (int, error)
}

// Handler управляет запросами списка подписчиков.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP возвращает подписчиков с пагинацией в JSON-формате.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriberlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := queryInt(r, "limit", defaultLimit)
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	total, err := h.service.Count(r.Context())
	if err != nil {
		log.Error("failed to count subscribers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscribers"))
		return
	}
	subscribers, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list subscribers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscribers"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"total":       total,
		"subscribers": subscribers,
	}))
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
