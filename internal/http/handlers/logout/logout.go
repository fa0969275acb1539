// Package logout реализует HTTP-обработчик выхода администратора.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/blog-newsletter/internal/lib/sl"
)

// SessionStore описывает удаление идентичности администратора из сессии.
type SessionStore interface {
	Clear(w http.ResponseWriter, r *http.Request) error
}

// Handler управляет HTTP-запросами выхода.
type Handler struct {
	log   *slog.Logger
	store SessionStore
}

// New создает новый Handler с переданными логгером и хранилищем сессий.
func New(log *slog.Logger, store SessionStore) *Handler {
	return &Handler{log: log, store: store}
}

// ServeHTTP очищает сессию и перенаправляет на главную страницу.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.store.Clear(w, r); err != nil {
		log.Error("failed to clear session", sl.Err(err))
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
