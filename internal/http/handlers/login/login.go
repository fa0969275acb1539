// Package login реализует HTTP-обработчики страницы входа администратора:
// показ формы и проверку учетных данных с установкой cookie-сессии.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/blog-newsletter/internal/lib/sl"
	"github.com/magabrotheeeer/blog-newsletter/internal/models"
	"github.com/magabrotheeeer/blog-newsletter/internal/render"
	"github.com/magabrotheeeer/blog-newsletter/internal/services/auth"
)

// Service описывает интерфейс проверки учетных данных.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// SessionStore описывает запись идентичности администратора в сессию.
type SessionStore interface {
	SetAdmin(w http.ResponseWriter, r *http.Request, email string) error
}

// Handler управляет HTTP-запросами страницы входа.
type Handler struct {
	log      *slog.Logger
	service  Service
	store    SessionStore
	registry *render.Registry
}

// New создает новый Handler с переданными зависимостями.
func New(log *slog.Logger, service Service, store SessionStore, registry *render.Registry) *Handler {
	return &Handler{log: log, service: service, store: store, registry: registry}
}

// ShowForm отдает страницу входа.
func (h *Handler) ShowForm(w http.ResponseWriter, _ *http.Request) {
	h.registry.WritePage(w, http.StatusOK, render.LoginPage(""))
}

// Submit проверяет учетные данные формы входа. Успех — установка сессии
// и редирект на панель управления, неверные данные — та же форма с
// сообщением об ошибке.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.registry.WritePage(w, http.StatusOK, render.LoginPage("Invalid email or password"))
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Info("invalid credentials submitted")
			h.registry.WritePage(w, http.StatusOK, render.LoginPage("Invalid email or password"))
			return
		}
		log.Error("failed to check credentials", sl.Err(err))
		h.registry.WriteInternalError(w)
		return
	}

	if err = h.store.SetAdmin(w, r, user.Email); err != nil {
		log.Error("failed to set session", sl.Err(err))
		h.registry.WriteInternalError(w)
		return
	}

	log.Info("admin logged in")
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}
