// Package middlewarectx содержит HTTP middleware приложения: проверку
// cookie-сессии администратора и ограничение частоты запросов.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// AdminEmail — ключ email администратора в контексте запроса.
const AdminEmail Key = "admin_email"

// SessionStore описывает чтение идентичности администратора из сессии.
type SessionStore interface {
	AdminEmail(r *http.Request) (string, bool)
}

// AdminOnly возвращает middleware, пропускающий только запросы с валидной
// сессией администратора. Остальные перенаправляются на страницу входа.
// Email администратора кладется в контекст запроса.
func AdminOnly(store SessionStore, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := store.AdminEmail(r)
			if !ok {
				log.Info("unauthenticated dashboard request", slog.String("path", r.URL.Path))
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			ctx := context.WithValue(r.Context(), AdminEmail, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
