package middlewarectx

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit возвращает middleware, ограничивающее частоту запросов через
// переданный лимитер. Превышение — HTTP 429 без тела.
func RateLimit(log *slog.Logger, limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Warn("too many requests", slog.String("path", r.URL.Path))
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
