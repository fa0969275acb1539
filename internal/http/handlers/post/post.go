// Package post реализует HTTP-обработчик страницы отдельной статьи.
//
// Markdown-текст и метаданные читаются с диска, текст конвертируется в HTML
// и подставляется в шаблон статьи. Отсутствие любого из файлов статьи —
// страница 404, испорченные метаданные — страница 500.
package post

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/blog-newsletter/internal/content"
	"github.com/magabrotheeeer/blog-newsletter/internal/lib/sl"
	"github.com/magabrotheeeer/blog-newsletter/internal/models"
	"github.com/magabrotheeeer/blog-newsletter/internal/render"
)

// Loader описывает загрузку одной статьи по её slug.
type Loader interface {
	LoadArticle(slug string) (string, models.FrontMatter, error)
}

// Handler управляет HTTP-запросами страницы статьи.
type Handler struct {
	log      *slog.Logger
	loader   Loader
	registry *render.Registry
}

// New создает новый Handler с переданными логгером, загрузчиком и шаблонами.
func New(log *slog.Logger, loader Loader, registry *render.Registry) *Handler {
	return &Handler{log: log, loader: loader, registry: registry}
}

// ServeHTTP отдает страницу статьи по slug из пути запроса.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "name")
	markdown, frontMatter, err := h.loader.LoadArticle(slug)
	if err != nil {
		if errors.Is(err, content.ErrPostNotFound) {
			log.Info("post not found", slog.String("slug", slug))
			h.registry.WriteNotFound(w)
			return
		}
		log.Error("failed to load article", slog.String("slug", slug), sl.Err(err))
		h.registry.WriteInternalError(w)
		return
	}

	html, err := render.Markdown(markdown)
	if err != nil {
		log.Error("failed to render markdown", slog.String("slug", slug), sl.Err(err))
		h.registry.WriteInternalError(w)
		return
	}

	h.registry.WritePage(w, http.StatusOK, render.PostPage(html, frontMatter))
}
