// Package home реализует HTTP-обработчик главной страницы со списком статей.
//
// Метаданные статей читаются с диска при каждом запросе и сортируются
// по убыванию поля order.
package home

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/blog-newsletter/internal/lib/sl"
	"github.com/magabrotheeeer/blog-newsletter/internal/models"
	"github.com/magabrotheeeer/blog-newsletter/internal/render"
)

// Loader описывает загрузку метаданных всех статей.
type Loader interface {
	LoadFrontMatters() ([]models.FrontMatter, error)
}

// Handler управляет HTTP-запросами главной страницы.
type Handler struct {
	log      *slog.Logger
	loader   Loader
	registry *render.Registry
}

// New создает новый Handler с переданными логгером, загрузчиком и шаблонами.
func New(log *slog.Logger, loader Loader, registry *render.Registry) *Handler {
	return &Handler{log: log, loader: loader, registry: registry}
}

// ServeHTTP отдает главную страницу со списком статей.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.home"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	frontMatters, err := h.loader.LoadFrontMatters()
	if err != nil {
		log.Error("failed to load front matters", sl.Err(err))
		h.registry.WriteInternalError(w)
		return
	}

	sort.Slice(frontMatters, func(i, j int) bool {
		return frontMatters[i].Order > frontMatters[j].Order
	})

	h.registry.WritePage(w, http.StatusOK, render.HomeIndexPage(frontMatters))
}
