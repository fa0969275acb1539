// Package wellknown реализует HTTP-обработчики служебных файлов сайта:
// robots.txt и sitemap.xml. Карта сайта собирается из листинга статей
// при каждом запросе.
package wellknown

import (
	"encoding/xml"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/blog-newsletter/internal/lib/sl"
	"github.com/magabrotheeeer/blog-newsletter/internal/models"
)

// Loader описывает загрузку метаданных всех статей.
type Loader interface {
	LoadFrontMatters() ([]models.FrontMatter, error)
}

// Handler управляет запросами служебных файлов.
type Handler struct {
	log     *slog.Logger
	loader  Loader
	baseURL string
}

// New создает новый Handler с переданными логгером, загрузчиком и базовым URL.
func New(log *slog.Logger, loader Loader, baseURL string) *Handler {
	return &Handler{log: log, loader: loader, baseURL: baseURL}
}

// Robots отдает robots.txt с указанием на карту сайта.
func (h *Handler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("User-agent: *\nDisallow: /dashboard\nDisallow: /login\n\nSitemap: " +
		h.baseURL + "/sitemap.xml\n"))
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap отдает sitemap.xml, собранный из главной страницы и всех статей.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wellknown.sitemap"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	frontMatters, err := h.loader.LoadFrontMatters()
	if err != nil {
		log.Error("failed to load front matters", sl.Err(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []urlEntry{{Loc: h.baseURL + "/"}},
	}
	for _, frontMatter := range frontMatters {
		set.URLs = append(set.URLs, urlEntry{
			Loc:     h.baseURL + "/posts/" + frontMatter.FileName,
			LastMod: frontMatter.Posted,
		})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	if err = xml.NewEncoder(w).Encode(set); err != nil {
		log.Error("failed to encode sitemap", sl.Err(err))
	}
}
