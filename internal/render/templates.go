package render

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
)

// Registry — неизменяемый набор шаблонов, разобранный один раз при старте
// процесса и передаваемый обработчикам явно. После создания не мутирует,
// поэтому безопасен для конкурентного чтения без блокировок.
type Registry struct {
	tmpl *template.Template
}

// NewRegistry разбирает все *.html из каталога dir. Отсутствующий каталог
// или синтаксическая ошибка в любом шаблоне — ошибка старта приложения.
func NewRegistry(dir string) (*Registry, error) {
	const op = "render.NewRegistry"

	tmpl, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Registry{tmpl: tmpl}, nil
}

// Render подставляет данные страницы в её шаблон и возвращает итоговый HTML.
// Неизвестный вид страницы или несоответствие данных шаблону — ошибка,
// которую вызывающий переводит в общую страницу 500.
func (r *Registry) Render(page Page) (string, error) {
	const op = "render.Render"

	name := page.Kind.templateName()
	if name == "" {
		return "", fmt.Errorf("%s: unknown page kind %d", op, page.Kind)
	}

	var sb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&sb, name, page.Data); err != nil {
		return "", fmt.Errorf("%s: template %s: %w", op, name, err)
	}
	return sb.String(), nil
}

// WritePage рендерит страницу и пишет её с данным статусом. При ошибке
// рендеринга пишет общую страницу 500.
func (r *Registry) WritePage(w http.ResponseWriter, status int, page Page) {
	body, err := r.Render(page)
	if err != nil {
		r.WriteInternalError(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// WriteNotFound пишет общую страницу 404.
func (r *Registry) WriteNotFound(w http.ResponseWriter) {
	body, err := r.Render(Page{Kind: KindNotFound})
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(body))
}

// WriteInternalError пишет общую страницу 500. Причина ошибки наружу не
// выводится, только в лог на месте возникновения.
func (r *Registry) WriteInternalError(w http.ResponseWriter) {
	body, err := r.Render(Page{Kind: KindInternalError})
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(body))
}
