// Package content реализует загрузку статей и их метаданных с диска.
//
// Каждая статья живет в каталоге ./posts/<slug>/ и состоит из двух файлов:
// article.md с текстом и article_frontmatter.toml с метаданными. Загрузчик
// не хранит состояния и читает файловую систему при каждом обращении.
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/magabrotheeeer/blog-newsletter/internal/models"
)

const (
	articleFileName     = "article.md"
	frontMatterFileName = "article_frontmatter.toml"
)

// ErrPostNotFound возвращается, когда каталог статьи или один из её файлов отсутствует.
var ErrPostNotFound = errors.New("post not found")

// Loader читает статьи из корневого каталога постов.
type Loader struct {
	dir string
}

// New создает Loader для каталога dir.
func New(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadFrontMatters перечисляет непосредственные подкаталоги корня и собирает
// метаданные всех статей. Одна испорченная запись прерывает весь листинг:
// частичный успех не поддерживается. Порядок результата не определён,
// сортировка — забота вызывающего.
func (l *Loader) LoadFrontMatters() ([]models.FrontMatter, error) {
	const op = "content.LoadFrontMatters"

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var frontMatters []models.FrontMatter
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		fmPath := filepath.Join(l.dir, entry.Name(), frontMatterFileName)
		articlePath := filepath.Join(l.dir, entry.Name(), articleFileName)
		if _, err := os.Stat(articlePath); err != nil {
			return nil, fmt.Errorf("%s: post %q has no %s: %w", op, entry.Name(), articleFileName, err)
		}

		var frontMatter models.FrontMatter
		if _, err := toml.DecodeFile(fmPath, &frontMatter); err != nil {
			return nil, fmt.Errorf("%s: post %q: %w", op, entry.Name(), err)
		}
		frontMatters = append(frontMatters, frontMatter)
	}

	return frontMatters, nil
}

// LoadArticle читает markdown-текст и метаданные одной статьи по её slug.
// Отсутствие каталога или любого из двух файлов — ErrPostNotFound,
// испорченный TOML — внутренняя ошибка.
func (l *Loader) LoadArticle(slug string) (string, models.FrontMatter, error) {
	const op = "content.LoadArticle"

	var frontMatter models.FrontMatter
	if !validSlug(slug) {
		return "", frontMatter, fmt.Errorf("%s: %q: %w", op, slug, ErrPostNotFound)
	}

	markdown, err := os.ReadFile(filepath.Join(l.dir, slug, articleFileName))
	if err != nil {
		return "", frontMatter, fmt.Errorf("%s: %q: %w", op, slug, ErrPostNotFound)
	}

	fmRaw, err := os.ReadFile(filepath.Join(l.dir, slug, frontMatterFileName))
	if err != nil {
		return "", frontMatter, fmt.Errorf("%s: %q: %w", op, slug, ErrPostNotFound)
	}
	if err := toml.Unmarshal(fmRaw, &frontMatter); err != nil {
		return "", frontMatter, fmt.Errorf("%s: %q: %w", op, slug, err)
	}

	return string(markdown), frontMatter, nil
}

// validSlug отклоняет slug, способный выйти за пределы каталога постов.
func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	if strings.ContainsAny(slug, "/\\") {
		return false
	}
	return true
}
