// Package render преобразует markdown в HTML и подставляет данные страниц
// в предкомпилированный набор HTML-шаблонов.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdownEngine собирается один раз на процесс. WithUnsafe не включен:
// сырой HTML внутри markdown не попадает в вывод.
var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
)

// Markdown преобразует markdown-текст статьи в HTML.
func Markdown(text string) (string, error) {
	const op = "render.Markdown"

	var out bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &out); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return out.String(), nil
}
