package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "heading and paragraph",
			input:    "# Title\n\nSome text.",
			contains: []string{"<h1>Title</h1>", "<p>Some text.</p>"},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "gfm strikethrough",
			input:    "~~gone~~",
			contains: []string{"<del>gone</del>"},
		},
		{
			name:     "fenced code block",
			input:    "```sql\nSELECT 1;\n```",
			contains: []string{"<pre><code", "SELECT 1;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Markdown(tt.input)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestMarkdown_RawHTMLNotPassedThrough(t *testing.T) {
	got, err := Markdown(`before <script>alert("xss")</script> after`)
	require.NoError(t, err)
	assert.NotContains(t, got, "<script>")
}
