package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePost(t *testing.T, dir, slug, markdown, frontMatter string) {
	t.Helper()
	postDir := filepath.Join(dir, slug)
	require.NoError(t, os.MkdirAll(postDir, 0o755))
	if markdown != "" {
		require.NoError(t, os.WriteFile(filepath.Join(postDir, "article.md"), []byte(markdown), 0o644))
	}
	if frontMatter != "" {
		require.NoError(t, os.WriteFile(filepath.Join(postDir, "article_frontmatter.toml"), []byte(frontMatter), 0o644))
	}
}

const goodFrontMatter = `
title = "First post"
file_name = "first-post"
description = "A post"
posted = "2026-08-01"
tags = ["go"]
author = "Admin"
estimated_reading_time = 3
order = 1
`

func TestLoader_LoadFrontMatters(t *testing.T) {
	t.Run("collects every post", func(t *testing.T) {
		dir := t.TempDir()
		writePost(t, dir, "first-post", "# One", goodFrontMatter)
		writePost(t, dir, "second-post", "# Two", `
title = "Second post"
file_name = "second-post"
order = 2
`)
		// файлы в корне каталога игнорируются
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignore me"), 0o644))

		got, err := New(dir).LoadFrontMatters()
		require.NoError(t, err)
		require.Len(t, got, 2)

		titles := []string{got[0].Title, got[1].Title}
		assert.ElementsMatch(t, []string{"First post", "Second post"}, titles)
	})

	t.Run("missing article.md aborts the whole listing", func(t *testing.T) {
		dir := t.TempDir()
		writePost(t, dir, "good-post", "# Good", goodFrontMatter)
		writePost(t, dir, "broken-post", "", goodFrontMatter)

		got, err := New(dir).LoadFrontMatters()
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("malformed toml aborts the whole listing", func(t *testing.T) {
		dir := t.TempDir()
		writePost(t, dir, "good-post", "# Good", goodFrontMatter)
		writePost(t, dir, "broken-post", "# Broken", `title = [unclosed`)

		got, err := New(dir).LoadFrontMatters()
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("missing posts dir", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "nope")).LoadFrontMatters()
		assert.Error(t, err)
	})
}

func TestLoader_LoadArticle(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "first-post", "# Hello", goodFrontMatter)
	loader := New(dir)

	t.Run("success", func(t *testing.T) {
		markdown, meta, err := loader.LoadArticle("first-post")
		require.NoError(t, err)
		assert.Equal(t, "# Hello", markdown)
		assert.Equal(t, "First post", meta.Title)
		assert.Equal(t, uint(3), meta.EstimatedReadingTime)
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, _, err := loader.LoadArticle("no-such-post")
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("traversal slugs are rejected", func(t *testing.T) {
		for _, slug := range []string{"", ".", "..", "../etc", "a/b", `a\b`} {
			_, _, err := loader.LoadArticle(slug)
			assert.ErrorIs(t, err, ErrPostNotFound, "slug %q", slug)
		}
	})

	t.Run("malformed toml is not a not-found error", func(t *testing.T) {
		writePost(t, dir, "bad-toml", "# Bad", `title = [unclosed`)
		_, _, err := loader.LoadArticle("bad-toml")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrPostNotFound)
	})
}
