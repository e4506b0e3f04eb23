package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"already lowercase", "golang", "golang"},
		{"punctuation stripped", "What's new in Go 1.24?", "whats-new-in-go-124"},
		{"collapses whitespace runs", "a  b   c", "a-b-c"},
		{"trims leading and trailing hyphens", "--Title--", "title"},
		{"digits preserved", "Top 10 Posts", "top-10-posts"},
		{"empty input", "", ""},
		{"only special characters", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestPostBeforeSaveRecomputesSlug(t *testing.T) {
	p := &Post{Title: "First Title"}
	assert.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, "first-title", p.Slug)

	// Retitling moves the slug; the old value is not kept.
	p.Title = "Second Title"
	assert.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, "second-title", p.Slug)
}

func TestPostResponseImageURL(t *testing.T) {
	p := &Post{ID: 1, Title: "T", Image: "blog/cover.png"}
	resp := p.Response("http://localhost:8080")
	assert.Equal(t, "http://localhost:8080/media/blog/cover.png", resp.Image)

	p.Image = ""
	assert.Equal(t, "", p.Response("http://localhost:8080").Image)
}
