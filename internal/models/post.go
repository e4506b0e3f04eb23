// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog article owned by one user. The slug is derived
// from the title on every save and is intentionally not unique: two posts
// with the same title produce colliding slugs.
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"index" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Image       string `json:"-"`
	Publish     bool   `gorm:"default:false" json:"publish"`
	// TotalComments is not persisted; computed at query time as the count
	// of comments attached directly to the post (replies excluded).
	TotalComments int       `gorm:"->;-:migration" json:"total_comments"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeSave recomputes the slug from the title. Runs on create and on
// every update, so renaming a post moves its slug.
func (p *Post) BeforeSave(_ *gorm.DB) error {
	p.Slug = Slugify(p.Title)
	return nil
}

// PostResponse is the serialized post shape returned by list and detail
// endpoints.
type PostResponse struct {
	ID            uint        `json:"id"`
	User          UserSummary `json:"user"`
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Description   string      `json:"description"`
	Image         string      `json:"image"`
	Publish       bool        `json:"publish"`
	TotalComments int         `json:"total_comments"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Response builds the API projection of the post. baseURL is prepended to
// the stored image path; posts without an image serialize an empty string.
func (p *Post) Response(baseURL string) PostResponse {
	image := ""
	if p.Image != "" {
		image = baseURL + "/media/" + p.Image
	}
	return PostResponse{
		ID:            p.ID,
		User:          p.User.Summary(),
		Title:         p.Title,
		Slug:          p.Slug,
		Description:   p.Description,
		Image:         image,
		Publish:       p.Publish,
		TotalComments: p.TotalComments,
		CreatedAt:     p.CreatedAt,
	}
}

// PostResponses maps a page of posts to their API projections.
func PostResponses(posts []*Post, baseURL string) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Response(baseURL))
	}
	return out
}
