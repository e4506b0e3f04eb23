package repository

import (
	"context"
	"strconv"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, q ListQuery) ([]*models.Post, PageMeta, error)
	ExistsByTitleAndUser(ctx context.Context, title string, userID uint) (bool, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

var postOrderable = map[string]bool{
	"id":         true,
	"title":      true,
	"publish":    true,
	"created_at": true,
	"updated_at": true,
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// postCacheEntry is the redis round-trip shape for a post detail. The GORM
// model cannot be stored as-is: its API tags hide Image and the owner, so
// a cached copy would unmarshal with both zeroed.
type postCacheEntry struct {
	ID            uint               `json:"id"`
	UserID        uint               `json:"user_id"`
	User          models.UserSummary `json:"user"`
	Title         string             `json:"title"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description"`
	Image         string             `json:"image"`
	Publish       bool               `json:"publish"`
	TotalComments int                `json:"total_comments"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func newPostCacheEntry(p *models.Post) postCacheEntry {
	return postCacheEntry{
		ID:            p.ID,
		UserID:        p.UserID,
		User:          p.User.Summary(),
		Title:         p.Title,
		Slug:          p.Slug,
		Description:   p.Description,
		Image:         p.Image,
		Publish:       p.Publish,
		TotalComments: p.TotalComments,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (e postCacheEntry) post() *models.Post {
	return &models.Post{
		ID:     e.ID,
		UserID: e.UserID,
		User: models.User{
			ID:        e.User.ID,
			FirstName: e.User.FirstName,
			LastName:  e.User.LastName,
			Email:     e.User.Email,
			Address:   e.User.Address,
		},
		Title:         e.Title,
		Slug:          e.Slug,
		Description:   e.Description,
		Image:         e.Image,
		Publish:       e.Publish,
		TotalComments: e.TotalComments,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// GetByID loads a post with its owner and derived comment count. Reads go
// through the cache-aside helper; writes to the post or its comments drop
// the key.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var entry postCacheEntry
	err := cache.Aside(ctx, cache.PostKey(id), &entry, cache.PostTTL, func() error {
		var post models.Post
		if err := r.applyPostDetails(r.db.WithContext(ctx)).
			Preload("User").
			First(&post, id).Error; err != nil {
			return err
		}
		entry = newPostCacheEntry(&post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry.post(), nil
}

// List narrows the posts table by the request parameters and returns a
// single page. Search takes precedence over field filters; ordering is
// applied on top of whatever filtering occurred.
func (r *postRepository) List(ctx context.Context, q ListQuery) ([]*models.Post, PageMeta, error) {
	q = q.Normalized()

	base := r.applyListFilters(r.db.WithContext(ctx).Model(&models.Post{}), q)

	meta, err := paginate(base, q)
	if err != nil {
		return nil, PageMeta{}, err
	}

	var posts []*models.Post
	err = applyOrdering(r.applyPostDetails(base.Session(&gorm.Session{})), q.Ordering, postOrderable, "created_at DESC").
		Preload("User").
		Limit(meta.Limit).
		Offset(meta.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, PageMeta{}, err
	}
	return posts, meta, nil
}

func (r *postRepository) ExistsByTitleAndUser(ctx context.Context, title string, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("title = ? AND user_id = ?", title, userID).
		Count(&count).Error
	return count > 0, err
}

// Update writes the mutable post columns. Slug is included because the
// BeforeSave hook recomputes it from the title.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).
		Model(post).
		Select("title", "slug", "description", "image", "publish").
		Updates(post).Error
	if err == nil {
		cache.InvalidatePost(ctx, post.ID)
	}
	return err
}

// Delete removes the post row; attached comments cascade away with it.
// The post cache namespace is dropped best-effort afterwards.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
	if err == nil {
		cache.InvalidatePostNamespace(ctx)
	}
	return err
}

// applyListFilters narrows the base query. A free-text search is mutually
// exclusive with field filters and wins when both are supplied.
func (r *postRepository) applyListFilters(tx *gorm.DB, q ListQuery) *gorm.DB {
	if q.Search != "" {
		return tx.Where("title ILIKE ?", "%"+q.Search+"%")
	}
	if value, ok := q.Filters["user__id"]; ok {
		tx = tx.Where("user_id = ?", value)
	}
	if value, ok := q.Filters["publish"]; ok {
		if b, err := strconv.ParseBool(value); err == nil {
			tx = tx.Where("publish = ?", b)
		}
	}
	return tx
}

// applyPostDetails adds a subquery to fetch the direct comment count in the
// same query, so listings never degenerate into per-row count lookups.
func (r *postRepository) applyPostDetails(tx *gorm.DB) *gorm.DB {
	return tx.Select("posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS total_comments")
}
