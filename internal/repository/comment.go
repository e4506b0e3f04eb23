package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, q ListQuery) ([]*models.Comment, PageMeta, error)
	ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

var commentOrderable = map[string]bool{
	"id":        true,
	"timestamp": true,
}

// Create inserts the comment. A post-level comment changes the post's
// comment count, so the cached detail view of that post is dropped.
// Replies are excluded from the count and leave the cache alone.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Create(comment).Error
	if err == nil && comment.PostID != nil {
		cache.InvalidatePost(ctx, *comment.PostID)
	}
	return err
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.applyCommentDetails(r.db.WithContext(ctx)).
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns one page of the comments scoped by the post filter.
// Callers are responsible for the scoping rule that an unscoped listing is
// empty; this method applies whatever post__id filter it is given.
func (r *commentRepository) ListByPost(ctx context.Context, q ListQuery) ([]*models.Comment, PageMeta, error) {
	q = q.Normalized()

	base := r.db.WithContext(ctx).Model(&models.Comment{})
	if postID, ok := q.Filters["post__id"]; ok {
		base = base.Where("post_id = ?", postID)
	}

	meta, err := paginate(base, q)
	if err != nil {
		return nil, PageMeta{}, err
	}

	var comments []*models.Comment
	err = applyOrdering(r.applyCommentDetails(base.Session(&gorm.Session{})), q.Ordering, commentOrderable, "timestamp DESC").
		Limit(meta.Limit).
		Offset(meta.Offset()).
		Find(&comments).Error
	if err != nil {
		return nil, PageMeta{}, err
	}
	return comments, meta, nil
}

// ListReplies resolves one level of the reply tree: all comments whose
// parent reference equals parentID, newest first,
// without paging.
func (r *commentRepository) ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.applyCommentDetails(r.db.WithContext(ctx)).
		Where("parent_id = ?", parentID).
		Order("timestamp DESC").
		Find(&comments).Error
	return comments, err
}

// applyCommentDetails adds a correlated subquery computing the direct-reply
// count, batched into the main query rather than issued per row.
func (r *commentRepository) applyCommentDetails(tx *gorm.DB) *gorm.DB {
	return tx.Select("comments.*, (SELECT COUNT(*) FROM comments AS replies WHERE replies.parent_id = comments.id) AS total_replies")
}
