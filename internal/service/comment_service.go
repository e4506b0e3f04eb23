package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID   uint
	PostID   *uint
	ParentID *uint
	Body     string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// ListComments returns one page of comments for the post named by the
// post__id filter. A listing with no post scope is an empty first page,
// answered without touching the store.
func (s *CommentService) ListComments(ctx context.Context, q repository.ListQuery) ([]*models.Comment, repository.PageMeta, error) {
	q = q.Normalized()
	if _, ok := q.Filters["post__id"]; !ok {
		if q.Page > 1 {
			return nil, repository.PageMeta{}, repository.ErrPageOutOfRange
		}
		return []*models.Comment{}, repository.PageMeta{
			Total:      0,
			TotalPages: 1,
			Page:       q.Page,
			Limit:      q.Limit,
		}, nil
	}
	return s.commentRepo.ListByPost(ctx, q)
}

// CreateComment stores a post-level comment or a reply. Exactly one of
// PostID and ParentID must be set, and the referenced row must exist;
// there is no database constraint backing either rule.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validation.ValidateRequired("body", in.Body); err != nil {
		return nil, models.NewFieldErrors(map[string]string{"body": err.Error()})
	}

	switch {
	case in.PostID != nil && in.ParentID != nil:
		return nil, models.NewValidationError("A comment targets either a post or a parent comment, not both")
	case in.PostID == nil && in.ParentID == nil:
		return nil, models.NewValidationError("Either post_id or parent_comment_id is required")
	}

	if in.PostID != nil {
		if _, err := s.postRepo.GetByID(ctx, *in.PostID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewValidationError("The post you are commenting on does not exist")
			}
			return nil, models.NewInternalError(err)
		}
	} else {
		if _, err := s.commentRepo.GetByID(ctx, *in.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewValidationError("The comment you are replying to does not exist")
			}
			return nil, models.NewInternalError(err)
		}
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		UserID:   &in.UserID,
		ParentID: in.ParentID,
		Body:     in.Body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// ListReplies resolves the direct replies of one comment, newest first.
// The parent must exist; replies themselves come back unpaginated.
func (s *CommentService) ListReplies(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		return nil, models.NewInternalError(err)
	}

	replies, err := s.commentRepo.ListReplies(ctx, commentID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return replies, nil
}
