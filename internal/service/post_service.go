package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"gorm.io/gorm"
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID      uint
	Title       string
	Description string
	Image       string
	Publish     bool
}

type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       string
	Description string
	Image       string
	Publish     *bool
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts returns one page of the filtered collection. A page past the
// end propagates repository.ErrPageOutOfRange for the handler to turn
// into the explicit no-results failure.
func (s *PostService) ListPosts(ctx context.Context, q repository.ListQuery) ([]*models.Post, repository.PageMeta, error) {
	return s.postRepo.List(ctx, q)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Post", id)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// CreatePost validates and stores a new post. A user cannot own two posts
// with the same title; the slug is derived from the title by the model
// hook, so duplicate titles would also collide on slug.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidateRequired("title", in.Title); err != nil {
		return nil, models.NewFieldErrors(map[string]string{"title": err.Error()})
	}

	exists, err := s.postRepo.ExistsByTitleAndUser(ctx, in.Title, in.UserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if exists {
		return nil, models.NewValidationError("You already have a post with this title")
	}

	post := &models.Post{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Publish:     in.Publish,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// UpdatePost applies the supplied fields to an owned post. Empty strings
// mean "leave unchanged"; Publish uses a pointer for the same reason.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You do not have permission to modify this post")
	}

	if in.Title != "" && in.Title != post.Title {
		exists, err := s.postRepo.ExistsByTitleAndUser(ctx, in.Title, in.UserID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if exists {
			return nil, models.NewValidationError("You already have a post with this title")
		}
		post.Title = in.Title
	}
	if in.Description != "" {
		post.Description = in.Description
	}
	if in.Image != "" {
		post.Image = in.Image
	}
	if in.Publish != nil {
		post.Publish = *in.Publish
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You do not have permission to delete this post")
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
