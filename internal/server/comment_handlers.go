package server

import (
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/v1/post/comment. Listings are scoped by the
// post__id query parameter; without it the page is empty.
func (s *Server) GetComments(c *fiber.Ctx) error {
	q := parseListQuery(c, "post__id")

	comments, meta, err := s.commentService.ListComments(c.Context(), q)
	if errors.Is(err, repository.ErrPageOutOfRange) {
		return models.Respond(c, fiber.StatusOK, models.Envelope{
			Data: models.PageOutOfRange(),
		})
	}
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, models.Envelope{
		Message: "OK",
		Data: models.Page{
			Status:     fiber.StatusOK,
			Message:    "ok",
			Total:      meta.Total,
			TotalPages: meta.TotalPages,
			Page:       meta.Page,
			Limit:      meta.Limit,
			Results:    comments,
		},
	})
}

// CreateComment handles POST /api/v1/post/comment
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		PostID   *uint  `json:"post_id"`
		ParentID *uint  `json:"parent_comment_id"`
		Body     string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:   currentUserID(c),
		PostID:   req.PostID,
		ParentID: req.ParentID,
		Body:     req.Body,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, models.Envelope{
		Message: "Comment created",
		Data:    comment,
	})
}

// GetReplies handles GET /api/v1/post/comment/:id/replies
func (s *Server) GetReplies(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	replies, err := s.commentService.ListReplies(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, models.Envelope{
		Data: replies,
	})
}
