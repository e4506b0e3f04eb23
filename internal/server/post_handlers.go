package server

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetPosts handles GET /api/v1/post
func (s *Server) GetPosts(c *fiber.Ctx) error {
	q := parseListQuery(c, "user__id", "publish")

	posts, meta, err := s.postService.ListPosts(c.Context(), q)
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
			Results:    models.PostResponses(posts, s.config.BaseURL),
		},
	})
}

// GetPost handles GET /api/v1/post/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, models.Envelope{
		Data: post.Response(s.config.BaseURL),
	})
}

// CreatePost handles POST /api/v1/post (multipart form)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	publish := false
	if v := c.FormValue("publish"); v != "" {
		publish, _ = strconv.ParseBool(v)
	}

	image, err := s.saveUploadedImage(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:      currentUserID(c),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Image:       image,
		Publish:     publish,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, models.Envelope{
		Message: "Post created",
		Data:    post.Response(s.config.BaseURL),
	})
}

// UpdatePost handles PUT /api/v1/post/:id (multipart form, owner only)
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var publish *bool
	if v := c.FormValue("publish"); v != "" {
		b, parseErr := strconv.ParseBool(v)
		if parseErr == nil {
			publish = &b
		}
	}

	image, err := s.saveUploadedImage(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:      currentUserID(c),
		PostID:      id,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Image:       image,
		Publish:     publish,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, models.Envelope{
		Message: "UPDATED",
		Data:    post.Response(s.config.BaseURL),
	})
}

// DeletePost handles DELETE /api/v1/post/:id (owner only)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// saveUploadedImage stores the optional "image" form file under the media
// directory with a generated name and returns the stored filename. A
// request without an image returns "".
func (s *Server) saveUploadedImage(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// No file attached.
		return "", nil
	}
	return s.storeImage(c, file)
}

func (s *Server) storeImage(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.config.MediaDir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, filepath.Join(s.config.MediaDir, name)); err != nil {
		return "", models.NewInternalError(err)
	}
	return name, nil
}
