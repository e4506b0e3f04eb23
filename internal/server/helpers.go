package server

import (
	"errors"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// parseListQuery builds a ListQuery from the request's query parameters.
// Only the named filter keys are recognized; anything else is ignored.
func parseListQuery(c *fiber.Ctx, filterKeys ...string) repository.ListQuery {
	q := repository.ListQuery{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Page:     c.QueryInt("page", 0),
		Limit:    c.QueryInt("limit", 0),
	}
	for _, key := range filterKeys {
		if value := c.Query(key); value != "" {
			if q.Filters == nil {
				q.Filters = map[string]string{}
			}
			q.Filters[key] = value
		}
	}
	return q
}

// respondServiceError maps a service-layer error onto the wire. Ownership
// failures are the only 403 this API produces; everything else, including
// not-found and internal failures, surfaces as 400 to match the
// longstanding behavior clients depend on.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "FORBIDDEN":
			return models.RespondWithError(c, fiber.StatusForbidden, appErr)
		case "INTERNAL_ERROR":
			middleware.Logger.ErrorContext(c.UserContext(), "request failed internally",
				"error", appErr.Err)
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Something went wrong, please try again"))
		default:
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		}
	}
	middleware.Logger.ErrorContext(c.UserContext(), "request failed internally", "error", err)
	return models.RespondWithError(c, fiber.StatusBadRequest,
		models.NewValidationError("Something went wrong, please try again"))
}
