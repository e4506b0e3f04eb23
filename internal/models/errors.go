package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError represents a custom application error.
type AppError struct {
	Code    string
	Message string
	// Fields carries per-field validation messages, first message per field.
	Fields map[string]string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// NewFieldErrors builds a validation error carrying per-field messages.
func NewFieldErrors(fields map[string]string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: "Validation failed",
		Fields:  fields,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// Envelope is the uniform response wrapper used by every endpoint.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Respond writes an envelope with the given HTTP status embedded.
func Respond(c *fiber.Ctx, status int, e Envelope) error {
	e.Status = status
	return c.Status(status).JSON(e)
}

// RespondWithError writes an error envelope. AppError field maps are
// surfaced under errors; everything else becomes the message.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	e := Envelope{Status: status}
	if appErr, ok := err.(*AppError); ok {
		if len(appErr.Fields) > 0 {
			e.Errors = appErr.Fields
		} else {
			e.Message = appErr.Message
		}
	} else {
		e.Message = err.Error()
	}
	return c.Status(status).JSON(e)
}
