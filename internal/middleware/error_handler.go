package middleware

import (
	"errors"
	"time"

	"catalog/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the envelope written for every failed request.
type ErrorResponse struct {
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Details   string            `json:"details"`
	Timestamp time.Time         `json:"timestamp"`
	Path      string            `json:"path"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// ErrorHandler is installed as fiber.Config.ErrorHandler and converts any
// error escaping a handler into an ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	resp := ErrorResponse{
		Timestamp: time.Now(),
		Path:      c.Path(),
	}

	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		badRequestErr *apperrors.BadRequestError
		fiberErr      *fiber.Error
	)
	switch {
	case errors.As(err, &validationErr):
		zap.S().Warnf("validation failed on %s: %s", resp.Path, validationErr.Details())
		resp.Status = fiber.StatusBadRequest
		resp.Message = "Validation failed"
		resp.Details = validationErr.Details()
		resp.Errors = validationErr.Fields
	case errors.As(err, &notFoundErr):
		zap.S().Debugf("resource not found on %s: %v", resp.Path, err)
		resp.Status = fiber.StatusNotFound
		resp.Message = "Resource not found"
		resp.Details = notFoundErr.Error()
	case errors.As(err, &badRequestErr):
		zap.S().Warnf("bad request on %s: %v", resp.Path, err)
		resp.Status = fiber.StatusBadRequest
		resp.Message = "Bad request"
		resp.Details = badRequestErr.Error()
	case errors.As(err, &fiberErr):
		resp.Status = fiberErr.Code
		resp.Message = fiberErr.Message
		resp.Details = fiberErr.Error()
	default:
		zap.S().Errorf("unexpected error on %s %s: %v", c.Method(), resp.Path, err)
		resp.Status = fiber.StatusInternalServerError
		resp.Message = "An unexpected error occurred"
		resp.Details = err.Error()
	}

	return c.Status(resp.Status).JSON(resp)
}
