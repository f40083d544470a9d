package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog/internal/apperrors"
	"catalog/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, err error) (int, middleware.ErrorResponse) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Get("/api/products/:id", func(c *fiber.Ctx) error { return err })

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/api/products/7", nil), -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler_Validation(t *testing.T) {
	status, body := serve(t, &apperrors.ValidationError{Fields: map[string]string{"price": "Price must be greater than 0"}})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, http.StatusBadRequest, body.Status)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, "{price=Price must be greater than 0}", body.Details)
	assert.Equal(t, "Price must be greater than 0", body.Errors["price"])
	assert.Equal(t, "/api/products/7", body.Path)
	assert.False(t, body.Timestamp.IsZero())
}

func TestErrorHandler_NotFound(t *testing.T) {
	status, body := serve(t, apperrors.NotFound("Product", 7))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Resource not found", body.Message)
	assert.Equal(t, "Product not found with ID: 7", body.Details)
	assert.Nil(t, body.Errors)
}

func TestErrorHandler_BadRequest(t *testing.T) {
	status, body := serve(t, apperrors.BadRequest("Invalid product ID: %q", "abc"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Bad request", body.Message)
	assert.Contains(t, body.Details, "abc")
}

func TestErrorHandler_FiberError(t *testing.T) {
	status, body := serve(t, fiber.ErrMethodNotAllowed)

	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.Equal(t, http.StatusMethodNotAllowed, body.Status)
}

func TestErrorHandler_Unexpected(t *testing.T) {
	status, body := serve(t, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "An unexpected error occurred", body.Message)
	assert.Equal(t, "connection refused", body.Details)
}
