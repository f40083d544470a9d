// Package apperrors holds the error kinds the HTTP layer knows how to render.
package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is matched by every NotFoundError through errors.Is.
var ErrNotFound = errors.New("resource not found")

// NotFoundError reports that an identifier has no matching record.
type NotFoundError struct {
	Resource string
	ID       any
}

// NotFound creates a NotFoundError for the given resource and identifier.
func NotFound(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with ID: %v", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError carries every field violation found in one request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Details()
}

// Details renders the field map as {field=message, ...}, sorted by field.
func (e *ValidationError) Details() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(e.Fields[k])
	}
	b.WriteByte('}')
	return b.String()
}

// BadRequestError reports a malformed path parameter, query parameter or body.
type BadRequestError struct {
	Msg string
	Err error
}

// BadRequest formats a BadRequestError.
func BadRequest(format string, args ...any) *BadRequestError {
	return &BadRequestError{Msg: fmt.Sprintf(format, args...)}
}

func (e *BadRequestError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *BadRequestError) Unwrap() error {
	return e.Err
}
