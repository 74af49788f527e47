package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name       string
		cause      error
		wantStatus int
		wantIs     error
	}{
		{
			name:       "postgres duplicate key",
			cause:      errors.New(`ERROR: duplicate key value violates unique constraint "idx_projects_title" (SQLSTATE 23505)`),
			wantStatus: http.StatusConflict,
			wantIs:     ErrUniqueConstraintViolation,
		},
		{
			name:       "sqlite unique constraint",
			cause:      errors.New("UNIQUE constraint failed: projects.title"),
			wantStatus: http.StatusConflict,
			wantIs:     ErrUniqueConstraintViolation,
		},
		{
			name:       "foreign key",
			cause:      errors.New(`insert or update on table "projects" violates foreign key constraint "fk_projects_type"`),
			wantStatus: http.StatusBadRequest,
			wantIs:     ErrForeignKeyConstraint,
		},
		{
			name:       "record not found",
			cause:      errors.New("record not found"),
			wantStatus: http.StatusNotFound,
			wantIs:     ErrNotFound,
		},
		{
			name:       "connection refused",
			cause:      errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantIs:     ErrDatabaseConnection,
		},
		{
			name:       "anything else",
			cause:      errors.New("syntax error at or near"),
			wantStatus: http.StatusInternalServerError,
			wantIs:     ErrDatabaseQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("find", "project", tt.cause)
			assert.Equal(t, tt.wantStatus, err.StatusCode)
			assert.ErrorIs(t, err, tt.wantIs)
			assert.Equal(t, tt.cause, err.Cause)
		})
	}
}

func TestNewDatabaseError_PassesApiErrThrough(t *testing.T) {
	original := NewNotFound("project")
	wrapped := fmt.Errorf("lookup: %w", original)

	err := NewDatabaseError("find", "project", wrapped)
	assert.Same(t, original, err)
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "title", Rule: "required", Message: "title is required"},
		{Field: "title", Rule: "min", Message: "too short"},
		{Field: "content", Rule: "required", Message: "content is required"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
	assert.True(t, IsValidation(err))
	assert.Empty(t, err.Field, "more than one field failed")
	assert.Contains(t, err.Error(), "title, content")

	byField := MessagesByField(ValidationFields(err))
	require.Len(t, byField["title"], 2)
	assert.Equal(t, []string{"content is required"}, byField["content"])
}

func TestGetFullError(t *testing.T) {
	inner := NewStorageError("write", "project_images/a.png", errors.New("disk full"))
	outer := NewInternalErrorWithCause("create project", inner)

	assert.Equal(t,
		"create project: internal server error -> asset storage failed: Failed to write asset project_images/a.png -> disk full",
		outer.GetFullError())
	assert.True(t, IsStorageError(inner))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(outer))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("plain")))
}

func TestRequestErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *ApiErr
		wantStatus int
		wantIs     error
		wantField  string
	}{
		{"bad request", NewBadRequestError("invalid page"), http.StatusBadRequest, ErrBadRequest, ""},
		{"conflict", NewConflictError("project must be trashed first"), http.StatusConflict, ErrConflict, ""},
		{"cors", NewCORSError("https://evil.example"), http.StatusForbidden, ErrCORSBlocked, ""},
		{"malformed", NewMalformedPayloadError("json", errors.New("eof")), http.StatusBadRequest, ErrMalformed, "payload"},
		{"too large", NewMaxBodySizeExceededError(1024), http.StatusRequestEntityTooLarge, ErrBodyTooLarge, "body_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.ErrorIs(t, tt.err, tt.wantIs)
			assert.Equal(t, tt.wantField, tt.err.Field)
		})
	}
	assert.True(t, IsConflict(NewConflictError("x")))
	assert.False(t, IsNotFound(NewConflictError("x")))
}
