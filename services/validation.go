package services

import (
	"context"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin-backend/errs"
)

const (
	titleMinLength = 5
	titleMaxLength = 20
)

// allowedImageExtensions are the accepted image extensions, as detected from the content.
var allowedImageExtensions = map[string]bool{"png": true, "jpg": true, "jpeg": true}

// projectForm carries the struct-level rules. validator counts runes for min/max on strings.
type projectForm struct {
	Title   string `validate:"required,min=5,max=20"`
	Content string `validate:"required"`
}

var formFields = map[string]string{
	"Title":   "title",
	"Content": "content",
}

// validateInput runs every rule against input and returns a single validation
// error listing all failures, or nil. ignoreID excludes a project from the
// title uniqueness check.
func (s *ProjectService) validateInput(ctx context.Context, input ProjectInput, ignoreID uuid.UUID) error {
	var failures []errs.FieldError
	fail := func(field, rule string, args ...any) {
		failures = append(failures, errs.FieldError{
			Field:   field,
			Rule:    rule,
			Message: s.messages.Sprintf(ctx, "validation."+field+"."+rule, args...),
		})
	}

	form := projectForm{Title: input.Title, Content: input.Content}
	if err := s.validate.StructCtx(ctx, form); err != nil {
		var invalid validator.ValidationErrors
		if !errors.As(err, &invalid) {
			return errs.NewInternalErrorWithCause("could not validate project", err)
		}
		for _, fe := range invalid {
			switch fe.Tag() {
			case "min":
				fail(formFields[fe.Field()], fe.Tag(), titleMinLength)
			case "max":
				fail(formFields[fe.Field()], fe.Tag(), titleMaxLength)
			default:
				fail(formFields[fe.Field()], fe.Tag())
			}
		}
	}

	if input.Title != "" {
		taken, err := s.projects.TitleTaken(ctx, input.Title, ignoreID)
		if err != nil {
			return errs.NewDatabaseError("check title", "project", err)
		}
		if taken {
			fail("title", "unique")
		}
	}

	if input.Image != nil {
		mtype := mimetype.Detect(input.Image.Content)
		if !strings.HasPrefix(mtype.String(), "image/") {
			fail("image", "image")
		}
		if !allowedImageExtensions[strings.TrimPrefix(mtype.Extension(), ".")] {
			fail("image", "mimes")
		}
		if s.maxUploadBytes > 0 && int64(len(input.Image.Content)) > s.maxUploadBytes {
			fail("image", "max_size", s.maxUploadBytes/1024)
		}
	}

	if input.TypeID != nil {
		ok, err := s.types.Exists(ctx, *input.TypeID)
		if err != nil {
			return errs.NewDatabaseError("check type", "type", err)
		}
		if !ok {
			fail("type_id", "exists")
		}
	}

	if ids := uniqueIDs(input.Technologies); len(ids) > 0 {
		found, err := s.technologies.CountExisting(ctx, ids)
		if err != nil {
			return errs.NewDatabaseError("check technologies", "technology", err)
		}
		if found != int64(len(ids)) {
			fail("technologies", "exists")
		}
	}

	if len(failures) > 0 {
		return errs.NewValidationError(failures)
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
