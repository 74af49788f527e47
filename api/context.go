package api

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type keyType string

const (
	projectIDKey keyType = "projectID"
)

// ctxWithProjectID adds the parsed {projectID} route parameter to the context
func ctxWithProjectID(ctx context.Context, projectID uuid.UUID) context.Context {
	return context.WithValue(ctx, projectIDKey, projectID)
}

// ctxGetProjectID retrieves the project ID stored by projectCtx
func ctxGetProjectID(ctx context.Context) (uuid.UUID, error) {
	if ctxValue := ctx.Value(projectIDKey); ctxValue == nil {
		return uuid.Nil, errors.New("key not found in context")
	} else if projectID, ok := ctxValue.(uuid.UUID); !ok {
		return uuid.Nil, errors.New("value is not of type `uuid.UUID`")
	} else {
		return projectID, nil
	}
}
