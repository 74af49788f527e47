package api

import (
	"time"

	"github.com/rpupo63/portfolio-admin-backend/i18n"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, maxUploadBytes int64, startupTime time.Time) *routeHandlers {
	parser := projectInputParser{maxUploadBytes: maxUploadBytes, messages: deps.Locales}

	return &routeHandlers{
		projectHandler: newProjectHandler(deps.Projects, parser),
		lookupHandler:  newLookupHandler(deps.Projects),
		healthHandler:  newHealthHandler(deps.DB, startupTime),
	}
}

// Dependencies are the collaborators the router is built from.
type Dependencies struct {
	Projects ProjectLifecycle
	Locales  *i18n.Bundle
	DB       Pinger
}
