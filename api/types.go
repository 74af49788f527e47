package api

import (
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	lookupHandler  lookupHandler
	healthHandler  healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string              `json:"error" example:"the given data was invalid"`
	Status  string              `json:"status" example:"error"`
	Field   string              `json:"field,omitempty" example:"title"`
	Details string              `json:"details,omitempty" example:"invalid fields: title"`
	Cause   string              `json:"cause,omitempty" example:"Underlying error cause"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Fields  []errs.FieldError   `json:"fields,omitempty"`
}

// TrashResponse lists every soft-deleted project
type TrashResponse struct {
	Projects []models.Project `json:"projects"`
}

// TechnologiesResponse lists every technology
type TechnologiesResponse struct {
	Technologies []models.Technology `json:"technologies"`
}

// TypesResponse lists every project type
type TypesResponse struct {
	Types []models.Type `json:"types"`
}

// HealthResponse reports liveness and database reachability
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
	Uptime   string `json:"uptime" example:"1h2m3s"`
}
