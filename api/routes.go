package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupAdminRoutes sets up the project admin routes. Authentication happens upstream.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.listProjects())
			r.Post("/", handlers.projectHandler.createProject())
			r.Get("/create", handlers.projectHandler.createForm())
			r.Get("/trash", handlers.projectHandler.trash())

			r.Route("/{projectID}", func(r chi.Router) {
				r.Use(projectCtx)
				r.Get("/", handlers.projectHandler.showProject())
				r.Put("/", handlers.projectHandler.updateProject())
				r.Patch("/", handlers.projectHandler.updateProject())
				r.Delete("/", handlers.projectHandler.destroyProject())
				r.Get("/edit", handlers.projectHandler.editProject())
				r.Patch("/restore", handlers.projectHandler.restoreProject())
				r.Delete("/drop", handlers.projectHandler.dropProject())
			})
		})

		r.Get("/technologies", handlers.lookupHandler.listTechnologies())
		r.Get("/types", handlers.lookupHandler.listTypes())
	})
}

// setupOperationalRoutes exposes liveness and Prometheus metrics
func setupOperationalRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/healthz", handlers.healthHandler.healthz())
	r.Handle("/metrics", promhttp.Handler())
}
