package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/rpupo63/portfolio-admin-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ProjectLifecycle is what the project routes need. *services.ProjectService implements it.
type ProjectLifecycle interface {
	List(ctx context.Context, page int) (*services.ProjectPage, error)
	CreateForm(ctx context.Context) (*services.FormLookups, error)
	Create(ctx context.Context, input services.ProjectInput) (*services.Result, error)
	Show(ctx context.Context, id uuid.UUID) (*services.ShowView, error)
	Edit(ctx context.Context, id uuid.UUID) (*services.EditView, error)
	Update(ctx context.Context, id uuid.UUID, input services.ProjectInput) (*services.Result, error)
	Destroy(ctx context.Context, id uuid.UUID) (*services.Result, error)
	Trash(ctx context.Context) ([]models.Project, error)
	Restore(ctx context.Context, id uuid.UUID) (*services.Result, error)
	Drop(ctx context.Context, id uuid.UUID) (*services.Result, error)
	Types(ctx context.Context) ([]models.Type, error)
	Technologies(ctx context.Context) ([]models.Technology, error)
}

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  ProjectLifecycle
	parser    projectInputParser
}

func newProjectHandler(projects ProjectLifecycle, parser projectInputParser) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		parser:    parser,
	}
}

// listProjects returns one page of live projects
// @Summary List projects
// @Description Live projects, most recently updated first, 10 per page
// @Tags Projects
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} services.ProjectPage "One page of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /admin/projects [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid page"))
				return
			}
			page = parsed
		}

		result, err := h.projects.List(r.Context(), page)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, result)
	}
}

// createForm returns the lookups a create form needs
// @Summary Create form
// @Tags Projects
// @Produce json
// @Success 200 {object} services.FormLookups "Types and technologies"
// @Router /admin/projects/create [get]
func (h projectHandler) createForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lookups, err := h.projects.CreateForm(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, lookups)
	}
}

// createProject validates and stores a new project
// @Summary Create project
// @Description Accepts multipart/form-data (with an optional image file), urlencoded or JSON bodies
// @Tags Projects
// @Accept mpfd,x-www-form-urlencoded,json
// @Produce json
// @Success 201 {object} services.Result "Created project, redirect and flash"
// @Failure 400 {object} ErrorResponse "Bad Request - Malformed body"
// @Failure 413 {object} ErrorResponse "Request body too large"
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Router /admin/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := h.parser.parse(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.projects.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.Header().Set("Location", result.Redirect)
		h.responder.WriteJSONStatus(w, http.StatusCreated, result)
	}
}

// showProject returns a live project
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} services.ShowView "Project with type options"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /admin/projects/{projectID} [get]
func (h projectHandler) showProject() http.HandlerFunc {
	return h.withProjectID(func(w http.ResponseWriter, r *http.Request, projectID uuid.UUID) {
		view, err := h.projects.Show(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, view)
	})
}

// editProject returns a live project with its form lookups and selected technologies
// @Summary Edit form
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} services.EditView "Project, lookups and selections"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /admin/projects/{projectID}/edit [get]
func (h projectHandler) editProject() http.HandlerFunc {
	return h.withProjectID(func(w http.ResponseWriter, r *http.Request, projectID uuid.UUID) {
		view, err := h.projects.Edit(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, view)
	})
}

// updateProject validates and saves a live project. Omitting technologies removes them all.
// @Summary Update project
// @Tags Projects
// @Accept mpfd,x-www-form-urlencoded,json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} services.Result "Updated project, redirect and flash"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Router /admin/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return h.withProjectID(func(w http.ResponseWriter, r *http.Request, projectID uuid.UUID) {
		input, err := h.parser.parse(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.projects.Update(r.Context(), projectID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, result)
	})
}

// destroyProject moves a live project to the trash
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} services.Result "Redirect to the index"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /admin/projects/{projectID} [delete]
func (h projectHandler) destroyProject() http.HandlerFunc {
	return h.mutation(h.projects.Destroy)
}

// restoreProject brings a trashed project back
// @Summary Restore project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} services.Result "Redirect to the index"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /admin/projects/{projectID}/restore [patch]
func (h projectHandler) restoreProject() http.HandlerFunc {
	return h.mutation(h.projects.Restore)
}

// dropProject permanently deletes a trashed project
// @Summary Purge project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} services.Result "Redirect to the trash"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 409 {object} ErrorResponse "Conflict - Project is not trashed"
// @Router /admin/projects/{projectID}/drop [delete]
func (h projectHandler) dropProject() http.HandlerFunc {
	return h.mutation(h.projects.Drop)
}

// trash lists every soft-deleted project
// @Summary Trash
// @Tags Projects
// @Produce json
// @Success 200 {object} TrashResponse "Soft-deleted projects"
// @Router /admin/projects/trash [get]
func (h projectHandler) trash() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.Trash(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, TrashResponse{Projects: projects})
	}
}

func (h projectHandler) mutation(op func(context.Context, uuid.UUID) (*services.Result, error)) http.HandlerFunc {
	return h.withProjectID(func(w http.ResponseWriter, r *http.Request, projectID uuid.UUID) {
		result, err := op(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, result)
	})
}

func (h projectHandler) withProjectID(next func(http.ResponseWriter, *http.Request, uuid.UUID)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := ctxGetProjectID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}
		next(w, r, projectID)
	}
}
