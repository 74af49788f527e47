package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/metrics"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/rpupo63/portfolio-admin-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	// ProjectsPerPage is the page size of the project index.
	ProjectsPerPage = 10
	// ImageNamespace is where project images live in the asset store.
	ImageNamespace = "project_images"
)

// Redirect targets handed back to the presentation layer.
const (
	ProjectIndexPath = "/admin/projects"
	ProjectTrashPath = "/admin/projects/trash"
)

// ProjectShowPath returns the detail view of a project.
func ProjectShowPath(id uuid.UUID) string {
	return ProjectIndexPath + "/" + id.String()
}

// Flash types.
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
)

// ProjectStore is the record store the lifecycle needs. *database.ProjectRepo implements it.
type ProjectStore interface {
	Paginate(ctx context.Context, page, perPage int) ([]models.Project, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	FindWithTrashed(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Trashed(ctx context.Context) ([]models.Project, error)
	TitleTaken(ctx context.Context, title string, ignoreID uuid.UUID) (bool, error)
	Create(ctx context.Context, project *models.Project, technologyIDs []uuid.UUID) error
	Update(ctx context.Context, project *models.Project, technologyIDs []uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	Purge(ctx context.Context, id uuid.UUID) error
}

// TechnologyStore is the read-only technology lookup.
type TechnologyStore interface {
	FindAll(ctx context.Context) ([]models.Technology, error)
	CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// TypeStore is the read-only project type lookup.
type TypeStore interface {
	FindAll(ctx context.Context) ([]models.Type, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Translator renders catalog messages in the language carried by ctx.
type Translator interface {
	Sprintf(ctx context.Context, key string, args ...any) string
}

// Upload is an image received with a create or update request.
type Upload struct {
	Filename string
	Content  []byte
}

// ProjectInput is the form submitted to Create and Update.
// Technologies is the complete desired set: on update an empty or missing
// set removes every relation.
type ProjectInput struct {
	Title        string
	Content      string
	TypeID       *uuid.UUID
	Technologies []uuid.UUID
	Image        *Upload
}

type Flash struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Result is what every mutation hands back: the affected project, where to go next and what to tell the user.
type Result struct {
	Project  *models.Project `json:"project,omitempty"`
	Redirect string          `json:"redirect"`
	Flash    Flash           `json:"flash"`
}

type ProjectPage struct {
	Projects []models.Project `json:"projects"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`
	Total    int64            `json:"total"`
	LastPage int              `json:"last_page"`
}

type FormLookups struct {
	Types        []models.Type       `json:"types"`
	Technologies []models.Technology `json:"technologies"`
}

type ShowView struct {
	Project *models.Project `json:"project"`
	Types   []models.Type   `json:"types"`
}

type EditView struct {
	Project               *models.Project     `json:"project"`
	Types                 []models.Type       `json:"types"`
	Technologies          []models.Technology `json:"technologies"`
	SelectedTechnologyIDs []uuid.UUID         `json:"selected_technology_ids"`
}

// ProjectService owns the project lifecycle: validation, slugs, images,
// technology relations, soft delete, restore and purge.
type ProjectService struct {
	projects       ProjectStore
	technologies   TechnologyStore
	types          TypeStore
	assets         storage.Store
	messages       Translator
	validate       *validator.Validate
	maxUploadBytes int64
	logger         zerolog.Logger
}

func NewProjectService(projects ProjectStore, technologies TechnologyStore, types TypeStore, assets storage.Store, messages Translator, maxUploadBytes int64) *ProjectService {
	return &ProjectService{
		projects:       projects,
		technologies:   technologies,
		types:          types,
		assets:         assets,
		messages:       messages,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		maxUploadBytes: maxUploadBytes,
		logger:         log.With().Str("serviceName", "ProjectService").Logger(),
	}
}

// List returns one page of live projects. Pages below 1 are treated as 1.
func (s *ProjectService) List(ctx context.Context, page int) (_ *ProjectPage, err error) {
	defer observe("list", time.Now(), &err)

	if page < 1 {
		page = 1
	}
	projects, total, err := s.projects.Paginate(ctx, page, ProjectsPerPage)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "project", err)
	}

	lastPage := int((total + ProjectsPerPage - 1) / ProjectsPerPage)
	if lastPage < 1 {
		lastPage = 1
	}
	return &ProjectPage{
		Projects: projects,
		Page:     page,
		PerPage:  ProjectsPerPage,
		Total:    total,
		LastPage: lastPage,
	}, nil
}

// CreateForm returns the lookups a create form needs.
func (s *ProjectService) CreateForm(ctx context.Context) (*FormLookups, error) {
	types, err := s.Types(ctx)
	if err != nil {
		return nil, err
	}
	technologies, err := s.Technologies(ctx)
	if err != nil {
		return nil, err
	}
	return &FormLookups{Types: types, Technologies: technologies}, nil
}

func (s *ProjectService) Types(ctx context.Context) ([]models.Type, error) {
	types, err := s.types.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "type", err)
	}
	return types, nil
}

func (s *ProjectService) Technologies(ctx context.Context) ([]models.Technology, error) {
	technologies, err := s.technologies.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "technology", err)
	}
	return technologies, nil
}

// Create validates input, stores the image under the project's slug and
// persists the project with its technologies.
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (_ *Result, err error) {
	defer observe("create", time.Now(), &err)

	input = input.normalized()
	if err := s.validateInput(ctx, input, uuid.Nil); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:   input.Title,
		Slug:    Slugify(input.Title),
		Content: input.Content,
		TypeID:  input.TypeID,
	}

	if input.Image != nil {
		path, err := s.storeImage(ctx, project.Slug, input.Image)
		if err != nil {
			return nil, err
		}
		project.Image = &path
	}

	if err := s.projects.Create(ctx, project, uniqueIDs(input.Technologies)); err != nil {
		if project.Image != nil {
			s.discardImage(ctx, *project.Image)
		}
		return nil, errs.NewDatabaseError("create", "project", err)
	}

	created, err := s.projects.FindByID(ctx, project.ID)
	if err != nil {
		return nil, notFoundOr(err, "reload", "project")
	}

	s.logger.Info().Str("projectID", created.ID.String()).Str("slug", created.Slug).Msg("Project created")
	return &Result{
		Project:  created,
		Redirect: ProjectShowPath(created.ID),
		Flash:    Flash{Type: FlashSuccess, Message: s.messages.Sprintf(ctx, "flash.project.created")},
	}, nil
}

// Show returns a live project with the type options.
func (s *ProjectService) Show(ctx context.Context, id uuid.UUID) (_ *ShowView, err error) {
	defer observe("show", time.Now(), &err)

	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "show", "project")
	}
	types, err := s.Types(ctx)
	if err != nil {
		return nil, err
	}
	return &ShowView{Project: project, Types: types}, nil
}

// Edit returns a live project with everything its edit form needs,
// including the currently selected technologies.
func (s *ProjectService) Edit(ctx context.Context, id uuid.UUID) (_ *EditView, err error) {
	defer observe("edit", time.Now(), &err)

	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "edit", "project")
	}
	lookups, err := s.CreateForm(ctx)
	if err != nil {
		return nil, err
	}
	return &EditView{
		Project:               project,
		Types:                 lookups.Types,
		Technologies:          lookups.Technologies,
		SelectedTechnologyIDs: project.TechnologyIDs(),
	}, nil
}

// Update validates input against a live project, replaces its image when a
// new one is supplied and makes its technologies exactly input.Technologies.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, input ProjectInput) (_ *Result, err error) {
	defer observe("update", time.Now(), &err)

	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "update", "project")
	}

	input = input.normalized()
	if err := s.validateInput(ctx, input, project.ID); err != nil {
		return nil, err
	}

	project.Title = input.Title
	project.Slug = Slugify(input.Title)
	project.Content = input.Content
	project.TypeID = input.TypeID
	project.Type = nil

	if input.Image != nil {
		if project.Image != nil {
			if err := s.deleteImage(ctx, *project.Image); err != nil {
				return nil, err
			}
			project.Image = nil
		}
		path, err := s.storeImage(ctx, project.Slug, input.Image)
		if err != nil {
			return nil, err
		}
		project.Image = &path
	}

	if err := s.projects.Update(ctx, project, uniqueIDs(input.Technologies)); err != nil {
		return nil, notFoundOr(err, "update", "project")
	}

	updated, err := s.projects.FindByID(ctx, project.ID)
	if err != nil {
		return nil, notFoundOr(err, "reload", "project")
	}

	s.logger.Info().Str("projectID", updated.ID.String()).Str("slug", updated.Slug).Msg("Project updated")
	return &Result{
		Project:  updated,
		Redirect: ProjectShowPath(updated.ID),
		Flash:    Flash{Type: FlashSuccess, Message: s.messages.Sprintf(ctx, "flash.project.updated")},
	}, nil
}

// Destroy soft-deletes a live project. Its image and relations are kept for restore.
func (s *ProjectService) Destroy(ctx context.Context, id uuid.UUID) (_ *Result, err error) {
	defer observe("destroy", time.Now(), &err)

	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "destroy", "project")
	}
	if err := s.projects.SoftDelete(ctx, project.ID); err != nil {
		return nil, notFoundOr(err, "destroy", "project")
	}

	s.logger.Info().Str("projectID", project.ID.String()).Msg("Project moved to trash")
	return &Result{
		Project:  project,
		Redirect: ProjectIndexPath,
		Flash:    Flash{Type: FlashSuccess, Message: s.messages.Sprintf(ctx, "flash.project.deleted")},
	}, nil
}

// Trash returns every soft-deleted project.
func (s *ProjectService) Trash(ctx context.Context) (_ []models.Project, err error) {
	defer observe("trash", time.Now(), &err)

	projects, err := s.projects.Trashed(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("trash", "project", err)
	}
	return projects, nil
}

// Restore brings a trashed project back. Restoring a live project changes nothing.
func (s *ProjectService) Restore(ctx context.Context, id uuid.UUID) (_ *Result, err error) {
	defer observe("restore", time.Now(), &err)

	project, err := s.projects.FindWithTrashed(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "restore", "project")
	}
	if project.Trashed() {
		if err := s.projects.Restore(ctx, project.ID); err != nil {
			return nil, errs.NewDatabaseError("restore", "project", err)
		}
		project.DeletedAt = gorm.DeletedAt{}
		s.logger.Info().Str("projectID", project.ID.String()).Msg("Project restored")
	}

	return &Result{
		Project:  project,
		Redirect: ProjectIndexPath,
		Flash:    Flash{Type: FlashSuccess, Message: s.messages.Sprintf(ctx, "flash.project.restored")},
	}, nil
}

// Drop permanently removes a trashed project: its image, its technology rows and the row itself.
// Live projects must go through Destroy first.
func (s *ProjectService) Drop(ctx context.Context, id uuid.UUID) (_ *Result, err error) {
	defer observe("drop", time.Now(), &err)

	project, err := s.projects.FindWithTrashed(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "drop", "project")
	}
	if !project.Trashed() {
		return nil, errs.NewConflictError("project must be trashed first")
	}

	if project.Image != nil {
		if err := s.deleteImage(ctx, *project.Image); err != nil {
			return nil, err
		}
	}
	if err := s.projects.Purge(ctx, project.ID); err != nil {
		return nil, notFoundOr(err, "drop", "project")
	}

	s.logger.Warn().Str("projectID", project.ID.String()).Str("title", project.Title).Msg("Project permanently deleted")
	return &Result{
		Project:  project,
		Redirect: ProjectTrashPath,
		Flash:    Flash{Type: FlashWarning, Message: s.messages.Sprintf(ctx, "flash.project.dropped")},
	}, nil
}

// storeImage writes upload as {slug}.{ext} in the image namespace and returns its path.
func (s *ProjectService) storeImage(ctx context.Context, slug string, upload *Upload) (string, error) {
	mtype := mimetype.Detect(upload.Content)
	name := slug + mtype.Extension()

	path, err := s.assets.Put(ctx, ImageNamespace, name, bytes.NewReader(upload.Content), mtype.String())
	metrics.ObserveAsset("put", len(upload.Content), err)
	if err != nil {
		return "", errs.NewStorageError("store", ImageNamespace+"/"+name, err)
	}
	return path, nil
}

func (s *ProjectService) deleteImage(ctx context.Context, path string) error {
	err := s.assets.Delete(ctx, path)
	metrics.ObserveAsset("delete", 0, err)
	if err != nil {
		return errs.NewStorageError("delete", path, err)
	}
	return nil
}

// discardImage removes an image whose project was never saved. Failures leave an orphan and are only logged.
func (s *ProjectService) discardImage(ctx context.Context, path string) {
	if err := s.deleteImage(ctx, path); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("Failed to remove image of unsaved project")
	}
}

func (in ProjectInput) normalized() ProjectInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	return in
}

// notFoundOr maps a missing record to a 404 and anything else through the database error mapping.
func notFoundOr(err error, operation, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound(entity)
	}
	return errs.NewDatabaseError(operation, entity, err)
}

func observe(operation string, started time.Time, err *error) {
	outcome := metrics.OutcomeSuccess
	switch {
	case *err == nil:
	case errs.IsValidation(*err):
		outcome = metrics.OutcomeInvalid
	case errs.IsNotFound(*err):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomeError
	}
	metrics.ObserveOperation(operation, outcome, started)
}
