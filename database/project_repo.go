package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectRepo reads and writes projects. Every method except the *WithTrashed,
// Trashed, Restore and Purge ones only sees live rows (deleted_at IS NULL).
type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func (r *ProjectRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Type").
		Preload("Technologies", func(db *gorm.DB) *gorm.DB {
			return db.Order("label ASC")
		})
}

// Paginate returns one page of live projects, most recently updated first, and the live total.
func (r *ProjectRepo) Paginate(ctx context.Context, page, perPage int) ([]models.Project, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	projects := []models.Project{}
	if total == 0 {
		return projects, 0, nil
	}

	err := r.withRelations(ctx).
		Order("updated_at DESC").
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&projects).Error
	return projects, total, err
}

// FindByID returns a live project with its type and technologies.
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.withRelations(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindWithTrashed returns a project whether or not it is soft-deleted.
func (r *ProjectRepo) FindWithTrashed(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.withRelations(ctx).Unscoped().First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Trashed returns every soft-deleted project.
func (r *ProjectRepo) Trashed(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.withRelations(ctx).
		Unscoped().
		Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Find(&projects).Error
	return projects, err
}

// TitleTaken reports whether another project, live or trashed, already uses title.
func (r *ProjectRepo) TitleTaken(ctx context.Context, title string, ignoreID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Unscoped().Model(&models.Project{}).Where("title = ?", title)
	if ignoreID != uuid.Nil {
		query = query.Where("id <> ?", ignoreID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the project and its technology rows in one transaction.
func (r *ProjectRepo) Create(ctx context.Context, project *models.Project, technologyIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		return syncTechnologies(tx, project.ID, technologyIDs)
	})
}

// Update writes the mutable columns and reconciles the technology rows with
// technologyIDs (nil or empty removes them all), in one transaction.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project, technologyIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(project).
			Select("Title", "Slug", "Content", "Image", "TypeID").
			Omit(clause.Associations).
			Updates(project)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return syncTechnologies(tx, project.ID, technologyIDs)
	})
}

// SoftDelete sets deleted_at on a live project.
func (r *ProjectRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Restore clears deleted_at. Restoring a live project is a no-op.
func (r *ProjectRepo) Restore(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.Project{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	return res.Error
}

// Purge removes the technology rows and then the project row itself, bypassing soft delete.
func (r *ProjectRepo) Purge(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTechnology{}).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Delete(&models.Project{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// currentTechnologyIDs reads the join rows directly, so it also sees rows of trashed projects.
func currentTechnologyIDs(tx *gorm.DB, projectID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := tx.Model(&models.ProjectTechnology{}).
		Where("project_id = ?", projectID).
		Pluck("technology_id", &ids).Error
	return ids, err
}

// syncTechnologies makes the join rows of projectID equal to desired.
func syncTechnologies(tx *gorm.DB, projectID uuid.UUID, desired []uuid.UUID) error {
	current, err := currentTechnologyIDs(tx, projectID)
	if err != nil {
		return err
	}

	inserts, deletes := diffIDs(current, desired)

	if len(deletes) > 0 {
		err := tx.Where("project_id = ? AND technology_id IN ?", projectID, deletes).
			Delete(&models.ProjectTechnology{}).Error
		if err != nil {
			return err
		}
	}

	if len(inserts) > 0 {
		rows := make([]models.ProjectTechnology, 0, len(inserts))
		for _, id := range inserts {
			rows = append(rows, models.ProjectTechnology{ProjectID: projectID, TechnologyID: id})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

// diffIDs returns desired minus current (to insert) and current minus desired (to delete).
// Duplicates in desired are collapsed; output keeps input order.
func diffIDs(current, desired []uuid.UUID) (inserts, deletes []uuid.UUID) {
	have := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		have[id] = true
	}
	want := make(map[uuid.UUID]bool, len(desired))
	for _, id := range desired {
		if want[id] {
			continue
		}
		want[id] = true
		if !have[id] {
			inserts = append(inserts, id)
		}
	}
	for _, id := range current {
		if !want[id] {
			deletes = append(deletes, id)
		}
	}
	return inserts, deletes
}
