package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"gorm.io/gorm"
)

type TypeRepo struct {
	db *gorm.DB
}

func NewTypeRepo(db *gorm.DB) *TypeRepo {
	return &TypeRepo{db}
}

// FindAll returns all project types ordered by label
func (r *TypeRepo) FindAll(ctx context.Context) ([]models.Type, error) {
	types := []models.Type{}
	err := r.db.WithContext(ctx).Order("label ASC").Find(&types).Error
	return types, err
}

func (r *TypeRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Type{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add inserts a new project type into the database
func (r *TypeRepo) Add(ctx context.Context, t *models.Type) error {
	return r.db.WithContext(ctx).Create(t).Error
}
