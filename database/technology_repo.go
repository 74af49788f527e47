package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"gorm.io/gorm"
)

type TechnologyRepo struct {
	db *gorm.DB
}

func NewTechnologyRepo(db *gorm.DB) *TechnologyRepo {
	return &TechnologyRepo{db}
}

// FindAll returns all technologies ordered by label
func (r *TechnologyRepo) FindAll(ctx context.Context) ([]models.Technology, error) {
	technologies := []models.Technology{}
	err := r.db.WithContext(ctx).Order("label ASC").Find(&technologies).Error
	return technologies, err
}

// CountExisting returns how many of ids exist. Duplicate ids count once.
func (r *TechnologyRepo) CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Technology{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// Add inserts a new technology into the database
func (r *TechnologyRepo) Add(ctx context.Context, technology *models.Technology) error {
	return r.db.WithContext(ctx).Create(technology).Error
}
