package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Technology is a lookup entity attached to projects through project_technology.
type Technology struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Label string    `json:"label" db:"label" gorm:"type:varchar(100);not null;uniqueIndex:idx_technologies_label"`
}

func (t *Technology) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ProjectTechnology is a row of the project <-> technology join table.
type ProjectTechnology struct {
	ProjectID    uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;primaryKey;not null"`
	TechnologyID uuid.UUID `json:"technology_id" db:"technology_id" gorm:"type:uuid;primaryKey;not null;index:idx_project_technology_technology_id"`
}

func (ProjectTechnology) TableName() string {
	return "project_technology"
}
