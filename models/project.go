package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a portfolio entry managed from the admin area.
type Project struct {
	ID           uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string         `json:"title" db:"title" gorm:"type:varchar(20);not null;uniqueIndex:idx_projects_title"`
	Slug         string         `json:"slug" db:"slug" gorm:"type:varchar(255);not null;index:idx_projects_slug"`
	Content      string         `json:"content" db:"content" gorm:"type:text;not null"`
	Image        *string        `json:"image,omitempty" db:"image" gorm:"type:varchar(255)"`
	TypeID       *uuid.UUID     `json:"type_id,omitempty" db:"type_id" gorm:"type:uuid;index:idx_projects_type_id"`
	Type         *Type          `json:"type,omitempty" gorm:"foreignKey:TypeID;references:ID;constraint:OnDelete:SET NULL"`
	Technologies []Technology   `json:"technologies" gorm:"many2many:project_technology;joinForeignKey:ProjectID;joinReferences:TechnologyID"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" db:"deleted_at" gorm:"index"`
}

// BeforeCreate assigns the primary key on the application side so the same
// models work against postgres and the sqlite test database.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Trashed reports whether the project is soft-deleted.
func (p *Project) Trashed() bool {
	return p.DeletedAt.Valid
}

// TechnologyIDs returns the ids of the preloaded technologies.
func (p *Project) TechnologyIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Technologies))
	for _, t := range p.Technologies {
		ids = append(ids, t.ID)
	}
	return ids
}
