package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Type classifies a project (e.g. "Frontend", "Backend").
type Type struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Label string    `json:"label" db:"label" gorm:"type:varchar(100);not null;uniqueIndex:idx_types_label"`
}

func (t *Type) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
