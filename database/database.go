package database

import (
	"gorm.io/gorm"
)

type Database struct {
	db             *gorm.DB
	projectRepo    *ProjectRepo
	technologyRepo *TechnologyRepo
	typeRepo       *TypeRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:             db,
		projectRepo:    NewProjectRepo(db),
		technologyRepo: NewTechnologyRepo(db),
		typeRepo:       NewTypeRepo(db),
	}
}

// Accessor methods for each repository
func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TechnologyRepo() *TechnologyRepo {
	return d.technologyRepo
}

func (d Database) TypeRepo() *TypeRepo {
	return d.typeRepo
}

// Ping checks that the primary connection answers.
func (d Database) Ping() error {
	var result int
	return d.db.Raw("SELECT 1").Scan(&result).Error
}
