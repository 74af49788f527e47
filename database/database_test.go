package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, models.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

type fixtures struct {
	db       Database
	frontend models.Type
	goLang   models.Technology
	vue      models.Technology
	postgres models.Technology
}

func seed(t *testing.T) fixtures {
	t.Helper()
	ctx := context.Background()
	f := fixtures{
		db:       New(setupTestDB(t)),
		frontend: models.Type{Label: "Frontend"},
		goLang:   models.Technology{Label: "Go"},
		vue:      models.Technology{Label: "Vue"},
		postgres: models.Technology{Label: "Postgres"},
	}
	require.NoError(t, f.db.TypeRepo().Add(ctx, &f.frontend))
	for _, tech := range []*models.Technology{&f.goLang, &f.vue, &f.postgres} {
		require.NoError(t, f.db.TechnologyRepo().Add(ctx, tech))
	}
	return f
}

func newProject(title string) *models.Project {
	return &models.Project{Title: title, Slug: title, Content: "content of " + title}
}

func TestProjectRepo_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	f := seed(t)
	repo := f.db.ProjectRepo()

	p := newProject("Portfolio")
	p.TypeID = &f.frontend.ID
	require.NoError(t, repo.Create(ctx, p, []uuid.UUID{f.vue.ID, f.goLang.ID, f.vue.ID}))
	require.NotEqual(t, uuid.Nil, p.ID)

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", found.Title)
	require.NotNil(t, found.Type)
	assert.Equal(t, "Frontend", found.Type.Label)
	require.Len(t, found.Technologies, 2)
	assert.Equal(t, "Go", found.Technologies[0].Label, "technologies are ordered by label")
	assert.Equal(t, "Vue", found.Technologies[1].Label)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectRepo_UpdateSyncsTechnologies(t *testing.T) {
	ctx := context.Background()
	f := seed(t)
	repo := f.db.ProjectRepo()

	p := newProject("Sync me")
	require.NoError(t, repo.Create(ctx, p, []uuid.UUID{f.goLang.ID, f.vue.ID}))

	p.Title = "Synced"
	p.Slug = "synced"
	require.NoError(t, repo.Update(ctx, p, []uuid.UUID{f.vue.ID, f.postgres.ID}))

	ids, err := currentTechnologyIDs(f.db.db, p.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{f.vue.ID, f.postgres.ID}, ids)

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Synced", found.Title)
	assert.Equal(t, "synced", found.Slug)

	require.NoError(t, repo.Update(ctx, found, nil))
	ids, err = currentTechnologyIDs(f.db.db, p.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestProjectRepo_UpdateClearsNullableColumns(t *testing.T) {
	ctx := context.Background()
	f := seed(t)
	repo := f.db.ProjectRepo()

	image := "project_images/clear-me.png"
	p := newProject("Clear me")
	p.Image = &image
	p.TypeID = &f.frontend.ID
	require.NoError(t, repo.Create(ctx, p, nil))

	p.Image = nil
	p.TypeID = nil
	p.Type = nil
	require.NoError(t, repo.Update(ctx, p, nil))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Image)
	assert.Nil(t, found.TypeID)
}

func TestProjectRepo_UpdateMissing(t *testing.T) {
	f := seed(t)
	p := newProject("Ghost")
	p.ID = uuid.New()

	err := f.db.ProjectRepo().Update(context.Background(), p, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectRepo_Paginate(t *testing.T) {
	ctx := context.Background()
	f := seed(t)
	repo := f.db.ProjectRepo()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		p := newProject(fmt.Sprintf("Project %02d", i))
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		p.UpdatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, p, nil))
	}

	// the oldest project was edited last, so it leads
	var oldest models.Project
	require.NoError(t, f.db.db.Where("title = ?", "Project 00").First(&oldest).Error)
	require.NoError(t, f.db.db.Model(&oldest).UpdateColumn("updated_at", base.Add(48*time.Hour)).Error)

	trashed := newProject("Trashed one")
	require.NoError(t, repo.Create(ctx, trashed, nil))
	require.NoError(t, repo.SoftDelete(ctx, trashed.ID))

	first, total, err := repo.Paginate(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, first, 10)
	assert.Equal(t, "Project 00", first[0].Title)
	assert.Equal(t, "Project 11", first[1].Title)
	assert.Equal(t, "Project 10", first[2].Title)

	second, _, err := repo.Paginate(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "Project 02", second[0].Title)
	assert.Equal(t, "Project 01", second[1].Title)

	beyond, _, err := repo.Paginate(ctx, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestProjectRepo_SoftDeleteRestorePurge(t *testing.T) {
	ctx := context.Background()
	f := seed(t)
	repo := f.db.ProjectRepo()

	p := newProject("Lifecycle")
	require.NoError(t, repo.Create(ctx, p, []uuid.UUID{f.goLang.ID}))

	require.NoError(t, repo.SoftDelete(ctx, p.ID))
	assert.ErrorIs(t, repo.SoftDelete(ctx, p.ID), gorm.ErrRecordNotFound, "already trashed rows are not live")

	_, err := repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	withTrashed, err := repo.FindWithTrashed(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, withTrashed.Trashed())
	assert.Len(t, withTrashed.Technologies, 1, "soft delete keeps relations")

	trash, err := repo.Trashed(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, p.ID, trash[0].ID)

	require.NoError(t, repo.Restore(ctx, p.ID))
	require.NoError(t, repo.Restore(ctx, p.ID), "restoring a live project is a no-op")
	restored, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, restored.Trashed())

	require.NoError(t, repo.SoftDelete(ctx, p.ID))
	require.NoError(t, repo.Purge(ctx, p.ID))

	_, err = repo.FindWithTrashed(ctx, p.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	ids, err := currentTechnologyIDs(f.db.db, p.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
	trash, err = repo.Trashed(ctx)
	require.NoError(t, err)
	assert.Empty(t, trash)

	assert.ErrorIs(t, repo.Purge(ctx, p.ID), gorm.ErrRecordNotFound)
}

func TestProjectRepo_TitleTaken(t *testing.T) {
	ctx := context.Background()
	f := seed(t)
	repo := f.db.ProjectRepo()

	p := newProject("Unique title")
	require.NoError(t, repo.Create(ctx, p, nil))

	taken, err := repo.TitleTaken(ctx, "Unique title", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.TitleTaken(ctx, "Unique title", p.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a project never collides with itself")

	require.NoError(t, repo.SoftDelete(ctx, p.ID))
	taken, err = repo.TitleTaken(ctx, "Unique title", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken, "trashed projects still hold their title")

	err = repo.Create(ctx, newProject("Unique title"), nil)
	assert.Error(t, err, "the unique index backs the check")
}

func TestLookupRepos(t *testing.T) {
	ctx := context.Background()
	f := seed(t)

	techs, err := f.db.TechnologyRepo().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, techs, 3)
	assert.Equal(t, []string{"Go", "Postgres", "Vue"}, []string{techs[0].Label, techs[1].Label, techs[2].Label})

	n, err := f.db.TechnologyRepo().CountExisting(ctx, []uuid.UUID{f.goLang.ID, f.vue.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = f.db.TechnologyRepo().CountExisting(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	types, err := f.db.TypeRepo().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, types, 1)

	ok, err := f.db.TypeRepo().Exists(ctx, f.frontend.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.db.TypeRepo().Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, f.db.Ping())
}

func TestDiffIDs(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name        string
		current     []uuid.UUID
		desired     []uuid.UUID
		wantInserts []uuid.UUID
		wantDeletes []uuid.UUID
	}{
		{name: "fresh record", current: nil, desired: []uuid.UUID{a, b}, wantInserts: []uuid.UUID{a, b}},
		{name: "clear all", current: []uuid.UUID{a, b}, desired: nil, wantDeletes: []uuid.UUID{a, b}},
		{name: "unchanged", current: []uuid.UUID{a, b}, desired: []uuid.UUID{b, a}},
		{name: "swap", current: []uuid.UUID{a, b, c}, desired: []uuid.UUID{b, d}, wantInserts: []uuid.UUID{d}, wantDeletes: []uuid.UUID{a, c}},
		{name: "duplicates collapse", current: nil, desired: []uuid.UUID{a, a, b}, wantInserts: []uuid.UUID{a, b}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inserts, deletes := diffIDs(tt.current, tt.desired)
			assert.Equal(t, tt.wantInserts, inserts)
			assert.Equal(t, tt.wantDeletes, deletes)
		})
	}
}
