package services

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/stretchr/testify/mock"
)

// MockProjectStore is a mock implementation of ProjectStore
type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) Paginate(ctx context.Context, page, perPage int) ([]models.Project, int64, error) {
	args := m.Called(ctx, page, perPage)
	return args.Get(0).([]models.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectStore) FindWithTrashed(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectStore) Trashed(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectStore) TitleTaken(ctx context.Context, title string, ignoreID uuid.UUID) (bool, error) {
	args := m.Called(ctx, title, ignoreID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectStore) Create(ctx context.Context, project *models.Project, technologyIDs []uuid.UUID) error {
	args := m.Called(ctx, project, technologyIDs)
	return args.Error(0)
}

func (m *MockProjectStore) Update(ctx context.Context, project *models.Project, technologyIDs []uuid.UUID) error {
	args := m.Called(ctx, project, technologyIDs)
	return args.Error(0)
}

func (m *MockProjectStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProjectStore) Restore(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProjectStore) Purge(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockTechnologyStore is a mock implementation of TechnologyStore
type MockTechnologyStore struct {
	mock.Mock
}

func (m *MockTechnologyStore) FindAll(ctx context.Context) ([]models.Technology, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Technology), args.Error(1)
}

func (m *MockTechnologyStore) CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockTypeStore is a mock implementation of TypeStore
type MockTypeStore struct {
	mock.Mock
}

func (m *MockTypeStore) FindAll(ctx context.Context) ([]models.Type, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Type), args.Error(1)
}

func (m *MockTypeStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAssetStore is a mock implementation of storage.Store
type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) Put(ctx context.Context, namespace, name string, content io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, namespace, name, content, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockAssetStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
