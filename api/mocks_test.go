package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/rpupo63/portfolio-admin-backend/services"
	"github.com/stretchr/testify/mock"
)

// MockProjectLifecycle is a mock implementation of ProjectLifecycle
type MockProjectLifecycle struct {
	mock.Mock
}

func (m *MockProjectLifecycle) List(ctx context.Context, page int) (*services.ProjectPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ProjectPage), args.Error(1)
}

func (m *MockProjectLifecycle) CreateForm(ctx context.Context) (*services.FormLookups, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.FormLookups), args.Error(1)
}

func (m *MockProjectLifecycle) Create(ctx context.Context, input services.ProjectInput) (*services.Result, error) {
	return m.result(m.Called(ctx, input))
}

func (m *MockProjectLifecycle) Show(ctx context.Context, id uuid.UUID) (*services.ShowView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ShowView), args.Error(1)
}

func (m *MockProjectLifecycle) Edit(ctx context.Context, id uuid.UUID) (*services.EditView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.EditView), args.Error(1)
}

func (m *MockProjectLifecycle) Update(ctx context.Context, id uuid.UUID, input services.ProjectInput) (*services.Result, error) {
	return m.result(m.Called(ctx, id, input))
}

func (m *MockProjectLifecycle) Destroy(ctx context.Context, id uuid.UUID) (*services.Result, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockProjectLifecycle) Trash(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectLifecycle) Restore(ctx context.Context, id uuid.UUID) (*services.Result, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockProjectLifecycle) Drop(ctx context.Context, id uuid.UUID) (*services.Result, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockProjectLifecycle) Types(ctx context.Context) ([]models.Type, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Type), args.Error(1)
}

func (m *MockProjectLifecycle) Technologies(ctx context.Context) ([]models.Technology, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Technology), args.Error(1)
}

func (m *MockProjectLifecycle) result(args mock.Arguments) (*services.Result, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Result), args.Error(1)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping() error {
	return p.err
}
