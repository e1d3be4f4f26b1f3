package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRecipeStore is a mock implementation of storage.RecipeStore
type MockRecipeStore struct {
	mock.Mock
}

func (m *MockRecipeStore) FindAll(ctx context.Context) ([]map[string]interface{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]interface{}), args.Error(1)
}

func (m *MockRecipeStore) FindByTitle(ctx context.Context, title string) (map[string]interface{}, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockRecipeStore) InsertMany(ctx context.Context, docs []map[string]interface{}) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

func (m *MockRecipeStore) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRecipeStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecipeStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRecipeStore) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
