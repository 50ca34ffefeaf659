// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, entry *model.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityRepository) CreateMany(ctx context.Context, entries []*model.ActivityEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockActivityRepository) Query(ctx context.Context, opts model.ActivityQueryOptions) ([]*model.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ActivityEntry), args.Error(1)
}

func (m *MockActivityRepository) Count(ctx context.Context, opts model.ActivityQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}
