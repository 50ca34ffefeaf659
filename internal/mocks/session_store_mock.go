// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Load(ctx context.Context, deviceID string) (*model.SessionState, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SessionState), args.Error(1)
}

func (m *MockSessionStore) Save(ctx context.Context, deviceID string, state model.SessionState) error {
	args := m.Called(ctx, deviceID, state)
	return args.Error(0)
}
