// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"time"

	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockSyncTransport struct {
	mock.Mock
}

func (m *MockSyncTransport) Send(ctx context.Context, payload model.SyncPayload) (model.SyncReceipt, error) {
	args := m.Called(ctx, payload)
	receipt, _ := args.Get(0).(model.SyncReceipt)
	return receipt, args.Error(1)
}

type MockConnectivity struct {
	mock.Mock
}

func (m *MockConnectivity) Online() bool {
	return m.Called().Bool(0)
}

func (m *MockConnectivity) CheckedAt() time.Time {
	args := m.Called()
	at, _ := args.Get(0).(time.Time)
	return at
}

type MockLabelEmitter struct {
	mock.Mock
}

func (m *MockLabelEmitter) Emit(ctx context.Context, command string) error {
	args := m.Called(ctx, command)
	return args.Error(0)
}
