// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockActivityRecorder struct {
	mock.Mock
}

func (m *MockActivityRecorder) Record(entry *model.ActivityEntry) bool {
	args := m.Called(entry)
	return args.Bool(0)
}
