package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payproc/internal/port"
)

// MockTextModel is a mock implementation of port.TextModel.
type MockTextModel struct {
	mock.Mock
}

func (m *MockTextModel) Complete(ctx context.Context, req port.Completion) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
