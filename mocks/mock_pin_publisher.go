package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"versepin/internal/pinterest"
)

// MockPinPublisher is a mock implementation of port.PinPublisher.
type MockPinPublisher struct {
	mock.Mock
}

func (m *MockPinPublisher) CreatePin(ctx context.Context, record *pinterest.PinRecord) (*pinterest.PinResult, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pinterest.PinResult), args.Error(1)
}
