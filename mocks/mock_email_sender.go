package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendParseFailureNotice(ctx context.Context, postID, fileName, reason string) error {
	args := m.Called(ctx, postID, fileName, reason)
	return args.Error(0)
}

func (m *MockEmailSender) SendPublishFailureNotice(ctx context.Context, postID, fileName, reason string) error {
	args := m.Called(ctx, postID, fileName, reason)
	return args.Error(0)
}
