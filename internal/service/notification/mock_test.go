package notification

import (
	"context"

	"github.com/stretchr/testify/mock"
)

var _ Provider = (*mockProvider)(nil)

// mockProvider Provider 인터페이스의 testify/mock 구현체입니다.
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Initialize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockProvider) Send(ctx context.Context, recipientID string, n Notification) bool {
	args := m.Called(ctx, recipientID, n)
	return args.Bool(0)
}

// providerFunc 함수 하나로 Provider를 구성하는 테스트 헬퍼입니다.
type providerFunc func(ctx context.Context, recipientID string, n Notification) bool

func (f providerFunc) Initialize(context.Context) error { return nil }

func (f providerFunc) Send(ctx context.Context, recipientID string, n Notification) bool {
	return f(ctx, recipientID, n)
}
