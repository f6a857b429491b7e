package wlsrest

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSession is a mock implementation of Session for testing.
type MockSession struct {
	mock.Mock
}

// Get mocks the Get method.
func (m *MockSession) Get(ctx context.Context, url string, opts Options) (any, error) {
	args := m.Called(ctx, url, opts)
	return args.Get(0), args.Error(1)
}

// Post mocks the Post method.
func (m *MockSession) Post(ctx context.Context, url string, preferAsync bool, opts Options) (any, error) {
	args := m.Called(ctx, url, preferAsync, opts)
	return args.Get(0), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockSession) Delete(ctx context.Context, url string, preferAsync bool, opts Options) (any, error) {
	args := m.Called(ctx, url, preferAsync, opts)
	return args.Get(0), args.Error(1)
}
