package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCommandExecutor is a testify mock for cmdexec.Executor.
// Variadic args are recorded as a single []string argument:
//
//	m.On("Run", mock.Anything, "sudo", []string{"pacman", "-S", "rust"}).Return(nil)
type MockCommandExecutor struct {
	mock.Mock
}

// NewMockCommandExecutor returns a mock on which every call succeeds unless
// overridden. Clear ExpectedCalls first to assert exact behavior.
func NewMockCommandExecutor() *MockCommandExecutor {
	m := &MockCommandExecutor{}
	m.On("Run", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil).Maybe()
	m.On("CombinedOutput", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return([]byte{}, nil).Maybe()
	m.On("Stream", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).Return(nil).Maybe()
	return m
}

func (m *MockCommandExecutor) Run(ctx context.Context, name string, args ...string) error {
	called := m.Called(ctx, name, args)
	return called.Error(0)
}

func (m *MockCommandExecutor) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	called := m.Called(ctx, name, args)
	out, _ := called.Get(0).([]byte)
	return out, called.Error(1)
}

func (m *MockCommandExecutor) Stream(ctx context.Context, dir, name string, args ...string) error {
	called := m.Called(ctx, dir, name, args)
	return called.Error(0)
}
