package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCommandRunner is a mock implementation of CommandRunner for testing.
type MockCommandRunner struct {
	mock.Mock
}

var _ CommandRunner = &MockCommandRunner{} // Compile-time check

// Run implements the CommandRunner interface.
func (m *MockCommandRunner) Run(ctx context.Context, dir string, command string) (CommandOutput, error) {
	ret := m.Called(ctx, dir, command)
	out, _ := ret.Get(0).(CommandOutput)
	return out, ret.Error(1)
}
