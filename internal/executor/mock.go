package executor

import (
	"context"
	"sync"
)

// MockExecutor records every command and delegates to RunFunc when set.
// Without RunFunc every command succeeds with an empty Result.
type MockExecutor struct {
	RunFunc func(ctx context.Context, cmd Command) (Result, error)

	mu    sync.Mutex
	calls []Command
}

func (m *MockExecutor) Run(ctx context.Context, cmd Command) (Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, cmd)
	}
	return Result{}, nil
}

// Calls returns a copy of the commands seen so far.
func (m *MockExecutor) Calls() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Command, len(m.calls))
	copy(out, m.calls)
	return out
}
