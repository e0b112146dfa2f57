package service

import (
	"context"
	"sync"

	dashboard "home_dashboard"
)

// stubBackend records calls and returns canned answers.
type stubBackend struct {
	mu sync.Mutex

	state    dashboard.StateResponse
	stateErr error

	cmdResp dashboard.CommandResponse
	cmdErr  error

	saveResp dashboard.SaveChoiceResponse
	saveErr  error
	// saveGate, when set, blocks ConfirmSave until closed.
	saveGate chan struct{}

	fetches  int
	commands []string
	choices  []string
}

func (b *stubBackend) FetchState(ctx context.Context) (dashboard.StateResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetches++
	return b.state, b.stateErr
}

func (b *stubBackend) SendCommand(ctx context.Context, command string) (dashboard.CommandResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands = append(b.commands, command)
	return b.cmdResp, b.cmdErr
}

func (b *stubBackend) ConfirmSave(ctx context.Context, choice string) (dashboard.SaveChoiceResponse, error) {
	b.mu.Lock()
	b.choices = append(b.choices, choice)
	gate := b.saveGate
	resp, err := b.saveResp, b.saveErr
	b.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return resp, err
}

func (b *stubBackend) fetchCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fetches
}

func (b *stubBackend) choiceCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.choices)
}

func boolPtr(b bool) *bool { return &b }
