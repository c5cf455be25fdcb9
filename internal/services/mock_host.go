package services

import (
	"context"
	"sync"
)

// MockHostBridge simulates the chat-platform mini-app runtime so the
// purchase flows can run outside a real host container (development,
// tests).
type MockHostBridge struct {
	mu sync.Mutex

	// InHost controls the environment check result
	InHost bool
	// DialogResult is the status string the simulated dialog resolves to
	DialogResult string
	// DialogErr, when set, makes OpenInvoice fail instead
	DialogErr error
	// Block, when set, makes OpenInvoice wait until the context is done
	Block bool

	OpenedSlugs []string
}

// NewMockHostBridge creates a bridge that reports a host environment and
// resolves every dialog as paid.
func NewMockHostBridge() *MockHostBridge {
	return &MockHostBridge{
		InHost:       true,
		DialogResult: "paid",
	}
}

// IsHostEnvironment reports the configured environment check result
func (m *MockHostBridge) IsHostEnvironment(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.InHost, nil
}

// OpenInvoice simulates the blocking payment dialog
func (m *MockHostBridge) OpenInvoice(ctx context.Context, slug string) (string, error) {
	m.mu.Lock()
	m.OpenedSlugs = append(m.OpenedSlugs, slug)
	block, result, err := m.Block, m.DialogResult, m.DialogErr
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err != nil {
		return "", err
	}
	return result, nil
}
