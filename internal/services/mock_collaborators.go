package services

import (
	"context"
	"sync"
)

// MockNavigator records navigation hand-offs instead of driving a UI
type MockNavigator struct {
	mu sync.Mutex

	SuccessCalls []SuccessCall
	ExternalURLs []string
	OpenErr      error
}

// SuccessCall captures one success-screen hand-off
type SuccessCall struct {
	Product ProductType
	Ref     string
}

func (m *MockNavigator) ShowSuccess(ctx context.Context, product ProductType, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuccessCalls = append(m.SuccessCalls, SuccessCall{Product: product, Ref: ref})
	return nil
}

func (m *MockNavigator) OpenExternalURL(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OpenErr != nil {
		return m.OpenErr
	}
	m.ExternalURLs = append(m.ExternalURLs, url)
	return nil
}

// MockErrorPresenter is an in-memory stand-in for the single UI error slot
type MockErrorPresenter struct {
	mu sync.Mutex

	Current string
	Shown   []string
	Cleared int
}

func (m *MockErrorPresenter) ShowError(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Current = message
	m.Shown = append(m.Shown, message)
}

func (m *MockErrorPresenter) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Current = ""
	m.Cleared++
}

// MockReauthHandler counts silent re-authentication hand-offs
type MockReauthHandler struct {
	mu    sync.Mutex
	Calls int
}

func (m *MockReauthHandler) RequireReauth(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
}
