package backendfakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-tenant-client/sessions"
)

var _ sessions.Backend = (*FakeBackend)(nil)

// FakeBackend is a hand-rolled sessions.Backend for tests. Configure the
// canned results/errors, then inspect the recorded calls.
type FakeBackend struct {
	lock sync.Mutex

	LoginResult    *sessions.LoginResult
	LoginErr       error
	RegisterResult *sessions.LoginResult
	RegisterErr    error
	RefreshResult  *sessions.TokenPair
	RefreshErr     error

	LoginCalls    []sessions.Credentials
	RegisterCalls []sessions.Registration
	RefreshCalls  []string
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{}
}

func (b *FakeBackend) Login(_ context.Context, credentials sessions.Credentials) (*sessions.LoginResult, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.LoginCalls = append(b.LoginCalls, credentials)
	if b.LoginErr != nil {
		return nil, b.LoginErr
	}
	return b.LoginResult, nil
}

func (b *FakeBackend) Register(_ context.Context, registration sessions.Registration) (*sessions.LoginResult, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.RegisterCalls = append(b.RegisterCalls, registration)
	if b.RegisterErr != nil {
		return nil, b.RegisterErr
	}
	return b.RegisterResult, nil
}

func (b *FakeBackend) Refresh(_ context.Context, refreshToken string) (*sessions.TokenPair, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.RefreshCalls = append(b.RefreshCalls, refreshToken)
	if b.RefreshErr != nil {
		return nil, b.RefreshErr
	}
	return b.RefreshResult, nil
}
