// Package dashboard owns the client's application state and drives the dashboard screens.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jakechorley/gramconnect/pkg/clients/marketclient"
	"github.com/jakechorley/gramconnect/pkg/core/cache"
	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/core/session"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Backend is the set of marketplace calls the dashboard makes
type Backend interface {
	cache.Source
	Signup(ctx context.Context, req model.SignupRequest) marketclient.Response
	Login(ctx context.Context, req model.LoginRequest) marketclient.Response
	PostJob(ctx context.Context, req model.PostJobRequest) marketclient.Response
	UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) marketclient.Response
	Apply(ctx context.Context, jobID string) marketclient.Response
}

// AppState is the client's single source of who is logged in plus the cached collections
type AppState struct {
	store   session.Store
	backend Backend
	cache   *cache.Cache

	mu       sync.RWMutex
	identity *model.Identity
}

func NewAppState(store session.Store, backend Backend) *AppState {
	a := &AppState{store: store, backend: backend}
	a.cache = cache.New(backend, a.LoggedIn)
	return a
}

// Init restores the identity from the session store
func (a *AppState) Init() error {
	identity, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	a.mu.Lock()
	a.identity = identity
	a.mu.Unlock()
	return nil
}

// Identity returns a copy of the current identity, or nil when logged out
func (a *AppState) Identity() *model.Identity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.identity == nil {
		return nil
	}
	cp := *a.identity
	return &cp
}

// CurrentID returns the identity ID, or "" when logged out
func (a *AppState) CurrentID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.identity == nil {
		return ""
	}
	return a.identity.ID
}

func (a *AppState) LoggedIn() bool {
	return a.CurrentID() != ""
}

func (a *AppState) Cache() *cache.Cache {
	return a.cache
}

// Signup registers an account. It does not log in.
func (a *AppState) Signup(ctx context.Context, req model.SignupRequest) error {
	resp := a.backend.Signup(ctx, req)
	if !resp.Success {
		return errors.New(orFallback(resp.Error, "Registration failed"))
	}
	return nil
}

// Login authenticates and persists the identity to the session store
func (a *AppState) Login(ctx context.Context, req model.LoginRequest) (*model.Identity, error) {
	resp := a.backend.Login(ctx, req)
	if !resp.Success || resp.User == nil {
		return nil, errors.New(orFallback(resp.Error, "Login failed"))
	}

	if err := a.store.Save(*resp.User); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	a.mu.Lock()
	a.identity = resp.User
	a.mu.Unlock()

	// A different user must not see the previous user's collections
	a.cache.Reset()
	return a.Identity(), nil
}

// Logout clears the session store, the identity and the cache
func (a *AppState) Logout() error {
	if err := a.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	a.mu.Lock()
	a.identity = nil
	a.mu.Unlock()

	a.cache.Reset()
	return nil
}

func orFallback(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
