package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/sessionauth/auth"
	apperrors "github.com/kbukum/sessionauth/errors"
)

// Memory is a concurrency-safe in-memory user store. Emails are expected
// to be normalised by the caller.
type Memory struct {
	mu      sync.RWMutex
	byID    map[string]*auth.User
	byEmail map[string]string
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]string),
	}
}

// Store returns the collaborators backed by m.
func (m *Memory) Store() auth.Store {
	return auth.Store{
		FindByID:    m.FindByID,
		FindByEmail: m.FindByEmail,
		Create:      m.Create,
	}
}

// FindByID returns a copy of the user with id, or auth.ErrUserNotFound.
func (m *Memory) FindByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// FindByEmail returns a copy of the user with email, or auth.ErrUserNotFound.
func (m *Memory) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return cloneUser(m.byID[id]), nil
}

// Create stores a new user with a generated id. A taken email fails with
// ALREADY_EXISTS.
func (m *Memory) Create(_ context.Context, in auth.CreateUserInput) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.byEmail[in.Email]; taken {
		return nil, apperrors.AlreadyExists("User")
	}

	u := &auth.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Attributes:   cloneMap(in.Extra),
	}
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u.ID
	return cloneUser(u), nil
}

// Delete removes the user with id. Missing ids are ignored.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		delete(m.byEmail, u.Email)
		delete(m.byID, id)
	}
	return nil
}

// Len reports the number of stored users.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

func cloneUser(u *auth.User) *auth.User {
	c := *u
	c.Attributes = cloneMap(u.Attributes)
	return &c
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
