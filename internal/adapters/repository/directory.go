package repository

import (
	"context"
	"sync"

	"github.com/okian/skillswap/internal/domain/model"
)

// InMemoryDirectory implements Directory with a map index plus an
// ordered id slice so candidate listings are deterministic.
type InMemoryDirectory struct {
	mu    sync.RWMutex
	users map[string]model.User
	order []string
}

// NewInMemoryDirectory creates an empty in-memory directory.
func NewInMemoryDirectory(opts ...DirectoryOption) *InMemoryDirectory {
	d := &InMemoryDirectory{
		users: make(map[string]model.User),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DirectoryOption applies a configuration option to the directory.
type DirectoryOption func(*InMemoryDirectory)

// WithInitialUsers preloads the directory, preserving slice order.
func WithInitialUsers(users []model.User) DirectoryOption {
	return func(d *InMemoryDirectory) {
		for _, u := range users {
			if _, exists := d.users[u.ID]; !exists {
				d.order = append(d.order, u.ID)
			}
			d.users[u.ID] = u
		}
	}
}

// ListUsers returns all users in insertion order.
func (d *InMemoryDirectory) ListUsers(_ context.Context) ([]model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]model.User, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.users[id])
	}
	return out, nil
}

// GetUser returns the user with the given id.
func (d *InMemoryDirectory) GetUser(_ context.Context, id string) (model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// UpsertUser inserts or replaces the user, keeping insertion order.
func (d *InMemoryDirectory) UpsertUser(_ context.Context, u model.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.users[u.ID]; !exists {
		d.order = append(d.order, u.ID)
	}
	d.users[u.ID] = u
	return nil
}

// RemoveUser deletes the user with the given id.
func (d *InMemoryDirectory) RemoveUser(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.users[id]; !ok {
		return ErrNotFound
	}
	delete(d.users, id)
	for i, oid := range d.order {
		if oid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of users.
func (d *InMemoryDirectory) Count(_ context.Context) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}

// Clear removes all users.
func (d *InMemoryDirectory) Clear(_ context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = make(map[string]model.User)
	d.order = nil
}
