package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/doodlesbykumbi/registrar/pkg/permission"
)

var (
	// ErrEmptyName is returned when registering a principal without a name.
	ErrEmptyName = errors.New("principal name must not be empty")
	// ErrEmptySecret is returned when registering a principal without a secret.
	ErrEmptySecret = errors.New("principal secret must not be empty")
)

// Registry holds registered principals in registration order.
type Registry struct {
	mu         sync.RWMutex
	principals []Principal
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a principal. Duplicates are allowed; the first match wins
// at authentication time.
func (r *Registry) Register(name, secret string, role permission.Role) (Principal, error) {
	if name == "" {
		return Principal{}, ErrEmptyName
	}
	if secret == "" {
		return Principal{}, fmt.Errorf("%q: %w", name, ErrEmptySecret)
	}
	if !role.IsARole() {
		return Principal{}, fmt.Errorf("%q: unknown role %s", name, role)
	}

	p := Principal{Name: name, Secret: secret, Role: role}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.principals = append(r.principals, p)
	return p, nil
}

// Len returns the number of registered principals.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.principals)
}

func (r *Registry) find(name, secret string) (Principal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	want := Principal{Name: name, Secret: secret}
	for _, p := range r.principals {
		if p.Equal(want) {
			return p, true
		}
	}
	return Principal{}, false
}
