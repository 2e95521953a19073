package session

import (
	"errors"

	"github.com/doodlesbykumbi/registrar/pkg/audit"
	"github.com/doodlesbykumbi/registrar/pkg/permission"
)

// ErrInvalidCredentials is returned for an unknown name and for a wrong
// secret alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Session holds at most one authenticated principal. There is no logout;
// a later successful Authenticate replaces the current principal.
type Session struct {
	registry *Registry
	sink     audit.Sink

	current      Principal
	capabilities permission.Capabilities
	active       bool
}

// Option configures a Session.
type Option func(*Session)

// WithAuditSink sends authentication and check events to sink.
func WithAuditSink(sink audit.Sink) Option {
	return func(s *Session) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// New creates a session over registry with nobody logged in.
func New(registry *Registry, opts ...Option) *Session {
	s := &Session{
		registry:     registry,
		sink:         audit.Default,
		capabilities: permission.CapabilitiesFor(permission.RoleNone),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate logs in the principal matching name and secret exactly.
// On failure the current principal is left unchanged.
func (s *Session) Authenticate(name, secret string) (Principal, error) {
	p, ok := s.registry.find(name, secret)
	if !ok {
		s.sink.Log(audit.AuthenticateEvent{Principal: name})
		return Principal{}, ErrInvalidCredentials
	}

	s.current = p
	s.capabilities = permission.CapabilitiesFor(p.Role)
	s.active = true
	s.sink.Log(audit.AuthenticateEvent{Principal: p.Name, Role: p.Role.String(), Success: true})
	return p, nil
}

// Current returns the authenticated principal, if any.
func (s *Session) Current() (Principal, bool) {
	return s.current, s.active
}

// Role returns the role of the current principal, or RoleNone.
func (s *Session) Role() permission.Role {
	if !s.active {
		return permission.RoleNone
	}
	return s.current.Role
}

// Authorize reports whether the current principal may perform op on table.
func (s *Session) Authorize(table permission.Table, op permission.Operation) bool {
	allowed := s.active && s.capabilities.Allows(table, op)
	s.sink.Log(audit.CheckEvent{
		Principal: s.current.Name,
		Table:     table.String(),
		Operation: op.String(),
		Allowed:   allowed,
	})
	return allowed
}

// Tables lists the tables the current principal can reach, in menu order.
func (s *Session) Tables() []permission.Table {
	return s.capabilities.Tables()
}

// OperationsFor lists the operations allowed on table, in menu order.
func (s *Session) OperationsFor(table permission.Table) []permission.Operation {
	return s.capabilities.OperationsFor(table).Operations()
}
