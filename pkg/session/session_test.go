package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/registrar/pkg/audit"
	"github.com/doodlesbykumbi/registrar/pkg/permission"
)

type recorder struct {
	events []audit.Event
}

func (r *recorder) Log(e audit.Event) {
	r.events = append(r.events, e)
}

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	_, err := r.Register("brown", "brown123", permission.RoleStaff)
	require.NoError(t, err)
	_, err = r.Register("grey", "grey123", permission.RoleStudent)
	require.NoError(t, err)
	return r
}

func TestRegistry_Register(t *testing.T) {
	tests := []struct {
		name    string
		login   string
		secret  string
		role    permission.Role
		wantErr error
	}{
		{name: "staff", login: "brown", secret: "brown123", role: permission.RoleStaff},
		{name: "empty name", login: "", secret: "x", role: permission.RoleStaff, wantErr: ErrEmptyName},
		{name: "empty secret", login: "grey", secret: "", role: permission.RoleStudent, wantErr: ErrEmptySecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			p, err := r.Register(tt.login, tt.secret, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, r.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Principal{Name: tt.login, Secret: tt.secret, Role: tt.role}, p)
			assert.Equal(t, 1, r.Len())
		})
	}

	t.Run("unknown role", func(t *testing.T) {
		_, err := NewRegistry().Register("x", "y", permission.Role(9))
		assert.Error(t, err)
	})
}

func TestSession_Authenticate(t *testing.T) {
	t.Run("success sets current", func(t *testing.T) {
		rec := &recorder{}
		s := New(newRegistry(t), WithAuditSink(rec))

		p, err := s.Authenticate("grey", "grey123")
		require.NoError(t, err)
		assert.Equal(t, permission.RoleStudent, p.Role)

		current, ok := s.Current()
		assert.True(t, ok)
		assert.Equal(t, "grey", current.Name)

		require.Len(t, rec.events, 1)
		assert.Equal(t, audit.AuthenticateEvent{Principal: "grey", Role: "Student", Success: true}, rec.events[0])
	})

	t.Run("wrong secret and unknown name fail alike", func(t *testing.T) {
		s := New(newRegistry(t), WithAuditSink(&recorder{}))

		_, errWrongSecret := s.Authenticate("grey", "nope")
		_, errUnknown := s.Authenticate("nobody", "grey123")

		assert.ErrorIs(t, errWrongSecret, ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.Equal(t, errWrongSecret.Error(), errUnknown.Error())

		_, ok := s.Current()
		assert.False(t, ok)
		assert.Equal(t, permission.RoleNone, s.Role())
	})

	t.Run("failure keeps previous principal", func(t *testing.T) {
		s := New(newRegistry(t), WithAuditSink(&recorder{}))
		_, err := s.Authenticate("brown", "brown123")
		require.NoError(t, err)

		_, err = s.Authenticate("grey", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		current, _ := s.Current()
		assert.Equal(t, "brown", current.Name)
	})

	t.Run("match is exact", func(t *testing.T) {
		s := New(newRegistry(t), WithAuditSink(&recorder{}))
		_, err := s.Authenticate("Grey", "grey123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSession_Authorize(t *testing.T) {
	rec := &recorder{}
	s := New(newRegistry(t), WithAuditSink(rec))

	assert.False(t, s.Authorize(permission.TableCourse, permission.OperationRetrieve))
	assert.Empty(t, s.Tables())

	_, err := s.Authenticate("brown", "brown123")
	require.NoError(t, err)
	rec.events = nil

	assert.True(t, s.Authorize(permission.TableCourse, permission.OperationDelete))
	assert.False(t, s.Authorize(permission.TableTakes, permission.OperationRegister))
	assert.Equal(t,
		[]permission.Table{permission.TableCourse, permission.TableSection, permission.TableDepartment},
		s.Tables())
	assert.Equal(t, []permission.Operation{permission.OperationRetrieve}, s.OperationsFor(permission.TableDepartment))
	assert.Empty(t, s.OperationsFor(permission.TableTranscript))

	require.Len(t, rec.events, 2)
	assert.Equal(t, audit.CheckEvent{Principal: "brown", Table: "course", Operation: "Delete", Allowed: true}, rec.events[0])
	assert.Equal(t, audit.CheckEvent{Principal: "brown", Table: "takes", Operation: "Register", Allowed: false}, rec.events[1])
}

func TestPrincipal_StudentID(t *testing.T) {
	tests := []struct {
		name string
		want int32
	}{
		{"grey", 12426},
		{"brown", 367233},
		{"alexandra the great student", -7365989},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Principal{Name: tt.name}.StudentID())
		})
	}
}

func TestPrincipal_Equal(t *testing.T) {
	a := Principal{Name: "grey", Secret: "grey123", Role: permission.RoleStudent}
	b := Principal{Name: "grey", Secret: "grey123", Role: permission.RoleStaff}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Principal{Name: "grey", Secret: "x"}))
}
