package university

import (
	"errors"
	"fmt"

	"github.com/doodlesbykumbi/registrar/pkg/permission"
	"github.com/doodlesbykumbi/registrar/pkg/statement"
)

var (
	// ErrForbidden is returned when the current principal may not perform
	// the requested operation.
	ErrForbidden = errors.New("operation not permitted")
	// ErrNoMatch is returned when an update or delete touched no rows.
	ErrNoMatch = errors.New("no matching rows")
	// ErrNotStudent is returned by student operations when nobody, or a
	// non-student, is logged in.
	ErrNotStudent = errors.New("a student must be logged in")
)

func forbidden(table permission.Table, op permission.Operation) error {
	return fmt.Errorf("%s on %s: %w", op, table, ErrForbidden)
}

func missingKey(column string) error {
	return fmt.Errorf("%w: %s is required", statement.ErrValidation, column)
}
