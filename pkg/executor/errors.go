package executor

import "fmt"

// ErrorKind classifies an ExecutionError.
type ErrorKind int

const (
	// KindRejected means the store rejected the statement.
	KindRejected ErrorKind = iota
	// KindConnectionClosed means the connection was closed before the call.
	KindConnectionClosed
	// KindMissingColumn means a requested column is not in the result set.
	KindMissingColumn
	// KindNoRow means a column was read without a current row.
	KindNoRow
)

func (k ErrorKind) String() string {
	switch k {
	case KindRejected:
		return "rejected"
	case KindConnectionClosed:
		return "connection closed"
	case KindMissingColumn:
		return "missing column"
	case KindNoRow:
		return "no current row"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ErrConnectionClosed matches any ExecutionError of KindConnectionClosed.
var ErrConnectionClosed = &ExecutionError{Kind: KindConnectionClosed}

// ErrMissingColumn matches any ExecutionError of KindMissingColumn.
var ErrMissingColumn = &ExecutionError{Kind: KindMissingColumn}

// ExecutionError reports a failure at the store boundary.
type ExecutionError struct {
	Kind      ErrorKind
	Statement string
	Column    string
	Err       error
}

func (e *ExecutionError) Error() string {
	msg := "execution failed: " + e.Kind.String()
	if e.Column != "" {
		msg += fmt.Sprintf(" %q", e.Column)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Is matches on Kind so errors.Is(err, ErrMissingColumn) works.
func (e *ExecutionError) Is(target error) bool {
	t, ok := target.(*ExecutionError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Column == "" && t.Statement == "" && t.Err == nil
}
