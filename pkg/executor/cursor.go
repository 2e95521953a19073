package executor

import (
	"database/sql"
	"strings"
)

// TupleSeparator joins column values of one row in Columns.
const TupleSeparator = ":"

// NullValue is how SQL NULL reads back through a cursor.
const NullValue = "null"

// Cursor iterates the result set of one query.
type Cursor struct {
	exec      *Executor
	statement string
	rows      *sql.Rows
	columns   map[string]int
	values    []sql.NullString
	hasRow    bool
	closed    bool
	err       error
}

// Next advances to the next row. It returns false when the rows are
// exhausted, on error, or once the cursor is closed; the cursor closes itself
// at the end.
func (c *Cursor) Next() bool {
	if c.closed {
		return false
	}
	c.hasRow = false
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			c.fail(&ExecutionError{Kind: KindRejected, Statement: c.statement, Err: err})
		}
		_ = c.Close()
		return false
	}

	dest := make([]any, len(c.values))
	for i := range c.values {
		dest[i] = &c.values[i]
	}
	if err := c.rows.Scan(dest...); err != nil {
		c.fail(&ExecutionError{Kind: KindRejected, Statement: c.statement, Err: err})
		_ = c.Close()
		return false
	}
	c.hasRow = true
	return true
}

func (c *Cursor) fail(err *ExecutionError) error {
	c.err = err
	return c.exec.record(err)
}

// Err returns the error that stopped iteration, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Column returns the named column of the current row.
func (c *Cursor) Column(name string) (string, error) {
	idx, ok := c.columns[name]
	if !ok {
		return "", c.fail(&ExecutionError{Kind: KindMissingColumn, Statement: c.statement, Column: name})
	}
	if !c.hasRow {
		return "", c.fail(&ExecutionError{Kind: KindNoRow, Statement: c.statement, Column: name})
	}
	v := c.values[idx]
	if !v.Valid {
		return NullValue, nil
	}
	return v.String, nil
}

// Columns joins the named columns of the current row with TupleSeparator, in
// the order requested.
func (c *Cursor) Columns(names ...string) (string, error) {
	parts := make([]string, len(names))
	for i, name := range names {
		v, err := c.Column(name)
		if err != nil {
			return "", err
		}
		parts[i] = v
	}
	return strings.Join(parts, TupleSeparator), nil
}

// Tuples drains the cursor, returning Columns(names...) for every row. The
// cursor is closed when it returns.
func (c *Cursor) Tuples(names ...string) ([]string, error) {
	defer func() { _ = c.Close() }()

	var tuples []string
	for c.Next() {
		tuple, err := c.Columns(names...)
		if err != nil {
			return nil, err
		}
		tuples = append(tuples, tuple)
	}
	if c.err != nil {
		return nil, c.err
	}
	return tuples, nil
}

// Close releases the cursor. Closing a closed cursor is a no-op.
func (c *Cursor) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true
	c.hasRow = false
	if c.exec != nil && c.exec.cursor == c {
		c.exec.cursor = nil
	}
	return c.rows.Close()
}
