package executor

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/doodlesbykumbi/registrar/pkg/statement"
)

// Conn is the part of the store connection the executor needs.
type Conn interface {
	SQL() *sql.DB
	IsClosed() bool
}

// Ack acknowledges a statement that produced no rows.
type Ack struct {
	RowsAffected int64
}

// Executor runs statements on one connection with at most one live cursor.
// It is not safe for concurrent use.
type Executor struct {
	conn    Conn
	logger  *slog.Logger
	cursor  *Cursor
	lastErr error
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger statements are traced to at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Executor over conn.
func New(conn Conn, opts ...Option) *Executor {
	e := &Executor{
		conn:   conn,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LastError returns the most recent execution error, or nil.
func (e *Executor) LastError() error {
	return e.lastErr
}

func (e *Executor) record(err *ExecutionError) error {
	e.lastErr = err
	e.logger.Debug("statement failed",
		slog.String("kind", err.Kind.String()),
		slog.String("sql", err.Statement),
		slog.Any("error", err.Err))
	return err
}

// release closes the live cursor, if any.
func (e *Executor) release() {
	if e.cursor != nil {
		_ = e.cursor.Close()
		e.cursor = nil
	}
}

// Execute runs a row-returning statement and opens a cursor on its result.
// The previous cursor is closed first.
func (e *Executor) Execute(ctx context.Context, stmt statement.Statement) (*Cursor, error) {
	e.release()
	if e.conn.IsClosed() {
		return nil, e.record(&ExecutionError{Kind: KindConnectionClosed, Statement: stmt.SQL})
	}

	e.logger.Debug("executing query", slog.String("sql", stmt.SQL), slog.Int("args", len(stmt.Args)))
	rows, err := e.conn.SQL().QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, e.record(&ExecutionError{Kind: KindRejected, Statement: stmt.SQL, Err: err})
	}

	cols, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, e.record(&ExecutionError{Kind: KindRejected, Statement: stmt.SQL, Err: err})
	}

	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}
	e.cursor = &Cursor{
		exec:      e,
		statement: stmt.SQL,
		rows:      rows,
		columns:   index,
		values:    make([]sql.NullString, len(cols)),
	}
	return e.cursor, nil
}

// Run executes a statement with no row results.
func (e *Executor) Run(ctx context.Context, stmt statement.Statement) (Ack, error) {
	e.release()
	if e.conn.IsClosed() {
		return Ack{}, e.record(&ExecutionError{Kind: KindConnectionClosed, Statement: stmt.SQL})
	}

	e.logger.Debug("executing command", slog.String("sql", stmt.SQL), slog.Int("args", len(stmt.Args)))
	res, err := e.conn.SQL().ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return Ack{}, e.record(&ExecutionError{Kind: KindRejected, Statement: stmt.SQL, Err: err})
	}

	affected, err := res.RowsAffected()
	if err != nil {
		affected = 0
	}
	return Ack{RowsAffected: affected}, nil
}

// Close releases the live cursor. The connection is not closed.
func (e *Executor) Close() {
	e.release()
}
