package university

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/registrar/pkg/audit"
	"github.com/doodlesbykumbi/registrar/pkg/executor"
	"github.com/doodlesbykumbi/registrar/pkg/permission"
	"github.com/doodlesbykumbi/registrar/pkg/session"
	"github.com/doodlesbykumbi/registrar/pkg/statement"
)

// Store is the connection the catalog runs on.
type Store interface {
	executor.Conn
	Gorm(ctx context.Context) *gorm.DB
}

// Catalog runs registrar operations for the principal logged in to a session.
// Like the executor it wraps, it is not safe for concurrent use.
type Catalog struct {
	store    Store
	exec     *executor.Executor
	registry *session.Registry
	session  *session.Session
	term     Term
	sink     audit.Sink
	logger   *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithTerm sets the registration term.
func WithTerm(term Term) Option {
	return func(c *Catalog) {
		c.term = term
	}
}

// WithAuditSink sends statement events to sink.
func WithAuditSink(sink audit.Sink) Option {
	return func(c *Catalog) {
		if sink != nil {
			c.sink = sink
		}
	}
}

// WithLogger sets the logger handed to the executor.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a catalog over store. Principals added with AddPrincipal go to
// registry; permission checks use sess.
func New(store Store, registry *session.Registry, sess *session.Session, opts ...Option) *Catalog {
	c := &Catalog{
		store:    store,
		registry: registry,
		session:  sess,
		term:     DefaultTerm,
		sink:     audit.Default,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.exec = executor.New(store, executor.WithLogger(c.logger))
	return c
}

// LastError returns the last error recorded by the executor.
func (c *Catalog) LastError() error {
	return c.exec.LastError()
}

// Close releases any open cursor.
func (c *Catalog) Close() {
	c.exec.Close()
}

// AddPrincipal registers a principal. Students also get a student row if
// one does not already exist for their ID.
func (c *Catalog) AddPrincipal(ctx context.Context, name, secret string, role permission.Role) (session.Principal, error) {
	p, err := c.registry.Register(name, secret, role)
	if err != nil {
		return session.Principal{}, err
	}
	if role != permission.RoleStudent {
		return p, nil
	}

	student := Student{ID: p.StudentID(), Name: p.Name, DeptName: DefaultDepartment}
	created := false
	err = c.store.Gorm(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Student{}).Where("id = ?", student.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		created = true
		return tx.Create(&student).Error
	})
	if err != nil {
		return p, err
	}
	if created {
		c.logger.Info("created student record", slog.String("name", p.Name), slog.Int("id", int(student.ID)))
	}
	return p, nil
}

func (c *Catalog) principal() session.Principal {
	p, _ := c.session.Current()
	return p
}

func (c *Catalog) authorize(table permission.Table, op permission.Operation) error {
	if !c.session.Authorize(table, op) {
		return forbidden(table, op)
	}
	return nil
}

// student returns the current principal's student ID.
func (c *Catalog) student() (session.Principal, string, error) {
	p, ok := c.session.Current()
	if !ok || p.Role != permission.RoleStudent {
		return session.Principal{}, "", ErrNotStudent
	}
	return p, strconv.Itoa(int(p.StudentID())), nil
}

// query reads every row of stmt.
func (c *Catalog) query(ctx context.Context, stmt statement.Statement, columns []string) (Result, error) {
	cursor, err := c.exec.Execute(ctx, stmt)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = cursor.Close() }()

	result := Result{Columns: append([]string(nil), columns...)}
	for cursor.Next() {
		row := make([]string, len(columns))
		for i, col := range columns {
			if row[i], err = cursor.Column(col); err != nil {
				return Result{}, err
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := cursor.Err(); err != nil {
		return Result{}, err
	}
	return result, nil
}

// run executes a data-manipulation statement and audits the outcome. When
// requireMatch is set an untouched table is reported as ErrNoMatch.
func (c *Catalog) run(ctx context.Context, table permission.Table, op permission.Operation, stmt statement.Statement, buildErr error, requireMatch bool) error {
	err := buildErr
	if err == nil {
		var ack executor.Ack
		ack, err = c.exec.Run(ctx, stmt)
		if err == nil && requireMatch && ack.RowsAffected == 0 {
			err = ErrNoMatch
		}
	}

	event := audit.StatementEvent{
		Principal: c.principal().Name,
		Table:     table.String(),
		Operation: op.String(),
		Success:   err == nil,
	}
	if err != nil && !errors.Is(err, ErrNoMatch) {
		event.ErrorMessage = err.Error()
	}
	c.sink.Log(event)
	return err
}
