package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Schema creates the table Save writes to.
const Schema = `CREATE TABLE IF NOT EXISTS messages (
	facility  integer     NOT NULL,
	severity  integer     NOT NULL,
	timestamp timestamptz NOT NULL,
	hostname  text,
	appname   text,
	procid    text,
	msgid     text,
	sdata     jsonb,
	message   text        NOT NULL
)`

const insertMessage = `INSERT INTO messages (facility, severity, timestamp, hostname, appname, procid, msgid, sdata, message)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Store persists audit events to a Postgres messages table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens the store named by REGISTRAR_AUDIT_DATABASE_URL.
// Returns nil if the variable is unset (audit DB disabled).
func NewStore() (*Store, error) {
	dbURL := os.Getenv("REGISTRAR_AUDIT_DATABASE_URL")
	if dbURL == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	return NewStoreWithDB(db), nil
}

// NewStoreWithDB creates a store with an existing database connection.
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Migrate creates the messages table if it is missing.
func (s *Store) Migrate(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx, Schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save persists an audit event.
func (s *Store) Save(event Event) error {
	return s.SaveContext(context.Background(), event)
}

// SaveContext persists an audit event using ctx for the insert.
func (s *Store) SaveContext(ctx context.Context, event Event) error {
	if s.db == nil {
		return nil
	}

	hostname, _ := os.Hostname()

	sdata, err := json.Marshal(event.StructuredData())
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, insertMessage,
		event.Facility(),
		int(event.Severity()),
		s.now().UTC(),
		hostname,
		AppName,
		os.Getpid(),
		event.MessageID(),
		sdata,
		event.Message(),
	)
	return err
}
