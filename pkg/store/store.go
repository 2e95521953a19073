package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultMaintenanceDB is the database dialled before a catalog is selected.
const DefaultMaintenanceDB = "postgres"

// Config holds the connection parameters of the store.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	// Database defaults to DefaultMaintenanceDB.
	Database string
	// SSLMode defaults to "disable".
	SSLMode string
}

// DSN renders the lib/pq key=value connection string.
func (c Config) DSN() string {
	database := c.Database
	if database == "" {
		database = DefaultMaintenanceDB
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	parts := []string{
		"host=" + quoteDSN(c.Host),
		fmt.Sprintf("port=%d", c.Port),
		"user=" + quoteDSN(c.User),
		"password=" + quoteDSN(c.Password),
		"dbname=" + quoteDSN(database),
		"sslmode=" + quoteDSN(sslmode),
	}
	return strings.Join(parts, " ")
}

func quoteDSN(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func (c Config) validate() error {
	if c.Host == "" || c.Port <= 0 || c.User == "" {
		return errors.New("bad database information entered")
	}
	return nil
}

// Opener dials the store and returns a verified handle.
type Opener func(ctx context.Context, cfg Config) (*sql.DB, error)

// OpenPostgres is the default Opener. It uses the lib/pq driver.
func OpenPostgres(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}
	// A single handle serves the whole session.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Conn is the single process-wide store connection.
type Conn struct {
	cfg     Config
	open    Opener
	logMode logger.LogLevel
	sqlDB   *sql.DB
	gormDB  *gorm.DB
	closed  atomic.Bool
}

// Option configures a Conn.
type Option func(*Conn)

// WithOpener replaces the dialler used by Connect and SelectCatalog.
func WithOpener(open Opener) Option {
	return func(c *Conn) {
		c.open = open
	}
}

// WithLogLevel sets the gorm log mode from a slog level. gorm stays silent
// above debug so nothing lands between shell prompts.
func WithLogLevel(level slog.Level) Option {
	return func(c *Conn) {
		c.logMode = gormLogMode(level)
	}
}

func gormLogMode(level slog.Level) logger.LogLevel {
	if level <= slog.LevelDebug {
		return logger.Info
	}
	return logger.Silent
}

var gormLogger = logger.New(log.New(os.Stderr, "", log.LstdFlags), logger.Config{
	SlowThreshold: 200 * time.Millisecond,
	LogLevel:      logger.Silent,
})

// Connect dials the store described by cfg.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*Conn, error) {
	c := &Conn{cfg: cfg, open: OpenPostgres, logMode: logger.Silent}
	for _, opt := range opts {
		opt(c)
	}
	if err := cfg.validate(); err != nil {
		return nil, &ConnectionError{Host: cfg.Host, Port: cfg.Port, Err: err}
	}

	db, err := c.open(ctx, cfg)
	if err != nil {
		return nil, &ConnectionError{Host: cfg.Host, Port: cfg.Port, Err: err}
	}
	if err := c.attach(db); err != nil {
		_ = db.Close()
		return nil, &ConnectionError{Host: cfg.Host, Port: cfg.Port, Err: err}
	}
	return c, nil
}

// FromDB wraps an existing handle, for instance a sqlmock connection.
func FromDB(db *sql.DB, cfg Config, opts ...Option) (*Conn, error) {
	c := &Conn{cfg: cfg, open: OpenPostgres, logMode: logger.Silent}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.attach(db); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Conn) attach(db *sql.DB) error {
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: gormLogger.LogMode(c.logMode),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to initialize gorm: %w", err)
	}

	c.sqlDB = db
	c.gormDB = gormDB
	return nil
}

// SelectCatalog switches the connection to the named database. It fails with
// a *CatalogError if the database does not exist or cannot be dialled.
func (c *Conn) SelectCatalog(ctx context.Context, name string) error {
	if name == "" {
		return &CatalogError{Name: name, Err: errors.New("a catalog name is required")}
	}
	if c.IsClosed() {
		return &CatalogError{Name: name, Err: ErrClosed}
	}

	var found int64
	err := c.gormDB.WithContext(ctx).
		Table("pg_database").
		Where("datname = ?", name).
		Count(&found).Error
	if err != nil {
		return &CatalogError{Name: name, Err: err}
	}
	if found == 0 {
		return &CatalogError{Name: name}
	}
	if name == c.Catalog() {
		return nil
	}

	cfg := c.cfg
	cfg.Database = name
	db, err := c.open(ctx, cfg)
	if err != nil {
		return &CatalogError{Name: name, Err: err}
	}

	old := c.sqlDB
	if err := c.attach(db); err != nil {
		_ = db.Close()
		return &CatalogError{Name: name, Err: err}
	}
	c.cfg = cfg
	_ = old.Close()
	return nil
}

// Catalog returns the currently selected database.
func (c *Conn) Catalog() string {
	if c.cfg.Database == "" {
		return DefaultMaintenanceDB
	}
	return c.cfg.Database
}

// SQL returns the raw handle.
func (c *Conn) SQL() *sql.DB {
	return c.sqlDB
}

// Gorm returns the GORM handle bound to ctx.
func (c *Conn) Gorm(ctx context.Context) *gorm.DB {
	return c.gormDB.WithContext(ctx)
}

// IsClosed reports whether Close has been called.
func (c *Conn) IsClosed() bool {
	return c.closed.Load()
}

// Ping verifies connectivity.
func (c *Conn) Ping(ctx context.Context) error {
	if c.IsClosed() {
		return ErrClosed
	}
	return c.gormDB.WithContext(ctx).Exec("SELECT 1").Error
}

// Close closes the connection. Closing twice is a no-op.
func (c *Conn) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.sqlDB.Close()
}
