package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/registrar/pkg/store"
)

const (
	testCatalog  = "university"
	testUser     = "registrar"
	testPassword = "registrar"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB        *gorm.DB
	RawDB     *sql.DB
	Container testcontainers.Container
	Store     store.Config
	Fixture   string
}

// NewTestContext starts a PostgreSQL testcontainer holding the university
// catalog.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	fixture, err := os.ReadFile(filepath.Join(projectRoot, "testdata", "university.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(testCatalog),
		tcpostgres.WithUsername(testUser),
		tcpostgres.WithPassword(testPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	mapped, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	port, err := strconv.Atoi(mapped.Port())
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("bad container port %q: %w", mapped.Port(), err)
	}

	cfg := store.Config{
		Host:     host,
		Port:     port,
		User:     testUser,
		Password: testPassword,
		SSLMode:  "disable",
	}
	withCatalog := cfg
	withCatalog.Database = testCatalog

	// GORM handle for test setup and assertions
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  withCatalog.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rawDB, err := db.DB()
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}

	tc := &TestContext{
		DB:        db,
		RawDB:     rawDB,
		Container: pgContainer,
		Store:     cfg,
		Fixture:   string(fixture),
	}
	if err := tc.Reset(ctx); err != nil {
		tc.Close(ctx)
		return nil, err
	}
	return tc, nil
}

// Reset recreates the schema and seed rows.
func (tc *TestContext) Reset(ctx context.Context) error {
	if _, err := tc.RawDB.ExecContext(ctx, tc.Fixture); err != nil {
		return fmt.Errorf("failed to load fixture: %w", err)
	}
	return nil
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

// findProjectRoot locates the project root directory
func findProjectRoot() (string, error) {
	paths := []string{
		"../..",
		"..",
		".",
	}

	for _, p := range paths {
		goMod := filepath.Join(p, "go.mod")
		if _, err := os.Stat(goMod); err == nil {
			return filepath.Abs(p)
		}
	}

	return "", fmt.Errorf("project root not found (looking for go.mod)")
}
