package store

import (
	"context"
	"os"
	"testing"

	"boost-server/internal/observability"

	"github.com/jmoiron/sqlx"
)

// TestDB wraps a database-backed Store for integration tests. Tests that need
// it are skipped unless TEST_DATABASE_URL points at a migrated database.
type TestDB struct {
	db    *sqlx.DB
	Store Store
}

// SetupTestDB connects to the database named by TEST_DATABASE_URL, runs the
// embedded migrations, and truncates the boost tables so each test starts
// clean. Skips the test when no database is configured.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	if err := Migrate(connStr); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	db, err := sqlx.Open("pgx", connStr)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping database: %v", err)
	}

	logger := observability.NewLogger()
	testDB := &TestDB{db: db, Store: Store{db: db, logger: logger}}

	testDB.truncate(t)
	t.Cleanup(func() {
		testDB.truncate(t)
		db.Close()
	})

	return testDB
}

func (td *TestDB) truncate(t *testing.T) {
	t.Helper()
	_, err := td.db.ExecContext(context.Background(), "TRUNCATE boost_suggestions, boost_campaigns CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}
