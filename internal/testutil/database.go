package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"couriertrack/internal/infrastructure/mysql"
)

const mysqlImage = "mysql:8.0.36"

// SetupTestDB returns a schema-initialized MySQL database. TEST_MYSQL_DSN
// points at an existing server; otherwise a container is started. The test
// is skipped when neither is available. Suites sharing one TEST_MYSQL_DSN
// must run with -p 1 since every suite truncates the same tables.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		dsn = startContainer(t)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	if err := mysql.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return db
}

func startContainer(t *testing.T) string {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcmysql.Run(ctx, mysqlImage,
		tcmysql.WithDatabase("couriertrack_test"),
		tcmysql.WithUsername("courier"),
		tcmysql.WithPassword("courier"),
	)
	if err != nil {
		t.Skipf("mysql container not available: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate mysql container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "parseTime=true", "loc=UTC")
	if err != nil {
		t.Fatalf("failed to build container DSN: %v", err)
	}
	return dsn
}

// CleanupTestDB empties every table, children first.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}

	for i := len(mysql.Tables) - 1; i >= 0; i-- {
		table := mysql.Tables[i]
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
