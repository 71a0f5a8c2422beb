package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readInitMigration(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "0001_init.up.sql"))
	if err != nil {
		t.Fatalf("init migration missing: %v", err)
	}
	return string(data)
}

func TestInitMigrationCreatesAllMappedTables(t *testing.T) {
	ddl := readInitMigration(t)
	for _, table := range []string{"users", "products", "orders", "order_items", "order_outbox"} {
		if !strings.Contains(ddl, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Fatalf("init migration does not create table %q", table)
		}
	}
}

func TestInitMigrationEnforcesOnePendingCartPerOwner(t *testing.T) {
	ddl := readInitMigration(t)
	idx := strings.Index(ddl, "CREATE UNIQUE INDEX IF NOT EXISTS orders_one_pending_per_owner")
	if idx < 0 {
		t.Fatalf("init migration lacks the pending-cart unique index")
	}
	rest := ddl[idx:]
	clause := rest[:strings.Index(rest, ";")]
	if !strings.Contains(clause, "ON orders (owner)") || !strings.Contains(clause, "WHERE status = 'PENDING'") {
		t.Fatalf("pending-cart index is not partial on owner/PENDING: %s", clause)
	}
}
