package leave

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// requestColumns feeds every SELECT and RETURNING clause in the store, so a
// single drift from the migration breaks all leave queries at once. This
// pins the list to the leave_requests DDL.
func TestRequestColumnsMatchMigration(t *testing.T) {
	ddl, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "0001_init.sql"))
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	start := strings.Index(string(ddl), "CREATE TABLE leave_requests")
	if start < 0 {
		t.Fatal("leave_requests DDL not found in migration")
	}
	block := string(ddl)[start:]
	if end := strings.Index(block, ");"); end >= 0 {
		block = block[:end]
	}

	for _, col := range strings.Split(requestColumns, ",") {
		col = strings.TrimSuffix(strings.TrimSpace(col), "::text")
		declared := regexp.MustCompile(`(?m)^\s+` + col + `\s`)
		if !declared.MatchString(block) {
			t.Fatalf("column %q is not declared by the leave_requests migration", col)
		}
	}
}
