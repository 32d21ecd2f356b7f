package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quoteline/rfqtracker-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestRFQMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_rfqs.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no rfqs migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE rfqs",
		"rfq_id text NOT NULL UNIQUE",
		"CHECK (quantity >= 1)",
		"CHECK (margin >= 0)",
		"CHECK (confidence BETWEEN 0 AND 100)",
		"sales_user_id uuid NOT NULL REFERENCES users (id)",
		"DROP TABLE rfqs",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCounterMigrationSeedsSingleRow(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_rfq_counters.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no counter migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "INSERT INTO rfq_counters (id, value) VALUES (1, 0)") {
		t.Error("counter migration must seed the sequence row")
	}
}
