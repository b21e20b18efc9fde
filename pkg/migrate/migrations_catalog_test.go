package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/catalog-pricing/pkg/migrate"
)

func TestCatalogMigrationsContainSchemas(t *testing.T) {
	checks := map[string][]string{
		"*_create_catalog_tables.sql": {
			"CREATE TABLE IF NOT EXISTS regions",
			"CREATE TABLE IF NOT EXISTS items",
			"CREATE TABLE IF NOT EXISTS item_region_prices",
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_item_region_prices_item_region",
		},
		"*_create_discount_tables.sql": {
			"CREATE TABLE IF NOT EXISTS quantity_discounts",
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_quantity_discounts_item_quantity",
			"CREATE TABLE IF NOT EXISTS quantity_discount_regions",
			"CREATE TABLE IF NOT EXISTS sales",
		},
		"*_create_shipping_tables.sql": {
			"CREATE TABLE IF NOT EXISTS shipping_types",
			"CREATE TABLE IF NOT EXISTS shipping_rates",
			"CREATE INDEX IF NOT EXISTS idx_shipping_rates_type_region",
		},
	}

	for pattern, statements := range checks {
		matches, err := filepath.Glob(filepath.Join("migrations", pattern))
		if err != nil {
			t.Fatalf("glob migrations: %v", err)
		}
		if len(matches) != 1 {
			t.Fatalf("expected one migration for %s, got %d", pattern, len(matches))
		}

		data, err := os.ReadFile(matches[0])
		if err != nil {
			t.Fatalf("read migration file: %v", err)
		}
		content := string(data)
		for _, sub := range statements {
			if !strings.Contains(content, sub) {
				t.Errorf("%s: missing expected statement %q", matches[0], sub)
			}
		}
	}
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Sale Index!")
	if err != nil {
		t.Fatalf("CreateSQLMigration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_sale_index.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}

	if _, err := migrate.CreateSQLMigration(dir, "!!!"); err == nil {
		t.Fatalf("expected error for empty sanitized name")
	}
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatalf("expected invalid filename error")
	}
}
