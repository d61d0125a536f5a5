package db

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/mindscreen/mindscreen/internal/platform/db/dbtest"
)

func TestMigrator_UpAndStatus(t *testing.T) {
	pool := dbtest.NewPool(t)
	ctx := context.Background()
	files := fstest.MapFS{
		"001_items.sql":      {Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY);")},
		"002_items_name.sql": {Data: []byte("ALTER TABLE items ADD COLUMN name TEXT;")},
		"notes.txt":          {Data: []byte("ignored")},
		"003_broken.sql.bak": {Data: []byte("ignored")},
	}
	m := NewMigrator(pool, files)

	before, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(before) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(before))
	}
	for _, st := range before {
		if st.Applied {
			t.Errorf("migration %d reported applied before Up", st.Version)
		}
	}

	n, err := m.Up(ctx)
	if err != nil {
		t.Fatalf("Up: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 applied, got %d", n)
	}
	if _, err := pool.Exec(ctx, "INSERT INTO items (id, name) VALUES (1, 'a')"); err != nil {
		t.Errorf("migrated table is unusable: %v", err)
	}

	n, err = m.Up(ctx)
	if err != nil {
		t.Fatalf("second Up: %v", err)
	}
	if n != 0 {
		t.Errorf("expected second Up to apply nothing, got %d", n)
	}

	after, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	for _, st := range after {
		if !st.Applied || st.AppliedAt == nil {
			t.Errorf("migration %d not reported applied", st.Version)
		}
	}
}

func TestMigrator_FailedMigrationRollsBack(t *testing.T) {
	pool := dbtest.NewPool(t)
	ctx := context.Background()
	files := fstest.MapFS{
		"001_ok.sql":     {Data: []byte("CREATE TABLE ok_table (id INTEGER);")},
		"002_broken.sql": {Data: []byte("CREATE TABLE half_done (id INTEGER); SELECT missing_column FROM ok_table;")},
	}
	m := NewMigrator(pool, files)

	n, err := m.Up(ctx)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if n != 1 {
		t.Errorf("expected 1 migration applied before the failure, got %d", n)
	}

	var exists bool
	if err := pool.QueryRow(ctx, "SELECT to_regclass('half_done') IS NOT NULL").Scan(&exists); err != nil {
		t.Fatalf("check table: %v", err)
	}
	if exists {
		t.Error("expected the failed migration's table to be rolled back")
	}

	statuses, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !statuses[0].Applied || statuses[1].Applied {
		t.Errorf("unexpected status after failure: %+v", statuses)
	}
}
