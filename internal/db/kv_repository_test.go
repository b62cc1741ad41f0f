package db

import (
	"path/filepath"
	"testing"
)

func openTestRepository(t *testing.T) *KVRepository {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "wayfarer.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return NewKVRepository(database)
}

func TestOpenSQLiteAppliesMigrations(t *testing.T) {
	repo := openTestRepository(t)

	// A fresh database must already have the kv_entries table.
	if err := repo.Set("users", "[]"); err != nil {
		t.Fatalf("Set on fresh database failed: %v", err)
	}
}

func TestOpenSQLiteIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "wayfarer.db")

	database, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	if err := NewKVRepository(database).Set("current_user", `{"id":"u1"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	database, err = OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("second open failed: %v", err)
	}

	value, found, err := NewKVRepository(database).Get("current_user")
	if err != nil || !found {
		t.Fatalf("expected value to survive reopen, found=%v err=%v", found, err)
	}
	if value != `{"id":"u1"}` {
		t.Fatalf("unexpected value after reopen: %q", value)
	}
}

func TestGetReportsMissingKeyWithoutError(t *testing.T) {
	repo := openTestRepository(t)

	value, found, err := repo.Get("photos_u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found || value != "" {
		t.Fatalf("expected absent key, got found=%v value=%q", found, value)
	}
}

func TestSetOverwritesExistingValue(t *testing.T) {
	repo := openTestRepository(t)

	if err := repo.Set("todos", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Set("todos", `[{"id":"t1"}]`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	value, found, err := repo.Get("todos")
	if err != nil || !found {
		t.Fatalf("Get failed: found=%v err=%v", found, err)
	}
	if value != `[{"id":"t1"}]` {
		t.Fatalf("expected last write to win, got %q", value)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := openTestRepository(t)

	if err := repo.Set("profile_u1", `{"name":"Maya"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Delete("profile_u1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete("profile_u1"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}

	if _, found, _ := repo.Get("profile_u1"); found {
		t.Fatal("expected key gone after delete")
	}
}

func TestExists(t *testing.T) {
	repo := openTestRepository(t)

	found, err := repo.Exists("users")
	if err != nil || found {
		t.Fatalf("expected absent key, found=%v err=%v", found, err)
	}

	if err := repo.Set("users", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	found, err = repo.Exists("users")
	if err != nil || !found {
		t.Fatalf("expected key present, found=%v err=%v", found, err)
	}
}
