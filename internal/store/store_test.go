package store

import (
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, _, err := OpenMigrated(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := testDB(t)

	result, err := db.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("second Migrate() should report Changed=false")
	}
	if result.Version != 1 {
		t.Errorf("version = %d, want 1", result.Version)
	}
	if result.Dirty {
		t.Error("schema reported dirty")
	}
}

func TestKeyValue(t *testing.T) {
	db := testDB(t)

	if _, ok, err := db.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want false, nil", ok, err)
	}

	if err := db.Set("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := db.Set("k", "v2"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := db.Get("k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("Get(k) = %q, %v, %v; want v2, true, nil", v, ok, err)
	}

	if err := db.Remove("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := db.Get("k"); ok {
		t.Error("key still present after Remove")
	}
	if err := db.Remove("k"); err != nil {
		t.Errorf("Remove of missing key error = %v", err)
	}
}

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens(testDB(t))

	tok, err := tokens.Token()
	if err != nil || tok != "" {
		t.Fatalf("Token() on empty store = %q, %v", tok, err)
	}
	if err := tokens.SetToken("abc.def"); err != nil {
		t.Fatal(err)
	}
	if tok, _ := tokens.Token(); tok != "abc.def" {
		t.Errorf("Token() = %q, want abc.def", tok)
	}
	if err := tokens.ClearToken(); err != nil {
		t.Fatal(err)
	}
	if tok, _ := tokens.Token(); tok != "" {
		t.Errorf("Token() after clear = %q, want empty", tok)
	}
}

func TestTokensSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")

	db, _, err := OpenMigrated(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := NewTokens(db).SetToken("persisted"); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	db, _, err = OpenMigrated(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()
	if tok, _ := NewTokens(db).Token(); tok != "persisted" {
		t.Errorf("Token() after reopen = %q", tok)
	}
}
