package launcher

import (
	"path/filepath"
	"reflect"
	"testing"

	"ck3mm/internal/logging"
	"ck3mm/internal/mods"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel})
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir(), false, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testList() *mods.List {
	return mods.NewList([]*mods.Mod{
		{Name: "Alpha", Path: "/docs/mod/alpha", DescriptorFile: "/docs/mod/alpha.mod", Enabled: true},
		{Name: "Beta", Path: "/docs/mod/beta", DescriptorFile: "/docs/mod/beta.mod", Enabled: true, RemoteFileID: "12345"},
		{Name: "Gamma", Path: "/docs/mod/gamma", DescriptorFile: "/docs/mod/gamma.mod"},
	})
}

func TestOpenCreatesSchema(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir, false, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if filepath.Base(db.Path()) != "launcher-v2.sqlite" {
		t.Errorf("Path = %q", db.Path())
	}
	if v := db.DetectVersion(); v != SchemaV2 {
		t.Errorf("DetectVersion = %q, want v2", v)
	}
}

func TestDBNameOpenBeta(t *testing.T) {
	if DBName(true) != "launcher-v2_openbeta.sqlite" {
		t.Errorf("DBName(true) = %q", DBName(true))
	}
}

func TestExportPlayset(t *testing.T) {
	db := openTestDB(t)
	list := testList()

	if err := db.ExportPlayset("My Playset", list, ExportOptions{}); err != nil {
		t.Fatalf("ExportPlayset: %v", err)
	}

	active, ok, err := db.ActivePlayset()
	if err != nil || !ok || active != "My Playset" {
		t.Errorf("ActivePlayset = %q, %v, %v", active, ok, err)
	}

	names, err := db.PlaysetMods("My Playset")
	if err != nil {
		t.Fatalf("PlaysetMods: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Alpha", "Beta"}) {
		t.Errorf("playset mods = %v, want enabled mods in order", names)
	}
}

func TestExportPlaysetIdempotent(t *testing.T) {
	db := openTestDB(t)
	list := testList()

	if err := db.ExportPlayset("My Playset", list, ExportOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := db.ExportPlayset("My Playset", list, ExportOptions{}); err != nil {
		t.Fatalf("second export: %v", err)
	}

	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM mods").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("mods rows = %d, want 3 (no duplicates)", count)
	}
	var playsets int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM playsets").Scan(&playsets); err != nil {
		t.Fatal(err)
	}
	if playsets != 1 {
		t.Errorf("playsets rows = %d, want 1", playsets)
	}
}

func TestExportToleratesForeignModRows(t *testing.T) {
	db := openTestDB(t)

	// The launcher writes rows this tool never created, including ones
	// with NULL paths. Syncing must iterate past them cleanly.
	_, err := db.conn.Exec(
		`INSERT INTO mods (id, gameRegistryId, status, dirPath, displayName, source, tags, requiredVersion)
		 VALUES ('foreign-id', NULL, 'ready_to_play', NULL, 'Launcher Mod', 'pdx', '', '')`)
	if err != nil {
		t.Fatal(err)
	}

	if err := db.ExportPlayset("My Playset", testList(), ExportOptions{}); err != nil {
		t.Fatalf("ExportPlayset: %v", err)
	}
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM mods").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("mods rows = %d, want 4 (foreign row kept)", count)
	}
}

func TestExportDeactivatesOtherPlaysets(t *testing.T) {
	db := openTestDB(t)
	list := testList()

	if err := db.ExportPlayset("First", list, ExportOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := db.ExportPlayset("Second", list, ExportOptions{}); err != nil {
		t.Fatal(err)
	}

	active, ok, err := db.ActivePlayset()
	if err != nil || !ok {
		t.Fatalf("ActivePlayset: %v, %v", ok, err)
	}
	if active != "Second" {
		t.Errorf("active = %q, want Second", active)
	}
}

func TestExportEnabledOnly(t *testing.T) {
	db := openTestDB(t)
	list := testList()

	if err := db.ExportPlayset("My Playset", list, ExportOptions{EnabledOnly: true}); err != nil {
		t.Fatal(err)
	}
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM mods").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("mods rows = %d, want 2 (disabled Gamma excluded)", count)
	}
}

func TestExportModSource(t *testing.T) {
	db := openTestDB(t)
	if err := db.ExportPlayset("My Playset", testList(), ExportOptions{}); err != nil {
		t.Fatal(err)
	}
	var source string
	err := db.conn.QueryRow("SELECT source FROM mods WHERE displayName = 'Beta'").Scan(&source)
	if err != nil {
		t.Fatal(err)
	}
	if source != "pdx" {
		t.Errorf("workshop mod source = %q, want pdx", source)
	}
}
