// Package launcher reads and writes the Paradox launcher's
// launcher-v2.sqlite database so mod lists managed here show up as
// playsets in the official launcher.
package launcher

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"ck3mm/internal/ckerr"
	"ck3mm/internal/logging"
)

// SchemaVersion identifies the launcher database schema generation,
// detected from the knoxMigrations table the launcher maintains.
type SchemaVersion string

const (
	SchemaV2 SchemaVersion = "v2"
	SchemaV3 SchemaVersion = "v3"
	SchemaV4 SchemaVersion = "v4"
	SchemaV5 SchemaVersion = "v5"
)

// DB wraps the launcher database connection.
type DB struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// DBName returns the database file name for the given channel.
func DBName(openBeta bool) string {
	if openBeta {
		return "launcher-v2_openbeta.sqlite"
	}
	return "launcher-v2.sqlite"
}

// Open opens the launcher database under gameDataDir, creating the file
// with a minimal schema when the launcher has never run.
func Open(gameDataDir string, openBeta bool, logger *logging.Logger) (*DB, error) {
	if err := os.MkdirAll(gameDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create game data directory: %w", err)
	}
	dbPath := filepath.Join(gameDataDir, DBName(openBeta))
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, ckerr.New(ckerr.LauncherDBError, fmt.Sprintf("failed to open launcher database: %s", dbPath), err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, ckerr.New(ckerr.LauncherDBError, "failed to set pragma", err)
		}
	}

	db := &DB{
		conn:   conn,
		logger: logger.WithComponent("launcher"),
		dbPath: dbPath,
	}

	if !dbExists {
		db.logger.Info("Creating new launcher database", map[string]interface{}{
			"path": dbPath,
		})
		if err := db.initializeSchema(); err != nil {
			conn.Close()
			return nil, ckerr.New(ckerr.LauncherDBError, "failed to initialize launcher schema", err)
		}
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.dbPath
}

// WithTx runs fn inside a transaction, rolling back on error.
func (db *DB) WithTx(fn func(*sql.Tx) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error("failed to rollback transaction", map[string]interface{}{
				"error":          err.Error(),
				"rollback_error": rbErr.Error(),
			})
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// initializeSchema creates the minimal tables a fresh launcher database
// needs. The real launcher creates more, but these are all the export
// touches.
func (db *DB) initializeSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS playsets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			isActive INTEGER DEFAULT 0,
			loadOrder TEXT,
			createdOn TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS mods (
			id TEXT PRIMARY KEY,
			gameRegistryId TEXT,
			status TEXT,
			dirPath TEXT,
			archivePath TEXT,
			displayName TEXT,
			thumbnailPath TEXT,
			thumbnailUrl TEXT,
			source TEXT,
			tags TEXT,
			requiredVersion TEXT,
			shortDescription TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS playsets_mods (
			playsetId TEXT,
			modId TEXT,
			position INTEGER,
			enabled INTEGER DEFAULT 1,
			PRIMARY KEY (playsetId, modId),
			FOREIGN KEY (playsetId) REFERENCES playsets(id),
			FOREIGN KEY (modId) REFERENCES mods(id)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DetectVersion inspects knoxMigrations to learn which launcher wrote
// the database. Databases ck3mm created itself report SchemaV2.
func (db *DB) DetectVersion() SchemaVersion {
	rows, err := db.conn.Query("SELECT name FROM knoxMigrations")
	if err != nil {
		return SchemaV2
	}
	defer rows.Close()

	migrations := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		migrations[name] = true
	}
	switch {
	case migrations["20240109104900_AddOptionalAndRequiredDownload.sql"]:
		return SchemaV5
	case migrations["20230830120000_AddCreatedOnColumnToPlaysets.sql"]:
		return SchemaV4
	case migrations["20230404120000_AddCreatedOnColumnToPlaysets.sql"]:
		return SchemaV3
	default:
		return SchemaV2
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
