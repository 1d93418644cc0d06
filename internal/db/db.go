package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goran-ethernal/SubstrateScanner/pkg/config"
	_ "github.com/mattn/go-sqlite3"
)

// sidecarSuffixes are the files SQLite keeps next to the main database file in WAL mode.
var sidecarSuffixes = []string{"-wal", "-shm"}

// NewSQLiteDB opens the SQLite database at dbPath with the default settings.
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	cfg := config.DatabaseConfig{Path: dbPath, EnableForeignKeys: true}
	cfg.ApplyDefaults()

	return NewSQLiteDBFromConfig(cfg)
}

// NewSQLiteDBFromConfig opens the SQLite database described by cfg, creating its
// parent directory when needed, and applies the connection pool and PRAGMA settings.
func NewSQLiteDBFromConfig(cfg config.DatabaseConfig) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" && !strings.HasPrefix(cfg.Path, ":memory:") {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	foreignKeys := "off"
	if cfg.EnableForeignKeys {
		foreignKeys = "on"
	}

	connStr := fmt.Sprintf(
		"file:%s?_txlock=immediate&_foreign_keys=%s&_journal_mode=%s&_busy_timeout=%d",
		cfg.Path,
		foreignKeys,
		cfg.JournalMode,
		cfg.BusyTimeout,
	)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)

	pragmas := []string{
		fmt.Sprintf("PRAGMA synchronous = %s", cfg.Synchronous),
		fmt.Sprintf("PRAGMA cache_size = %d", cfg.CacheSize),
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	return db, nil
}

// DBTotalSize returns the combined size of the database file and its WAL and
// shared-memory files. Missing files count as zero.
func DBTotalSize(dbPath string) (int64, error) {
	var total int64

	for _, path := range append([]string{dbPath}, sidecars(dbPath)...) {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return 0, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		total += info.Size()
	}

	return total, nil
}

func sidecars(dbPath string) []string {
	paths := make([]string, 0, len(sidecarSuffixes))
	for _, suffix := range sidecarSuffixes {
		paths = append(paths, dbPath+suffix)
	}
	return paths
}

// Vacuum rebuilds the database file, reclaiming the pages freed by deletes.
func Vacuum(db *sql.DB) error {
	if _, err := db.Exec("VACUUM"); err != nil {
		if strings.Contains(err.Error(), "database is locked") {
			return fmt.Errorf("cannot vacuum: database is locked (retry later)")
		}
		return fmt.Errorf("vacuum failed: %w", err)
	}

	VacuumRunsInc()

	return nil
}
