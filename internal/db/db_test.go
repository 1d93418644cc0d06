package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteDBFromConfig(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "scans.sqlite")

	cfg := config.DatabaseConfig{Path: dbPath, JournalMode: "WAL", EnableForeignKeys: true}
	cfg.ApplyDefaults()

	db, err := NewSQLiteDBFromConfig(cfg)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)

	var foreignKeys int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	require.Equal(t, 1, foreignKeys)

	_, err = os.Stat(dbPath)
	require.NoError(t, err)
}

func TestVacuum_Modes(t *testing.T) {
	for _, journalMode := range []string{"WAL", "TRUNCATE"} {
		t.Run(journalMode, func(t *testing.T) {
			dbPath := filepath.Join(t.TempDir(), "vacuum.sqlite")

			cfg := config.DatabaseConfig{Path: dbPath, JournalMode: journalMode}
			cfg.ApplyDefaults()

			db, err := NewSQLiteDBFromConfig(cfg)
			require.NoError(t, err)
			defer db.Close()

			_, err = db.Exec(`CREATE TABLE blobs (id INTEGER PRIMARY KEY, data TEXT)`)
			require.NoError(t, err)
			for range 2000 {
				_, err = db.Exec(`INSERT INTO blobs (data) VALUES (?)`, "archived event metadata")
				require.NoError(t, err)
			}
			_, err = db.Exec(`DELETE FROM blobs`)
			require.NoError(t, err)

			before, err := DBTotalSize(dbPath)
			require.NoError(t, err)

			require.NoError(t, Vacuum(db))

			after, err := DBTotalSize(dbPath)
			require.NoError(t, err)
			if journalMode != "WAL" {
				require.LessOrEqual(t, after, before)
			}
		})
	}
}

func TestDBTotalSize(t *testing.T) {
	testCases := []struct {
		name       string
		files      map[string]string
		expectSize int64
	}{
		{
			name:       "main only",
			files:      map[string]string{"": "main-db-content"},
			expectSize: int64(len("main-db-content")),
		},
		{
			name:       "with WAL and SHM",
			files:      map[string]string{"": "main-db", "-wal": "wal-content", "-shm": "shm-content"},
			expectSize: int64(len("main-db") + len("wal-content") + len("shm-content")),
		},
		{
			name:       "missing files",
			files:      map[string]string{},
			expectSize: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mainPath := filepath.Join(t.TempDir(), "main.db")
			for suffix, content := range tc.files {
				require.NoError(t, os.WriteFile(mainPath+suffix, []byte(content), 0o600))
			}

			size, err := DBTotalSize(mainPath)
			require.NoError(t, err)
			require.Equal(t, tc.expectSize, size)
		})
	}
}

func TestRunMigrations(t *testing.T) {
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "migrations.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	migrations := []Migration{
		{
			ID: "001_scans.sql",
			SQL: `-- +migrate Down
DROP TABLE IF EXISTS scans;

-- +migrate Up
CREATE TABLE scans (id TEXT PRIMARY KEY);`,
		},
	}

	log := logger.NewNopLogger()

	require.NoError(t, RunMigrations(log, db, migrations))
	require.NoError(t, RunMigrations(log, db, migrations), "applying twice is a no-op")

	_, err = db.Exec(`INSERT INTO scans (id) VALUES ('a')`)
	require.NoError(t, err)

	require.NoError(t, RollbackMigrations(log, db, migrations))
	_, err = db.Exec(`INSERT INTO scans (id) VALUES ('b')`)
	require.Error(t, err)
}

func TestMigration_Split(t *testing.T) {
	up, down, err := Migration{
		ID:  "001.sql",
		SQL: "-- +migrate Down\nDROP TABLE t;\n\n-- +migrate Up\nCREATE TABLE t (id INTEGER);\n",
	}.split()
	require.NoError(t, err)
	require.Equal(t, "CREATE TABLE t (id INTEGER);", up)
	require.Equal(t, "DROP TABLE t;", down)

	_, _, err = Migration{ID: "002.sql", SQL: "CREATE TABLE t (id INTEGER);"}.split()
	require.ErrorContains(t, err, "002.sql")
}
