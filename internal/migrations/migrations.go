package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/SubstrateScanner/internal/db"
	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
)

//go:embed 001_scan_archive.sql
var mig001 string

// All returns the scan archive migrations in the order they apply.
func All() []db.Migration {
	return []db.Migration{
		{
			ID:  "001_scan_archive.sql",
			SQL: mig001,
		},
	}
}

// RunMigrations brings the scan archive schema of sqlDB up to date.
func RunMigrations(log *logger.Logger, sqlDB *sql.DB) error {
	return db.RunMigrations(log, sqlDB, All())
}
