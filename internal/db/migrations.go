package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// Migration is one embedded SQL file holding a Down section followed by an Up section.
type Migration struct {
	ID  string
	SQL string
}

// split returns the Up and Down statements of m.
func (m Migration) split() (up, down string, err error) {
	before, after, found := strings.Cut(m.SQL, upMarker)
	if !found {
		return "", "", fmt.Errorf("migration %s missing '%s' separator", m.ID, upMarker)
	}

	if _, d, ok := strings.Cut(before, downMarker); ok {
		before = d
	}

	return strings.TrimSpace(after), strings.TrimSpace(before), nil
}

// RunMigrations applies every pending migration to db.
func RunMigrations(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	return runMigrations(log, db, migrations, migrate.Up)
}

// RollbackMigrations reverts every applied migration of the given set.
func RollbackMigrations(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	return runMigrations(log, db, migrations, migrate.Down)
}

func runMigrations(log *logger.Logger, db *sql.DB, migrations []Migration, dir migrate.MigrationDirection) error {
	source := &migrate.MemoryMigrationSource{Migrations: make([]*migrate.Migration, 0, len(migrations))}
	ids := make([]string, 0, len(migrations))

	for _, m := range migrations {
		up, down, err := m.split()
		if err != nil {
			return err
		}

		source.Migrations = append(source.Migrations, &migrate.Migration{
			Id:   m.ID,
			Up:   []string{up},
			Down: []string{down},
		})
		ids = append(ids, m.ID)
	}

	applied, err := migrate.Exec(db, "sqlite3", source, dir)
	if err != nil {
		return fmt.Errorf("failed to run migrations [%s]: %w", strings.Join(ids, ", "), err)
	}

	log.Infow("database migrations applied",
		"applied", applied,
		"known", len(ids),
	)

	return nil
}
