package db

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationLockID = 42170301

// Migrate aplica en orden lexicografico las migraciones embebidas que aun no
// figuran en schema_migrations. Todo corre en una sola transaccion: el lock
// se libera al cerrarla y cada archivo se registra junto con su aplicacion.
func Migrate(ctx context.Context, pool Pool, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	names, err := MigrationNames()
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "migrate: begin transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", migrationLockID); err != nil {
		return eris.Wrap(err, "migrate: acquire advisory lock")
	}

	if _, err := tx.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename   TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return eris.Wrap(err, "migrate: create schema_migrations")
	}

	applied, err := appliedMigrations(ctx, tx)
	if err != nil {
		return err
	}

	for _, name := range names {
		if applied[name] {
			continue
		}
		data, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return eris.Wrapf(err, "migrate: read %s", name)
		}

		logger.Info("applying migration", zap.String("file", name))
		if _, err := tx.Exec(ctx, string(data)); err != nil {
			return eris.Wrapf(err, "migrate: apply %s", name)
		}
		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (filename) VALUES ($1)", name); err != nil {
			return eris.Wrapf(err, "migrate: record %s", name)
		}
	}
	return eris.Wrap(tx.Commit(ctx), "migrate: commit")
}

// MigrationNames devuelve los archivos de migracion embebidos, ordenados.
func MigrationNames() ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return nil, eris.Wrap(err, "migrate: read migration dir")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func appliedMigrations(ctx context.Context, tx pgx.Tx) (map[string]bool, error) {
	rows, err := tx.Query(ctx, "SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, eris.Wrap(err, "migrate: list applied")
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "migrate: scan applied")
		}
		applied[name] = true
	}
	return applied, eris.Wrap(rows.Err(), "migrate: iterate applied")
}
