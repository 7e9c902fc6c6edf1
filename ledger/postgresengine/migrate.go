package postgresengine

import (
	"context"
	"embed"
	"io/fs"
	"sort"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine/internal/adapters"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	tableSchemaMigrations = "schema_migrations"
	migrationsLockID      = 7202604151
	opMigrate             = "migrate"
)

// Migrate applies all embedded migrations that were not applied yet, in file name order.
// It holds a transaction-scoped advisory lock, so concurrent callers wait for each other.
// Returns the versions that were applied by this call.
func (s Store) Migrate(ctx context.Context) ([]string, error) {
	migrations, err := loadMigrations()
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0)

	err = s.WithinTx(ctx, func(ctx context.Context) error {
		lockSQL, buildErr := s.toSQL(ctx, opMigrate,
			s.builder().Select(goqu.Func("pg_advisory_xact_lock", migrationsLockID)))
		if buildErr != nil {
			return buildErr
		}

		if _, lockErr := s.exec(ctx, opMigrate, lockSQL); lockErr != nil {
			return lockErr
		}

		if _, createErr := s.exec(ctx, opMigrate, `CREATE TABLE IF NOT EXISTS `+tableSchemaMigrations+` (
			version    text PRIMARY KEY,
			applied_at timestamptz NOT NULL DEFAULT now()
		)`); createErr != nil {
			return createErr
		}

		done, loadErr := s.appliedMigrations(ctx)
		if loadErr != nil {
			return loadErr
		}

		for _, m := range migrations {
			if done[m.version] {
				continue
			}

			if _, execErr := s.exec(ctx, opMigrate, m.sql); execErr != nil {
				return execErr
			}

			insertSQL, buildErr := s.toSQL(ctx, opMigrate,
				s.builder().Insert(tableSchemaMigrations).Rows(goqu.Record{"version": m.version}))
			if buildErr != nil {
				return buildErr
			}

			if _, execErr := s.exec(ctx, opMigrate, insertSQL); execErr != nil {
				return execErr
			}

			s.logOperationContext(ctx, logMsgMigrationApplied, logAttrVersion, m.version)
			applied = append(applied, m.version)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return applied, nil
}

func (s Store) appliedMigrations(ctx context.Context) (map[string]bool, error) {
	sqlQuery, err := s.toSQL(ctx, opMigrate, s.builder().From(tableSchemaMigrations).Select("version"))
	if err != nil {
		return nil, err
	}

	done := make(map[string]bool)

	_, err = s.query(ctx, opMigrate, sqlQuery, func(rows adapters.DBRows) error {
		var version string
		if scanErr := rows.Scan(&version); scanErr != nil {
			return scanErr
		}

		done[version] = true

		return nil
	})

	return done, err
}

type migration struct {
	version string
	sql     string
}

func loadMigrations() ([]migration, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	migrations := make([]migration, 0, len(names))

	for _, name := range names {
		content, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return nil, readErr
		}

		version := strings.TrimSuffix(strings.TrimPrefix(name, "migrations/"), ".sql")
		migrations = append(migrations, migration{version: version, sql: string(content)})
	}

	return migrations, nil
}
