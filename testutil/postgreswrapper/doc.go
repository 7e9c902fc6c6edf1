// Package postgreswrapper opens a postgresengine.Store against a test database for integration tests.
//
// The database adapter is chosen by the ADAPTER_TYPE environment variable (pgx.pool, sql.db or sqlx.db,
// default pgx.pool) and the database by TEST_DATABASE_URL. Tests are skipped when the database is not reachable.
package postgreswrapper
