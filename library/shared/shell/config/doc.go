// Package config loads the service configuration from the environment and builds
// the infrastructure that depends on it.
//
// It contains factory functions for PostgreSQL connections using the supported drivers
// (pgx.Pool, sql.DB, sqlx.DB), a factory for the postgres store that selects one of them,
// and the OpenTelemetry providers that export traces and metrics over OTLP/gRPC.
//
// This package is part of the shell (infrastructure) layer.
package config
