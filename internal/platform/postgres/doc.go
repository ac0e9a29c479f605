// Package postgres provides PostgreSQL-backed implementations of the
// store interfaces. Each store accepts a store.DBTX so it can run against
// either a database connection or an open transaction.
package postgres
