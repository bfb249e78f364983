// Package store persists the fragrance catalog and usage logs in SQLite.
//
// The Store manages the database connection, schema initialization, and the
// queries behind the CLI: catalog maintenance, the joined log-options view the
// import matcher runs against, single log creation, and the aggregate stats.
// Schema changes bump the version in schema.go.
//
// Writes retry briefly on SQLITE_BUSY; beyond that, persistence failures
// surface to the caller untouched.
package store
