// Package postgres provides the live-database collaborators the schema apply
// pipeline depends on: a thin client over database/sql and lib/pq exposing the
// narrow run-query/run-statement surface the core packages consume, and
// database existence management for first runs against a fresh server.
package postgres
