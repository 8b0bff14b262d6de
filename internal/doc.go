// Package internal documents the event log server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, pagination, and routing
// - domain: business logic and domain models
// - storage: database access and repositories (pgx + Postgres)
// - auth, config, metrics, sanitize: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
