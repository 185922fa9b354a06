// Package repository defines the data access interfaces for CardVault.
//
// This package provides the repository abstraction layer for persisting
// and retrieving card aggregates. The actual implementation is in the
// sqlite subpackage.
//
// # Repository Interface
//
// The Repository interface defines all data access methods for cards,
// their child collections, the tag vocabulary, and photo references.
//
// # SQLite Implementation
//
// The sqlite implementation provides a complete repository using SQLite
// with WAL mode. It handles:
//
// - CRUD for the card aggregate as one consistency unit
// - Full-replace synchronization of child collections
// - Find-or-create tag linking with usage counts
// - Foreign key constraints and cascade deletes
// - Text/tag search with deduplicated candidate ids
//
// Every aggregate write runs inside one transaction: a failure rolls the
// whole operation back rather than leaving a card with missing children.
//
// # Concurrency
//
// All access is serialized through a single connection guarded by one
// mutex. Reads and writes block each other process-wide; callers on a
// cooperative scheduler must offload each call to a worker.
//
// # Testing
//
// The sqlite repository is tested with in-memory databases to cover
// aggregate consistency, cascade deletes, and search edge cases.
package repository
