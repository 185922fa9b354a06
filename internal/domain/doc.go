// Package domain defines the core domain types for the CardVault contact manager.
//
// This package contains the entities and value objects that represent
// contact concepts: cards, their owned child collections (phones, emails,
// postal addresses), and the shared tag vocabulary.
//
// # Core Types
//
// Card is the aggregate root: one scalar record plus exclusively-owned
// phone, email, and address entries and a set of linked tag names. The
// aggregate is read and replaced as a single consistency unit.
//
// CardInput carries caller-supplied data for create and full-replace
// update operations. Child entries in an input have no identity; the
// store assigns fresh child ids on every write.
//
// TagCount pairs a tag name with its current usage count. Tags live
// independently of cards and survive at zero references.
//
// # Errors
//
// ErrNotFound marks operations against absent cards. ValidationError
// marks rejected input; it is always raised before any mutation.
//
// # Design Principles
//
// - No database or external dependencies
// - Pure domain logic without infrastructure concerns
package domain
