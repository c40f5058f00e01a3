// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models for specific use cases; list queries go straight
// to SQL while single-note reads reuse the aggregate repositories.
package queries
