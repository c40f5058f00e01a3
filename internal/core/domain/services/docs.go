// Package services provides domain services that do not belong to a single
// aggregate.
//
// The package includes:
//   - TrackingStatusResolver: maps carrier tracking text to delivery statuses
package services
