// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryNoteRepoFactory provides access to the delivery note repository.
	DeliveryNoteRepoFactory interface {
		DeliveryNoteRepository() ports.DeliveryNoteRepository
	}

	// CarrierRepoFactory provides access to the carrier repository.
	CarrierRepoFactory interface {
		CarrierRepository() ports.CarrierRepository
	}

	// DeliveryNoteUoW manages transactions for note-only operations.
	DeliveryNoteUoW interface {
		TxManager
		DeliveryNoteRepoFactory
	}

	// DeliveryNoteUoWFactory creates new delivery note unit of work instances.
	DeliveryNoteUoWFactory interface {
		Create() DeliveryNoteUoW
	}

	// CarrierUoW manages transactions for carrier-only operations.
	CarrierUoW interface {
		TxManager
		CarrierRepoFactory
	}

	// CarrierUoWFactory creates new carrier unit of work instances.
	CarrierUoWFactory interface {
		Create() CarrierUoW
	}

	// UoW spans delivery notes and carriers. Dispatch and tracking reconciliation
	// read carriers while they change notes.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   notes := uow.DeliveryNoteRepository()
	//   carriers := uow.CarrierRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DeliveryNoteRepoFactory
		CarrierRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
